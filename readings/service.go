package readings

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Completer generates an interpretation from a prompt. The production
// implementation calls a hosted completion service; tests substitute a
// fake.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is a single completion call.
type CompletionRequest struct {
	Model     string
	System    string
	Prompt    string
	MaxTokens int64
}

const (
	basicModel   = "gpt-3.5-turbo"
	premiumModel = "gpt-4o-mini"

	basicMaxTokens   = 300
	premiumMaxTokens = 800

	basicSystemPrompt   = "You are a skilled tarot reader who provides concise, insightful readings."
	premiumSystemPrompt = "You are a master tarot reader with deep wisdom and psychological insight."
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Service generates tarot readings.
type Service struct {
	completer Completer
}

// NewService creates a reading service backed by the given completer.
func NewService(completer Completer) *Service {
	return &Service{completer: completer}
}

// GenerateBasic produces a free-tier reading.
func (s *Service) GenerateBasic(ctx context.Context, req Request) (*Reading, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	theme := themeText(IdentifyThemes(req.Query))
	prompt := fmt.Sprintf(`As a tarot reader with a %s style, interpret these cards: %s for the question: %q.
Theme: %s
Keep the reading concise but insightful, focusing on the core message of the cards.`,
		req.Style, cardSummary(req.Cards), req.Query, theme)

	interpretation, err := s.completer.Complete(ctx, CompletionRequest{
		Model:     basicModel,
		System:    basicSystemPrompt,
		Prompt:    prompt,
		MaxTokens: basicMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate reading: %w", err)
	}

	return &Reading{
		Date:           NowTimeFunc(),
		Query:          req.Query,
		Theme:          theme,
		Cards:          req.Cards,
		Style:          req.Style,
		Interpretation: interpretation,
		IsPremium:      false,
	}, nil
}

// GeneratePremium produces an authenticated-tier reading personalised to
// the querent.
func (s *Service) GeneratePremium(ctx context.Context, req Request, querentEmail string) (*Reading, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	theme := themeText(IdentifyThemes(req.Query))
	prompt := fmt.Sprintf(`You are an insightful tarot reader with a %s interpretive style.
The querent (%s) asks: %q

Their reading includes the following cards: %s

The identified themes in their question are: %s

Provide a cohesive and insightful tarot reading that:
1. Addresses their specific question with depth and nuance
2. Interprets each card in relation to their question
3. Shows how the cards interact with each other to create a cohesive message
4. Offers specific, actionable guidance based on the reading
5. Maintains a %s tone and approach throughout

Your response should be deep, personalized, and genuinely helpful. Include elements of psychology
and wisdom that will resonate with the querent. This is a premium reading, so provide more depth and insight.`,
		req.Style, querentEmail, req.Query, cardSummary(req.Cards), theme, req.Style)

	interpretation, err := s.completer.Complete(ctx, CompletionRequest{
		Model:     premiumModel,
		System:    premiumSystemPrompt,
		Prompt:    prompt,
		MaxTokens: premiumMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate premium reading: %w", err)
	}

	return &Reading{
		Date:           NowTimeFunc(),
		Query:          req.Query,
		Theme:          theme,
		Cards:          req.Cards,
		Style:          req.Style,
		Interpretation: interpretation,
		IsPremium:      true,
	}, nil
}

func cardSummary(cards []Card) string {
	parts := make([]string, 0, len(cards))
	for _, card := range cards {
		parts = append(parts, fmt.Sprintf("%s (%s)", card.Title, card.Number))
	}
	return strings.Join(parts, ", ")
}
