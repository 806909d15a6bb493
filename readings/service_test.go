package readings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/tarotlabs/go-tarot-server/internal/errors"
	"github.com/tarotlabs/go-tarot-server/readings"
)

// fakeCompleter records the last completion request and returns a canned
// interpretation.
type fakeCompleter struct {
	lastRequest readings.CompletionRequest
	response    string
	err         error
}

func (f *fakeCompleter) Complete(_ context.Context, req readings.CompletionRequest) (string, error) {
	f.lastRequest = req
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func validRequest() readings.Request {
	return readings.Request{
		Query: "What should I focus on in my career?",
		Cards: []readings.Card{
			{Title: "The Fool", Number: "O"},
			{Title: "The Magician", Number: "I"},
		},
		Style: "analytical",
	}
}

func TestService_GenerateBasic(t *testing.T) {
	t.Run("produces a non premium reading", func(t *testing.T) {
		completer := &fakeCompleter{response: "A new chapter begins."}
		svc := readings.NewService(completer)

		reading, err := svc.GenerateBasic(context.Background(), validRequest())
		require.NoError(t, err)
		require.False(t, reading.IsPremium)
		require.Equal(t, "A new chapter begins.", reading.Interpretation)
		require.Equal(t, "career", reading.Theme)
		require.Contains(t, completer.lastRequest.Prompt, "The Fool (O), The Magician (I)")
		require.Equal(t, "gpt-3.5-turbo", completer.lastRequest.Model)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		svc := readings.NewService(&fakeCompleter{})
		_, err := svc.GenerateBasic(context.Background(), readings.Request{Query: "x"})
		require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})

	t.Run("rejects too many cards", func(t *testing.T) {
		svc := readings.NewService(&fakeCompleter{})
		req := validRequest()
		req.Cards = make([]readings.Card, 6)
		for i := range req.Cards {
			req.Cards[i] = readings.Card{Title: "The Fool", Number: "O"}
		}
		_, err := svc.GenerateBasic(context.Background(), req)
		require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})
}

func TestService_GeneratePremium(t *testing.T) {
	t.Run("personalises the prompt to the querent", func(t *testing.T) {
		completer := &fakeCompleter{response: "The cards speak of transformation."}
		svc := readings.NewService(completer)

		reading, err := svc.GeneratePremium(context.Background(), validRequest(), "querent@example.com")
		require.NoError(t, err)
		require.True(t, reading.IsPremium)
		require.Contains(t, completer.lastRequest.Prompt, "querent@example.com")
		require.Equal(t, "gpt-4o-mini", completer.lastRequest.Model)
		require.Greater(t, completer.lastRequest.MaxTokens, int64(300))
	})

	t.Run("rejects invalid requests before calling the completer", func(t *testing.T) {
		completer := &fakeCompleter{}
		svc := readings.NewService(completer)
		_, err := svc.GeneratePremium(context.Background(), readings.Request{}, "querent@example.com")
		require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		require.Empty(t, completer.lastRequest.Prompt)
	})
}
