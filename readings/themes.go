package readings

import "strings"

// themeKeywords maps a theme to the keywords that signal it in a querent's
// question.
var themeKeywords = map[string][]string{
	"love":         {"relationship", "partner", "romance", "connection", "attraction", "dating", "marriage", "breakup", "soulmate", "commitment"},
	"career":       {"job", "work", "promotion", "business", "professional", "interview", "company", "career", "workplace", "colleagues", "boss"},
	"spirituality": {"spiritual", "higher", "purpose", "meaning", "meditation", "practice", "soul", "divine", "growth", "awakening", "consciousness"},
	"health":       {"health", "wellness", "healing", "body", "mental", "physical", "illness", "recovery", "balance", "energy", "vitality"},
	"finances":     {"money", "financial", "investment", "debt", "abundance", "prosperity", "wealth", "savings", "income", "spending"},
	"creativity":   {"creative", "artist", "project", "inspiration", "expression", "art", "writing", "music", "block", "ideas", "creating"},
}

// themeOrder keeps theme detection deterministic across map iteration.
var themeOrder = []string{"love", "career", "spirituality", "health", "finances", "creativity"}

// IdentifyThemes detects the themes present in a querent's question,
// falling back to "general" when none match.
func IdentifyThemes(input string) []string {
	if input == "" {
		return []string{"general"}
	}

	lowered := strings.ToLower(input)
	var detected []string
	for _, theme := range themeOrder {
		for _, keyword := range themeKeywords[theme] {
			if strings.Contains(lowered, keyword) {
				detected = append(detected, theme)
				break
			}
		}
	}

	if len(detected) == 0 {
		return []string{"general"}
	}
	return detected
}

// themeText renders detected themes for prompts and responses.
func themeText(themes []string) string {
	if len(themes) == 1 && themes[0] == "general" {
		return "General insight"
	}
	return strings.Join(themes, ", ")
}
