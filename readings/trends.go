package readings

import (
	"fmt"
	"sort"
	"strings"
)

const maxTrendEntries = 3

// AnalyseTrends summarises a user's saved readings: their most frequent
// themes and cards and a suggested focus derived from the dominant theme.
func AnalyseTrends(saved []Reading) Trends {
	if len(saved) == 0 {
		return Trends{
			RecommendedFocus: "Save a few readings and your trends will appear here.",
		}
	}

	themeCounts := make(map[string]int)
	cardCounts := make(map[string]int)
	for _, reading := range saved {
		for _, theme := range strings.Split(reading.Theme, ", ") {
			if theme != "" {
				themeCounts[theme]++
			}
		}
		for _, card := range reading.Cards {
			cardCounts[card.Title]++
		}
	}

	themes := rankByCount(themeCounts)
	if len(themes) > maxTrendEntries {
		themes = themes[:maxTrendEntries]
	}

	rankedCards := rankByCount(cardCounts)
	if len(rankedCards) > maxTrendEntries {
		rankedCards = rankedCards[:maxTrendEntries]
	}
	cards := make([]CardCount, 0, len(rankedCards))
	for _, title := range rankedCards {
		cards = append(cards, CardCount{Title: title, Count: cardCounts[title]})
	}

	focus := "Your readings cover a broad range of questions. Revisit the ones that resonated most."
	if len(themes) > 0 && themes[0] != "General insight" {
		focus = fmt.Sprintf("Your readings show a consistent theme of %s. Consider exploring how this energy manifests in your daily life.", themes[0])
	}

	return Trends{
		FrequentThemes:   themes,
		FrequentCards:    cards,
		RecommendedFocus: focus,
	}
}

// rankByCount orders keys by descending count, ties broken alphabetically
// for stable output.
func rankByCount(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
