package readings_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tarotlabs/go-tarot-server/readings"
)

func TestIdentifyThemes(t *testing.T) {
	t.Run("empty input falls back to general", func(t *testing.T) {
		require.Equal(t, []string{"general"}, readings.IdentifyThemes(""))
	})

	t.Run("no keyword match falls back to general", func(t *testing.T) {
		require.Equal(t, []string{"general"}, readings.IdentifyThemes("what does tomorrow hold"))
	})

	t.Run("single theme", func(t *testing.T) {
		require.Equal(t, []string{"career"}, readings.IdentifyThemes("Should I take the new job?"))
	})

	t.Run("multiple themes", func(t *testing.T) {
		themes := readings.IdentifyThemes("Will my relationship survive my new career and money worries?")
		require.Equal(t, []string{"love", "career", "finances"}, themes)
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		require.Equal(t, []string{"love"}, readings.IdentifyThemes("MY MARRIAGE"))
	})
}
