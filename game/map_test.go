package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLayout(t *testing.T) {
	t.Run("built-in layouts parse", func(t *testing.T) {
		for _, name := range LayoutNames() {
			l, err := LayoutByName(name)
			require.NoError(t, err, "Layout %s should parse", name)
			require.Equal(t, name, l.Name)
		}
	})

	t.Run("rows are read from the top", func(t *testing.T) {
		l, err := LayoutByName("tinyMaze")
		require.NoError(t, err)

		require.Equal(t, 7, l.Width)
		require.Equal(t, 7, l.Height)
		require.Equal(t, Position{X: 5, Y: 5}, l.PacmanStart, "Pacman is on the second row")
		require.Equal(t, []Position{{X: 1, Y: 1}}, l.Food, "Food is on the second to last row")
		require.True(t, l.IsWall(Position{X: 0, Y: 0}))
		require.False(t, l.IsWall(Position{X: 1, Y: 1}))
		require.True(t, l.IsWall(Position{X: -1, Y: 3}), "Outside the grid is a wall")
		require.True(t, l.IsWall(Position{X: 3, Y: 7}), "Outside the grid is a wall")
	})

	t.Run("ghosts are ordered by reading order", func(t *testing.T) {
		l, err := LayoutByName("minimaxClassic")
		require.NoError(t, err)

		require.Equal(t, []Position{{X: 7, Y: 3}, {X: 5, Y: 2}, {X: 1, Y: 1}}, l.GhostStarts)
	})

	t.Run("neighbours skip walls", func(t *testing.T) {
		l, err := LayoutByName("tinyMaze")
		require.NoError(t, err)

		require.Equal(t, []Action{South, West}, l.Neighbours(l.PacmanStart))
	})

	t.Run("invalid layouts", func(t *testing.T) {
		cases := map[string]string{
			"empty":      "",
			"ragged":     "%%%%\n%P%\n%%%%",
			"no pacman":  "%%%\n%.%\n%%%",
			"two pacmen": "%%%%\n%PP%\n%%%%",
			"odd glyph":  "%%%%\n%PX%\n%%%%",
		}
		for name, text := range cases {
			_, err := ParseLayout(name, text)
			require.ErrorIs(t, err, ErrInvalidLayout, "Case %s should be rejected", name)
		}

		_, err := LayoutByName("bigMaze")
		require.ErrorIs(t, err, ErrInvalidLayout, "Unknown layouts should be rejected")
	})
}
