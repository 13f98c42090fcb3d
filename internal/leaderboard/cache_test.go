package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	t.Run("empty cache yields empty snapshot", func(t *testing.T) {
		c := NewCache()

		assert.Empty(t, c.Snapshot())
	})

	t.Run("replace swaps the whole ranking", func(t *testing.T) {
		c := NewCache()
		c.Replace([]Entry{{UserID: "u1", TotalPoints: 100}})

		c.Replace([]Entry{
			{UserID: "u2", TotalPoints: 200},
			{UserID: "u1", TotalPoints: 100},
		})

		got := c.Snapshot()
		require.Len(t, got, 2)
		assert.Equal(t, "u2", got[0].UserID)
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		c := NewCache()
		c.Replace([]Entry{{UserID: "u1", TotalPoints: 100}})

		got := c.Snapshot()
		got[0].UserID = "mutated"

		assert.Equal(t, "u1", c.Snapshot()[0].UserID)
	})
}
