package blog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		r := NewRecord()
		require.Equal(t, DefaultBlog, r.Blog)
		require.GreaterOrEqual(t, r.Num, 0.0)
		require.Less(t, r.Num, 1.0)
		require.False(t, r.ID.IsZero())
		require.False(t, seen[r.ID.Hex()], "ids must be unique")
		seen[r.ID.Hex()] = true
	}
}
