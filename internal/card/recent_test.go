package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecent(t *testing.T) {
	r := NewRecent(0)
	assert.Equal(t, DefaultRecentSize, r.Size())
	assert.False(t, r.Contains(""), "empty slots never match")

	for _, a := range []string{"a", "b", "c", "d", "e"} {
		r.Add(a)
	}
	assert.True(t, r.Contains("a"))

	r.Add("f")
	assert.False(t, r.Contains("a"), "oldest is overwritten")
	assert.True(t, r.Contains("b"))
	assert.True(t, r.Contains("f"))
}
