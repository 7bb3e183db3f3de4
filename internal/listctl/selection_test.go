package listctl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_SelectOne(t *testing.T) {
	s := NewSelection()
	s.SelectOne("u1", true)
	s.SelectOne("u2", true)
	s.SelectOne("u1", false)

	assert.False(t, s.Has("u1"))
	assert.True(t, s.Has("u2"))
	assert.Equal(t, 1, s.Count())
}

func TestSelection_SelectAllIsPageScoped(t *testing.T) {
	// Selecting all on one page, then "selecting all" on the next page,
	// must not carry the first page's IDs forward.
	pageOne := []string{"u1", "u2", "u3"}
	pageTwo := []string{"u4", "u5"}

	s := NewSelection()
	s.SelectAll(pageOne, true)
	assert.Equal(t, 3, s.Count())

	s.SelectAll(pageTwo, true)
	assert.Equal(t, []string{"u4", "u5"}, s.IDs())
	assert.False(t, s.Has("u1"))
}

func TestSelection_SelectAllUnchecked(t *testing.T) {
	s := NewSelection("u1", "u2")
	s.SelectAll([]string{"u1", "u2"}, false)
	assert.Zero(t, s.Count())
}

func TestSelection_IDsSorted(t *testing.T) {
	s := NewSelection("u3", "u1", "u2")
	assert.Equal(t, []string{"u1", "u2", "u3"}, s.IDs())
}

func TestSelection_IgnoresEmptyIDs(t *testing.T) {
	s := NewSelection("", "u1")
	s.SelectOne("", true)
	assert.Equal(t, []string{"u1"}, s.IDs())
}
