package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhpenta/imagestudio"
)

func TestSessionRegistry(t *testing.T) {
	reg := NewSessionRegistry()
	assert.Equal(t, 0, reg.Len())

	sess := imagestudio.NewRefinementSession(&mockGenerator{})
	id := reg.Add(sess)
	require.NotEmpty(t, id)
	assert.Equal(t, 1, reg.Len())

	got, ok := reg.Get(id)
	require.True(t, ok)
	assert.Same(t, sess, got)

	other := reg.Add(imagestudio.NewRefinementSession(&mockGenerator{}))
	assert.NotEqual(t, id, other, "conversation ids must be unique")
	assert.Equal(t, 2, reg.Len())

	assert.True(t, reg.Remove(id))
	_, ok = reg.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 1, reg.Len())

	assert.False(t, reg.Remove(id), "removing twice reports unknown id")
	assert.False(t, reg.Remove("no-such-id"))
}
