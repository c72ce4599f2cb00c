package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFrontier_CompactionReleasesPages(t *testing.T) {
	q := NewQueueFrontier()
	for i := 0; i < 100; i++ {
		q.Insert(NewPage(fmt.Sprintf("https://example.com/%d", i), 0))
	}
	for i := 0; i < 60; i++ {
		p := q.RemoveNext()
		require.NotNil(t, p)
		assert.Equal(t, fmt.Sprintf("https://example.com/%d", i), p.Address())
	}
	require.Less(t, q.head, 60, "queue was never compacted")

	for i, p := range q.items[:q.head] {
		assert.Nil(t, p, "consumed slot %d still holds a page", i)
	}
	spare := q.items[len(q.items):cap(q.items)]
	for i, p := range spare {
		assert.Nil(t, p, "slot %d past the live window still holds a page", len(q.items)+i)
	}

	for i := 60; i < 100; i++ {
		p := q.RemoveNext()
		require.NotNil(t, p)
		assert.Equal(t, fmt.Sprintf("https://example.com/%d", i), p.Address())
	}
	assert.True(t, q.IsEmpty())
	assert.Nil(t, q.RemoveNext())
}
