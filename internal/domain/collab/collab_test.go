package collab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comment(id int, parentID *int) CommentProfile {
	return CommentProfile{Comment: Comment{ID: id, ParentID: parentID}}
}

func TestBuildThreads(t *testing.T) {
	p1 := 1
	flat := []CommentProfile{
		comment(1, nil),
		comment(2, nil),
		comment(3, &p1),
		comment(4, &p1),
	}

	threads := BuildThreads(flat)
	require.Len(t, threads, 2)
	assert.Equal(t, 1, threads[0].ID)
	require.Len(t, threads[0].Replies, 2)
	assert.Equal(t, 3, threads[0].Replies[0].ID)
	assert.Equal(t, 4, threads[0].Replies[1].ID)
	assert.Empty(t, threads[1].Replies)
}

func TestBuildThreadsDropsOrphanReplies(t *testing.T) {
	missing := 42
	flat := []CommentProfile{
		comment(1, nil),
		comment(2, &missing),
	}

	threads := BuildThreads(flat)
	require.Len(t, threads, 1)
	assert.Empty(t, threads[0].Replies, "replies without a parent in the list are dropped, not promoted")
}

func TestBuildThreadsEmpty(t *testing.T) {
	threads := BuildThreads(nil)
	assert.NotNil(t, threads)
	assert.Empty(t, threads)
}
