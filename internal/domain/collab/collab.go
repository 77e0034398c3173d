package collab

import (
	"time"

	"github.com/duetcal/duetcal-api/internal/domain/user"
)

// Comment is attached to an event. ParentID, when set, references a top-level
// comment on the same event; the forest is at most two levels deep. Comments
// are never updated and carry no delete operation.
type Comment struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	EventID   int       `json:"event_id" gorm:"not null;index"`
	UserID    int       `json:"user_id" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	ParentID  *int      `json:"parent_id"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Comment) TableName() string {
	return "comments"
}

// IsReply reports whether the comment targets a top-level comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// CommentProfile pairs a comment with its author's public profile.
type CommentProfile struct {
	Comment
	User user.Public `json:"user"`
}

// Thread is a top-level comment together with its replies, in creation order.
// Comments are stored flat; grouping happens at read time.
type Thread struct {
	CommentProfile
	Replies []CommentProfile `json:"replies"`
}

// BuildThreads groups a flat createdAt-ordered comment list into a two-level
// forest keyed by ParentID. Replies whose parent is missing from the list are
// dropped rather than promoted.
func BuildThreads(comments []CommentProfile) []Thread {
	threads := make([]Thread, 0)
	index := make(map[int]int)

	for _, c := range comments {
		if c.ParentID == nil {
			index[c.ID] = len(threads)
			threads = append(threads, Thread{CommentProfile: c, Replies: make([]CommentProfile, 0)})
		}
	}
	for _, c := range comments {
		if c.ParentID == nil {
			continue
		}
		if i, ok := index[*c.ParentID]; ok {
			threads[i].Replies = append(threads[i].Replies, c)
		}
	}
	return threads
}

// Reaction is a single (event, user, type) triple. At most one reaction per
// (event, user) pair exists: adding a new one replaces the old.
type Reaction struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	EventID   int       `json:"event_id" gorm:"not null;uniqueIndex:idx_reactions_pair"`
	UserID    int       `json:"user_id" gorm:"not null;uniqueIndex:idx_reactions_pair"`
	Type      string    `json:"type" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Reaction) TableName() string {
	return "reactions"
}
