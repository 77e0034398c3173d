package event

import (
	"time"

	"github.com/duetcal/duetcal-api/internal/domain/user"
)

// Participant is a per-event, per-user access grant. Identity is the
// (EventID, UserID) pair: re-granting to the same user updates the existing
// row instead of duplicating it. The owner never holds a participant row;
// ownership implies full access.
type Participant struct {
	ID         int        `json:"id" gorm:"primaryKey"`
	EventID    int        `json:"event_id" gorm:"not null;uniqueIndex:idx_event_participants_pair"`
	UserID     int        `json:"user_id" gorm:"not null;uniqueIndex:idx_event_participants_pair"`
	Permission Permission `json:"permission" gorm:"type:permission_level;not null;default:'view'"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

func (Participant) TableName() string {
	return "event_participants"
}

// ParticipantProfile pairs a grant with the granted user's public profile for
// display.
type ParticipantProfile struct {
	Participant
	User user.Public `json:"user"`
}
