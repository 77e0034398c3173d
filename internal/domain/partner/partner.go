package partner

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/duetcal/duetcal-api/internal/domain/user"
)

// Status is the lifecycle state of a partner link. The only legal transitions
// are pending to accepted and pending to rejected, performed by the invitee.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// StatusFromString converts a string to a Status
func StatusFromString(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusRejected:
		return Status(s), true
	default:
		return "", false
	}
}

// Terminal reports whether the status admits no further transition.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

func (s *Status) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*s = StatusPending
		return nil
	case string:
		*s = Status(v)
		return nil
	case []byte:
		*s = Status(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Status", value)
	}
}

func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}

// Link is a directed partner edge from the inviter (UserID) to the invitee
// (PartnerID). Visibility flows in one direction only: once accepted, the
// inviter's partner-privacy events become visible to the invitee. The reverse
// requires a separate invitation.
type Link struct {
	ID            int       `json:"id" gorm:"primaryKey"`
	UserID        int       `json:"user_id" gorm:"not null;index"`
	PartnerID     int       `json:"partner_id" gorm:"not null;index"`
	Status        Status    `json:"status" gorm:"type:partner_status;not null;default:'pending'"`
	ShareAll      bool      `json:"share_all" gorm:"default:true"`
	ShareRaftOnly bool      `json:"share_raft_only" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Link) TableName() string {
	return "partners"
}

// Profile pairs a link with the counterparty's public profile: the inviter
// for incoming requests, the invitee for accepted listings.
type Profile struct {
	Link
	Partner user.Public `json:"partner"`
}
