package event

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Date is a calendar day without a time component. It marshals as YYYY-MM-DD
// and maps to a PostgreSQL date column.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate builds a Date from a time value, truncating to the day in UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON implements the json.Marshaler interface
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (d *Date) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements the sql.Scanner interface for database deserialization
func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

// Value implements the driver.Valuer interface for database serialization
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// DateRange is an inclusive [Start, End] day window for calendar queries.
type DateRange struct {
	Start Date
	End   Date
}

// Empty reports whether the range can match no day at all.
func (r DateRange) Empty() bool {
	return r.Start.After(r.End)
}

// Contains reports whether the day falls within the inclusive range.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Event is a single scheduled occurrence owned by exactly one user. The owner
// never changes after creation. Recurrence fields are descriptive metadata and
// are never expanded into instances.
type Event struct {
	ID                int         `json:"id" gorm:"primaryKey"`
	Title             string      `json:"title" gorm:"not null"`
	Date              Date        `json:"date" gorm:"type:date;not null;index:idx_events_date"`
	StartTime         string      `json:"start_time" gorm:"type:varchar(8);not null"`
	EndTime           *string     `json:"end_time" gorm:"type:varchar(8)"`
	Period            Period      `json:"period" gorm:"type:time_period;not null"`
	Location          *string     `json:"location"`
	Emoji             *string     `json:"emoji"`
	Privacy           Privacy     `json:"privacy" gorm:"type:privacy_level;not null;default:'private'"`
	OwnerID           int         `json:"owner_id" gorm:"not null;index"`
	Recurrence        Recurrence  `json:"recurrence" gorm:"type:recurrence_type;not null;default:'none'"`
	RecurrenceEndDate *Date       `json:"recurrence_end_date" gorm:"type:date"`
	RecurrenceRule    *string     `json:"recurrence_rule"`
	IsSpecial         bool        `json:"is_special" gorm:"default:false"`
	CreatedAt         time.Time   `json:"created_at" gorm:"autoCreateTime"`
}

func (Event) TableName() string {
	return "events"
}

// IsOwner checks if the given user owns this event.
func (e *Event) IsOwner(userID int) bool {
	return e.OwnerID == userID
}
