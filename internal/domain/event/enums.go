package event

import (
	"database/sql/driver"
	"fmt"
)

// Period is one of three coarse daily buckets used to group events for
// display. It is set independently of the literal start time.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodNight     Period = "night"
)

// PeriodFromString converts a string to a Period
func PeriodFromString(s string) (Period, bool) {
	switch Period(s) {
	case PeriodMorning, PeriodAfternoon, PeriodNight:
		return Period(s), true
	default:
		return "", false
	}
}

func (p *Period) Scan(value any) error {
	return scanEnum(value, (*string)(p), "Period")
}

func (p Period) Value() (driver.Value, error) {
	return string(p), nil
}

// Privacy is the visibility tier of an event: private (owner plus explicit
// grants), partner (owner, accepted partners and explicit grants) or public.
type Privacy string

const (
	PrivacyPrivate Privacy = "private"
	PrivacyPartner Privacy = "partner"
	PrivacyPublic  Privacy = "public"
)

// PrivacyFromString converts a string to a Privacy
func PrivacyFromString(s string) (Privacy, bool) {
	switch Privacy(s) {
	case PrivacyPrivate, PrivacyPartner, PrivacyPublic:
		return Privacy(s), true
	default:
		return "", false
	}
}

func (p *Privacy) Scan(value any) error {
	return scanEnum(value, (*string)(p), "Privacy")
}

func (p Privacy) Value() (driver.Value, error) {
	return string(p), nil
}

// Recurrence describes how an event repeats. It is stored as metadata only;
// nothing in this service expands a recurrence into instances.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceCustom  Recurrence = "custom"
)

// RecurrenceFromString converts a string to a Recurrence
func RecurrenceFromString(s string) (Recurrence, bool) {
	switch Recurrence(s) {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceCustom:
		return Recurrence(s), true
	default:
		return "", false
	}
}

func (r *Recurrence) Scan(value any) error {
	return scanEnum(value, (*string)(r), "Recurrence")
}

func (r Recurrence) Value() (driver.Value, error) {
	return string(r), nil
}

// Permission is a per-event access grant level.
type Permission string

const (
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
)

// PermissionFromString converts a string to a Permission
func PermissionFromString(s string) (Permission, bool) {
	switch Permission(s) {
	case PermissionView, PermissionEdit:
		return Permission(s), true
	default:
		return "", false
	}
}

func (p *Permission) Scan(value any) error {
	return scanEnum(value, (*string)(p), "Permission")
}

func (p Permission) Value() (driver.Value, error) {
	return string(p), nil
}

func scanEnum(value any, dst *string, typeName string) error {
	switch v := value.(type) {
	case nil:
		*dst = ""
		return nil
	case string:
		*dst = v
		return nil
	case []byte:
		*dst = string(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into %s", value, typeName)
	}
}
