package services

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/teambition/rrule-go"

	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/domain/event"
	"github.com/duetcal/duetcal-api/internal/logger"
	"github.com/duetcal/duetcal-api/internal/storage"
	"github.com/duetcal/duetcal-api/internal/validation"
)

// EventService creates, updates and deletes events and manages their
// participant grants. Mutating the event record is owner-only; edit grants
// cover sub-resources, not the record itself.
type EventService struct {
	repos storage.RepositoryContainer
	log   *log.Logger
}

// NewEventService creates a new event service instance
func NewEventService(repos storage.RepositoryContainer) *EventService {
	return &EventService{
		repos: repos,
		log:   logger.Service("event"),
	}
}

// ParticipantGrant is one requested per-event access grant. An empty
// permission defaults to view; anything other than view or edit is rejected.
type ParticipantGrant struct {
	UserID     int    `json:"user_id" binding:"required"`
	Permission string `json:"permission"`
}

// CreateEventRequest represents a request to create an event
type CreateEventRequest struct {
	Title             string             `json:"title" binding:"required"`
	Date              string             `json:"date" binding:"required"`
	StartTime         string             `json:"start_time" binding:"required"`
	EndTime           *string            `json:"end_time"`
	Period            string             `json:"period" binding:"required"`
	Location          *string            `json:"location"`
	Emoji             *string            `json:"emoji"`
	Privacy           string             `json:"privacy"`
	Recurrence        string             `json:"recurrence"`
	RecurrenceEndDate *string            `json:"recurrence_end_date"`
	RecurrenceRule    *string            `json:"recurrence_rule"`
	IsSpecial         bool               `json:"is_special"`
	Participants      []ParticipantGrant `json:"participants"`
}

// Create validates the draft, persists the event and upserts the requested
// grants, all in one transaction. Every invalid field is reported, not just
// the first.
func (s *EventService) Create(ownerID int, req CreateEventRequest) (*event.Event, error) {
	ve := common.NewValidationError()

	e := &event.Event{
		OwnerID:    ownerID,
		Emoji:      req.Emoji,
		Location:   req.Location,
		IsSpecial:  req.IsSpecial,
		Privacy:    event.PrivacyPrivate,
		Recurrence: event.RecurrenceNone,
	}

	if err := validation.ValidateRequired(req.Title, "title"); err != nil {
		ve.Add("title", err.Error())
	} else {
		e.Title = strings.TrimSpace(req.Title)
	}

	if d, err := event.ParseDate(req.Date); err != nil {
		ve.Add("date", err.Error())
	} else {
		e.Date = d
	}

	if t, err := validation.NormalizeTime(req.StartTime); err != nil {
		ve.Add("start_time", err.Error())
	} else {
		e.StartTime = t
	}

	if req.EndTime != nil && *req.EndTime != "" {
		if t, err := validation.NormalizeTime(*req.EndTime); err != nil {
			ve.Add("end_time", err.Error())
		} else {
			e.EndTime = &t
		}
	}

	if p, ok := event.PeriodFromString(req.Period); !ok {
		ve.Add("period", "period must be one of morning, afternoon, night")
	} else {
		e.Period = p
	}

	if req.Privacy != "" {
		if p, ok := event.PrivacyFromString(req.Privacy); !ok {
			ve.Add("privacy", "privacy must be one of private, partner, public")
		} else {
			e.Privacy = p
		}
	}

	if req.Recurrence != "" {
		if r, ok := event.RecurrenceFromString(req.Recurrence); !ok {
			ve.Add("recurrence", "recurrence must be one of none, daily, weekly, monthly, custom")
		} else {
			e.Recurrence = r
		}
	}

	if req.RecurrenceEndDate != nil && *req.RecurrenceEndDate != "" {
		if d, err := event.ParseDate(*req.RecurrenceEndDate); err != nil {
			ve.Add("recurrence_end_date", err.Error())
		} else {
			e.RecurrenceEndDate = &d
		}
	}

	if req.RecurrenceRule != nil && *req.RecurrenceRule != "" {
		if _, err := rrule.StrToRRule(*req.RecurrenceRule); err != nil {
			ve.Add("recurrence_rule", "recurrence_rule must be a valid RRULE expression")
		} else {
			e.RecurrenceRule = req.RecurrenceRule
		}
	}

	grants := s.normalizeGrants(ownerID, req.Participants, ve)

	if ve.HasErrors() {
		return nil, ve
	}

	err := s.repos.WithTransaction(func(tx storage.RepositoryContainer) error {
		if err := tx.Events().Create(e); err != nil {
			return err
		}
		for _, g := range grants {
			g.EventID = e.ID
			if err := tx.Participants().Upsert(&g); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("event created", "event_id", e.ID, "owner_id", ownerID, "privacy", e.Privacy, "grants", len(grants))
	return e, nil
}

// UpdateEventRequest is a partial patch; nil fields stay unchanged.
type UpdateEventRequest struct {
	Title             *string            `json:"title"`
	Date              *string            `json:"date"`
	StartTime         *string            `json:"start_time"`
	EndTime           *string            `json:"end_time"`
	Period            *string            `json:"period"`
	Location          *string            `json:"location"`
	Emoji             *string            `json:"emoji"`
	Privacy           *string            `json:"privacy"`
	Recurrence        *string            `json:"recurrence"`
	RecurrenceEndDate *string            `json:"recurrence_end_date"`
	RecurrenceRule    *string            `json:"recurrence_rule"`
	IsSpecial         *bool              `json:"is_special"`
	Participants      []ParticipantGrant `json:"participants"`
}

// Update applies a partial patch to an owned event and re-upserts the
// requested grants.
func (s *EventService) Update(requesterID, eventID int, req UpdateEventRequest) (*event.Event, error) {
	e, err := s.repos.Events().GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if !e.IsOwner(requesterID) {
		return nil, common.NewForbidden("only the owner may update an event")
	}

	ve := common.NewValidationError()

	if req.Title != nil {
		if err := validation.ValidateRequired(*req.Title, "title"); err != nil {
			ve.Add("title", err.Error())
		} else {
			e.Title = strings.TrimSpace(*req.Title)
		}
	}
	if req.Date != nil {
		if d, err := event.ParseDate(*req.Date); err != nil {
			ve.Add("date", err.Error())
		} else {
			e.Date = d
		}
	}
	if req.StartTime != nil {
		if t, err := validation.NormalizeTime(*req.StartTime); err != nil {
			ve.Add("start_time", err.Error())
		} else {
			e.StartTime = t
		}
	}
	if req.EndTime != nil {
		if *req.EndTime == "" {
			e.EndTime = nil
		} else if t, err := validation.NormalizeTime(*req.EndTime); err != nil {
			ve.Add("end_time", err.Error())
		} else {
			e.EndTime = &t
		}
	}
	if req.Period != nil {
		if p, ok := event.PeriodFromString(*req.Period); !ok {
			ve.Add("period", "period must be one of morning, afternoon, night")
		} else {
			e.Period = p
		}
	}
	if req.Location != nil {
		e.Location = req.Location
	}
	if req.Emoji != nil {
		e.Emoji = req.Emoji
	}
	if req.Privacy != nil {
		if p, ok := event.PrivacyFromString(*req.Privacy); !ok {
			ve.Add("privacy", "privacy must be one of private, partner, public")
		} else {
			e.Privacy = p
		}
	}
	if req.Recurrence != nil {
		if r, ok := event.RecurrenceFromString(*req.Recurrence); !ok {
			ve.Add("recurrence", "recurrence must be one of none, daily, weekly, monthly, custom")
		} else {
			e.Recurrence = r
		}
	}
	if req.RecurrenceEndDate != nil {
		if *req.RecurrenceEndDate == "" {
			e.RecurrenceEndDate = nil
		} else if d, err := event.ParseDate(*req.RecurrenceEndDate); err != nil {
			ve.Add("recurrence_end_date", err.Error())
		} else {
			e.RecurrenceEndDate = &d
		}
	}
	if req.RecurrenceRule != nil {
		if *req.RecurrenceRule == "" {
			e.RecurrenceRule = nil
		} else if _, err := rrule.StrToRRule(*req.RecurrenceRule); err != nil {
			ve.Add("recurrence_rule", "recurrence_rule must be a valid RRULE expression")
		} else {
			e.RecurrenceRule = req.RecurrenceRule
		}
	}
	if req.IsSpecial != nil {
		e.IsSpecial = *req.IsSpecial
	}

	grants := s.normalizeGrants(e.OwnerID, req.Participants, ve)

	if ve.HasErrors() {
		return nil, ve
	}

	err = s.repos.WithTransaction(func(tx storage.RepositoryContainer) error {
		if err := tx.Events().Update(e); err != nil {
			return err
		}
		for _, g := range grants {
			g.EventID = e.ID
			if err := tx.Participants().Upsert(&g); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("event updated", "event_id", e.ID, "requester_id", requesterID)
	return e, nil
}

// Delete removes an owned event together with its participants, comments and
// reactions.
func (s *EventService) Delete(requesterID, eventID int) error {
	e, err := s.repos.Events().GetByID(eventID)
	if err != nil {
		return err
	}
	if !e.IsOwner(requesterID) {
		return common.NewForbidden("only the owner may delete an event")
	}

	if err := s.repos.Events().Delete(eventID); err != nil {
		return err
	}

	s.log.Info("event deleted", "event_id", eventID, "owner_id", requesterID)
	return nil
}

// AddParticipant grants a user access to an owned event, updating the grant
// if one already exists.
func (s *EventService) AddParticipant(requesterID, eventID int, grant ParticipantGrant) (*event.Participant, error) {
	e, err := s.repos.Events().GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if !e.IsOwner(requesterID) {
		return nil, common.NewForbidden("only the owner may manage participants")
	}

	ve := common.NewValidationError()
	grants := s.normalizeGrants(e.OwnerID, []ParticipantGrant{grant}, ve)
	if ve.HasErrors() {
		return nil, ve
	}
	if len(grants) == 0 {
		ve.Add("user_id", "cannot grant the owner access to their own event")
		return nil, ve
	}

	if _, err := s.repos.Users().GetByID(grant.UserID); err != nil {
		return nil, err
	}

	p := grants[0]
	p.EventID = eventID
	if err := s.repos.Participants().Upsert(&p); err != nil {
		return nil, err
	}

	s.log.Info("participant granted", "event_id", eventID, "user_id", p.UserID, "permission", p.Permission)
	return &p, nil
}

// RemoveParticipant revokes a user's grant on an owned event. Removing a
// grant that does not exist is not an error.
func (s *EventService) RemoveParticipant(requesterID, eventID, userID int) error {
	e, err := s.repos.Events().GetByID(eventID)
	if err != nil {
		return err
	}
	if !e.IsOwner(requesterID) {
		return common.NewForbidden("only the owner may manage participants")
	}

	return s.repos.Participants().Remove(eventID, userID)
}

// SetPermission changes an existing grant's permission level.
func (s *EventService) SetPermission(requesterID, eventID, userID int, permission string) (*event.Participant, error) {
	e, err := s.repos.Events().GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if !e.IsOwner(requesterID) {
		return nil, common.NewForbidden("only the owner may manage participants")
	}

	perm, ok := event.PermissionFromString(permission)
	if !ok {
		ve := common.NewValidationError()
		ve.Add("permission", "permission must be view or edit")
		return nil, ve
	}

	if _, err := s.repos.Participants().Get(eventID, userID); err != nil {
		return nil, err
	}

	p := &event.Participant{EventID: eventID, UserID: userID, Permission: perm}
	if err := s.repos.Participants().Upsert(p); err != nil {
		return nil, err
	}

	s.log.Info("participant permission changed", "event_id", eventID, "user_id", userID, "permission", perm)
	return p, nil
}

// ListParticipants returns the grants on an event with each user's public
// profile attached. Authorization is the caller's concern.
func (s *EventService) ListParticipants(eventID int) ([]*event.ParticipantProfile, error) {
	return s.repos.Participants().GetByEvent(eventID)
}

// normalizeGrants validates the requested grants: unknown permission values
// are rejected, an absent permission defaults to view, and grants targeting
// the owner are dropped since ownership already implies full access.
func (s *EventService) normalizeGrants(ownerID int, requested []ParticipantGrant, ve *common.ValidationError) []event.Participant {
	grants := make([]event.Participant, 0, len(requested))
	for _, g := range requested {
		if g.UserID == ownerID {
			continue
		}

		perm := event.PermissionView
		if g.Permission != "" {
			p, ok := event.PermissionFromString(g.Permission)
			if !ok {
				ve.Add("participants", "permission must be view or edit")
				continue
			}
			perm = p
		}

		grants = append(grants, event.Participant{UserID: g.UserID, Permission: perm})
	}
	return grants
}
