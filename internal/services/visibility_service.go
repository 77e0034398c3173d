package services

import (
	"github.com/charmbracelet/log"

	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/domain/event"
	"github.com/duetcal/duetcal-api/internal/logger"
	"github.com/duetcal/duetcal-api/internal/storage"
)

// VisibilityService computes which events a viewer may read. The shared feed
// and the single-event check are deliberately different predicates: the feed
// only covers accepted partners' partner/public events, while CanView
// additionally honors explicit participant grants on any event.
type VisibilityService struct {
	repos storage.RepositoryContainer
	log   *log.Logger
}

// NewVisibilityService creates a new visibility service instance
func NewVisibilityService(repos storage.RepositoryContainer) *VisibilityService {
	return &VisibilityService{
		repos: repos,
		log:   logger.Service("visibility"),
	}
}

// ListOwnEvents returns the viewer's own events regardless of privacy,
// optionally filtered to an inclusive date range. An inverted range yields an
// empty list, not an error.
func (s *VisibilityService) ListOwnEvents(viewerID int, r *event.DateRange) ([]*event.Event, error) {
	if r != nil && r.Empty() {
		return []*event.Event{}, nil
	}
	return s.repos.Events().GetByOwner(viewerID, r)
}

// ListSharedEvents returns partner and public events owned by the users
// whose invitations the viewer accepted. Links read in that direction only:
// accepting exposes the inviter's events to the invitee, never the reverse.
// Events the viewer can only reach through a participant grant do not appear
// here; CanView covers those.
func (s *VisibilityService) ListSharedEvents(viewerID int, r *event.DateRange) ([]*event.Event, error) {
	if r != nil && r.Empty() {
		return []*event.Event{}, nil
	}

	inviterIDs, err := s.repos.Partners().GetAcceptedInviterIDs(viewerID)
	if err != nil {
		return nil, err
	}
	if len(inviterIDs) == 0 {
		return []*event.Event{}, nil
	}

	return s.repos.Events().GetByOwnersAndPrivacy(
		inviterIDs,
		[]event.Privacy{event.PrivacyPartner, event.PrivacyPublic},
		r,
	)
}

// CanView reports whether the viewer may read the event: ownership, public
// privacy, partner privacy with an accepted invitation from the owner, or
// any participant grant.
func (s *VisibilityService) CanView(viewerID, eventID int) (bool, error) {
	e, err := s.repos.Events().GetByID(eventID)
	if err != nil {
		return false, err
	}
	return s.canViewEvent(viewerID, e)
}

func (s *VisibilityService) canViewEvent(viewerID int, e *event.Event) (bool, error) {
	if e.IsOwner(viewerID) {
		return true, nil
	}
	if e.Privacy == event.PrivacyPublic {
		return true, nil
	}

	if e.Privacy == event.PrivacyPartner {
		inviterIDs, err := s.repos.Partners().GetAcceptedInviterIDs(viewerID)
		if err != nil {
			return false, err
		}
		for _, id := range inviterIDs {
			if id == e.OwnerID {
				return true, nil
			}
		}
	}

	return s.repos.Participants().GetByEventAndUser(e.ID, viewerID)
}

// CanEdit reports whether the viewer may mutate the event's sub-resources:
// ownership or an explicit edit grant. Editing the event record itself stays
// owner-only regardless.
func (s *VisibilityService) CanEdit(viewerID, eventID int) (bool, error) {
	e, err := s.repos.Events().GetByID(eventID)
	if err != nil {
		return false, err
	}
	if e.IsOwner(viewerID) {
		return true, nil
	}

	p, err := s.repos.Participants().Get(eventID, viewerID)
	if err != nil {
		if common.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return p.Permission == event.PermissionEdit, nil
}

// VisibleEvent fetches an event and enforces CanView, returning
// ForbiddenError when the viewer has no read access.
func (s *VisibilityService) VisibleEvent(viewerID, eventID int) (*event.Event, error) {
	e, err := s.repos.Events().GetByID(eventID)
	if err != nil {
		return nil, err
	}

	ok, err := s.canViewEvent(viewerID, e)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.Debug("view denied", "viewer_id", viewerID, "event_id", eventID)
		return nil, common.NewForbidden("you do not have access to this event")
	}
	return e, nil
}
