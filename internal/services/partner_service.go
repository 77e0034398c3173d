package services

import (
	"github.com/charmbracelet/log"

	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/domain/event"
	"github.com/duetcal/duetcal-api/internal/domain/partner"
	"github.com/duetcal/duetcal-api/internal/logger"
	"github.com/duetcal/duetcal-api/internal/storage"
)

// PartnerService manages the partner-link lifecycle and answers who a user's
// accepted partners are. Links are directional: acceptance makes the
// inviter's partner-level events visible to the invitee, never the reverse.
type PartnerService struct {
	repos storage.RepositoryContainer
	log   *log.Logger
}

// NewPartnerService creates a new partner service instance
func NewPartnerService(repos storage.RepositoryContainer) *PartnerService {
	return &PartnerService{
		repos: repos,
		log:   logger.Service("partner"),
	}
}

// InviteRequest represents a request to invite a partner by email
type InviteRequest struct {
	PartnerEmail  string `json:"partner_email" binding:"required"`
	ShareAll      *bool  `json:"share_all"`
	ShareRaftOnly *bool  `json:"share_raft_only"`
}

// Invite creates a pending link from the inviter to the user behind the
// email. Inviting yourself or re-inviting someone with a link still pending
// or accepted is rejected.
func (s *PartnerService) Invite(inviterID int, req InviteRequest) (*partner.Link, error) {
	ve := common.NewValidationError()
	if req.PartnerEmail == "" {
		ve.Add("partner_email", "partner_email is required")
		return nil, ve
	}

	invitee, err := s.repos.Users().GetByEmail(req.PartnerEmail)
	if err != nil {
		return nil, err
	}

	if invitee.ID == inviterID {
		ve.Add("partner_email", "cannot invite yourself as a partner")
		return nil, ve
	}

	active, err := s.repos.Partners().HasActiveLink(inviterID, invitee.ID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, common.NewConflict("a pending or accepted invitation for this partner already exists")
	}

	link := &partner.Link{
		UserID:        inviterID,
		PartnerID:     invitee.ID,
		Status:        partner.StatusPending,
		ShareAll:      true,
		ShareRaftOnly: false,
	}
	if req.ShareAll != nil {
		link.ShareAll = *req.ShareAll
	}
	if req.ShareRaftOnly != nil {
		link.ShareRaftOnly = *req.ShareRaftOnly
	}

	if err := s.repos.Partners().Create(link); err != nil {
		return nil, err
	}

	s.log.Info("partner invitation created", "link_id", link.ID, "inviter_id", inviterID, "invitee_id", invitee.ID)
	return link, nil
}

// Respond resolves a pending incoming request. Only the invitee may respond,
// and a resolved link never changes again. Acceptance fans out view grants
// over the inviter's partner-level events that exist at that moment; events
// created afterwards reach the invitee through the visibility rules directly.
func (s *PartnerService) Respond(responderID, linkID int, decision partner.Status) (*partner.Link, error) {
	if decision != partner.StatusAccepted && decision != partner.StatusRejected {
		ve := common.NewValidationError()
		ve.Add("status", "status must be accepted or rejected")
		return nil, ve
	}

	link, err := s.repos.Partners().GetByID(linkID)
	if err != nil {
		return nil, err
	}

	if link.PartnerID != responderID {
		return nil, common.NewForbidden("only the invited user may respond to this request")
	}

	if link.Status != partner.StatusPending {
		return nil, common.NewNotFound("pending partner request", linkID)
	}

	err = s.repos.WithTransaction(func(tx storage.RepositoryContainer) error {
		if err := tx.Partners().UpdateStatus(linkID, decision); err != nil {
			return err
		}

		if decision != partner.StatusAccepted {
			return nil
		}

		shared, err := tx.Events().GetByOwnersAndPrivacy(
			[]int{link.UserID},
			[]event.Privacy{event.PrivacyPartner},
			nil,
		)
		if err != nil {
			return err
		}

		for _, e := range shared {
			grant := &event.Participant{
				EventID:    e.ID,
				UserID:     responderID,
				Permission: event.PermissionView,
			}
			if err := tx.Participants().Upsert(grant); err != nil {
				return err
			}
		}

		s.log.Info("partner acceptance fan-out complete",
			"link_id", linkID, "invitee_id", responderID, "granted_events", len(shared))
		return nil
	})
	if err != nil {
		return nil, err
	}

	link.Status = decision
	s.log.Info("partner request resolved", "link_id", linkID, "status", decision)
	return link, nil
}

// AcceptedPartnerIDs returns the users this user invited who accepted.
func (s *PartnerService) AcceptedPartnerIDs(userID int) ([]int, error) {
	return s.repos.Partners().GetAcceptedPartnerIDs(userID)
}

// PendingIncoming lists requests awaiting this user's decision, with the
// inviter's public profile attached.
func (s *PartnerService) PendingIncoming(userID int) ([]partner.Profile, error) {
	return s.repos.Partners().GetPendingIncoming(userID)
}

// Accepted lists this user's accepted outgoing links, with the invitee's
// public profile attached.
func (s *PartnerService) Accepted(userID int) ([]partner.Profile, error) {
	return s.repos.Partners().GetAccepted(userID)
}
