package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/domain/partner"
	"github.com/duetcal/duetcal-api/internal/logger"
)

// PartnerRepository implements storage.PartnerRepository using GORM
type PartnerRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPartnerRepository creates a new PostgreSQL partner repository
func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{
		db:  db,
		log: logger.Repository("partner"),
	}
}

func (r *PartnerRepository) Create(l *partner.Link) error {
	r.log.Debug("creating partner link", "user_id", l.UserID, "partner_id", l.PartnerID)

	if err := r.db.Create(l).Error; err != nil {
		r.log.Error("failed to create partner link", "user_id", l.UserID, "partner_id", l.PartnerID, "error", err)
		return fmt.Errorf("failed to create partner link: %w", err)
	}

	r.log.Info("partner link created", "link_id", l.ID, "user_id", l.UserID, "partner_id", l.PartnerID)
	return nil
}

func (r *PartnerRepository) GetByID(id int) (*partner.Link, error) {
	r.log.Debug("retrieving partner link by ID", "link_id", id)

	var l partner.Link
	if err := r.db.First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFound("partner request", id)
		}
		r.log.Error("failed to retrieve partner link", "link_id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve partner link: %w", err)
	}

	return &l, nil
}

// UpdateStatus resolves the link only while it is still pending. Zero rows
// affected means the link is gone or already resolved; both surface as the
// same NotFound so a concurrent responder cannot overwrite a terminal status.
func (r *PartnerRepository) UpdateStatus(id int, status partner.Status) error {
	r.log.Debug("updating partner link status", "link_id", id, "status", status)

	result := r.db.Model(&partner.Link{}).
		Where("id = ? AND status = ?", id, partner.StatusPending).
		Update("status", status)
	if result.Error != nil {
		r.log.Error("failed to update partner link status", "link_id", id, "error", result.Error)
		return fmt.Errorf("failed to update partner link status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.NewNotFound("pending partner request", id)
	}

	r.log.Info("partner link status updated", "link_id", id, "status", status)
	return nil
}

// GetAcceptedPartnerIDs returns the IDs of users this user invited and who
// accepted. The set is directional; it never includes users who invited this
// user.
func (r *PartnerRepository) GetAcceptedPartnerIDs(userID int) ([]int, error) {
	r.log.Debug("retrieving accepted partner IDs", "user_id", userID)

	var ids []int
	if err := r.db.Model(&partner.Link{}).
		Where("user_id = ? AND status = ?", userID, partner.StatusAccepted).
		Pluck("partner_id", &ids).Error; err != nil {
		r.log.Error("failed to retrieve accepted partner IDs", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to retrieve accepted partner IDs: %w", err)
	}

	return ids, nil
}

// GetAcceptedInviterIDs returns the IDs of users whose invitations this user
// accepted. This is the incoming side of the link: the owners whose
// partner-level events the user may see.
func (r *PartnerRepository) GetAcceptedInviterIDs(userID int) ([]int, error) {
	r.log.Debug("retrieving accepted inviter IDs", "user_id", userID)

	var ids []int
	if err := r.db.Model(&partner.Link{}).
		Where("partner_id = ? AND status = ?", userID, partner.StatusAccepted).
		Pluck("user_id", &ids).Error; err != nil {
		r.log.Error("failed to retrieve accepted inviter IDs", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to retrieve accepted inviter IDs: %w", err)
	}

	return ids, nil
}

func (r *PartnerRepository) HasActiveLink(userID, partnerID int) (bool, error) {
	var count int64
	if err := r.db.Model(&partner.Link{}).
		Where("user_id = ? AND partner_id = ? AND status IN ?",
			userID, partnerID, []partner.Status{partner.StatusPending, partner.StatusAccepted}).
		Count(&count).Error; err != nil {
		r.log.Error("failed to check existing partner link", "user_id", userID, "partner_id", partnerID, "error", err)
		return false, fmt.Errorf("failed to check existing partner link: %w", err)
	}
	return count > 0, nil
}

// GetPendingIncoming returns pending requests addressed to the user, joined
// with the inviter's public profile.
func (r *PartnerRepository) GetPendingIncoming(userID int) ([]partner.Profile, error) {
	r.log.Debug("retrieving pending incoming partner requests", "user_id", userID)

	var links []partner.Link
	if err := r.db.Where("partner_id = ? AND status = ?", userID, partner.StatusPending).
		Order("id ASC").
		Find(&links).Error; err != nil {
		r.log.Error("failed to retrieve pending partner requests", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to retrieve pending partner requests: %w", err)
	}

	return r.withProfiles(links, func(l partner.Link) int { return l.UserID })
}

// GetAccepted returns this user's accepted outgoing links, joined with the
// invitee's public profile.
func (r *PartnerRepository) GetAccepted(userID int) ([]partner.Profile, error) {
	r.log.Debug("retrieving accepted partner links", "user_id", userID)

	var links []partner.Link
	if err := r.db.Where("user_id = ? AND status = ?", userID, partner.StatusAccepted).
		Order("id ASC").
		Find(&links).Error; err != nil {
		r.log.Error("failed to retrieve accepted partner links", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to retrieve accepted partner links: %w", err)
	}

	return r.withProfiles(links, func(l partner.Link) int { return l.PartnerID })
}

func (r *PartnerRepository) withProfiles(links []partner.Link, counterparty func(partner.Link) int) ([]partner.Profile, error) {
	profiles, err := publicProfiles(r.db, links, counterparty)
	if err != nil {
		r.log.Error("failed to load partner profiles", "error", err)
		return nil, err
	}

	rows := make([]partner.Profile, 0, len(links))
	for _, l := range links {
		rows = append(rows, partner.Profile{Link: l, Partner: profiles[counterparty(l)]})
	}
	return rows, nil
}
