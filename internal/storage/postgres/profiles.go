package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/duetcal/duetcal-api/internal/domain/user"
)

// publicProfiles loads the public profile for every user referenced by rows,
// keyed by user ID. Used to stitch counterparty profiles onto grants, links
// and comments without per-row queries.
func publicProfiles[T any](db *gorm.DB, rows []T, key func(T) int) (map[int]user.Public, error) {
	ids := make([]int, 0, len(rows))
	seen := make(map[int]bool, len(rows))
	for _, row := range rows {
		id := key(row)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	profiles := make(map[int]user.Public, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	var users []user.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load user profiles: %w", err)
	}
	for i := range users {
		profiles[users[i].ID] = users[i].Public()
	}
	return profiles, nil
}
