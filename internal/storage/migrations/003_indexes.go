package migrations

import "gorm.io/gorm"

// migration003Up creates performance indexes
func migration003Up(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)",
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",

		"CREATE INDEX IF NOT EXISTS idx_events_owner ON events(owner_id)",
		"CREATE INDEX IF NOT EXISTS idx_events_privacy ON events(privacy)",
		"CREATE INDEX IF NOT EXISTS idx_events_date ON events(date)",
		"CREATE INDEX IF NOT EXISTS idx_events_owner_date ON events(owner_id, date)",

		"CREATE INDEX IF NOT EXISTS idx_event_participants_event ON event_participants(event_id)",
		"CREATE INDEX IF NOT EXISTS idx_event_participants_user ON event_participants(user_id)",

		"CREATE INDEX IF NOT EXISTS idx_partners_user ON partners(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_partners_partner ON partners(partner_id)",
		"CREATE INDEX IF NOT EXISTS idx_partners_status ON partners(status)",

		"CREATE INDEX IF NOT EXISTS idx_comments_event ON comments(event_id)",
		"CREATE INDEX IF NOT EXISTS idx_comments_parent ON comments(parent_id)",

		"CREATE INDEX IF NOT EXISTS idx_reactions_event ON reactions(event_id)",

		"CREATE INDEX IF NOT EXISTS idx_external_calendars_user ON external_calendars(user_id)",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration003Down drops performance indexes
func migration003Down(db *gorm.DB) error {
	indexes := []string{
		"idx_users_username",
		"idx_users_email",
		"idx_events_owner",
		"idx_events_privacy",
		"idx_events_date",
		"idx_events_owner_date",
		"idx_event_participants_event",
		"idx_event_participants_user",
		"idx_partners_user",
		"idx_partners_partner",
		"idx_partners_status",
		"idx_comments_event",
		"idx_comments_parent",
		"idx_reactions_event",
		"idx_external_calendars_user",
	}

	for _, name := range indexes {
		if err := db.Exec("DROP INDEX IF EXISTS " + name).Error; err != nil {
			return err
		}
	}

	return nil
}
