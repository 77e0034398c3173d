package migrations

import "gorm.io/gorm"

// migration004Up adds integrity constraints the models cannot express on their own
func migration004Up(db *gorm.DB) error {
	constraints := []string{
		`DO $$ BEGIN
            ALTER TABLE partners
                ADD CONSTRAINT chk_partners_no_self_link CHECK (user_id <> partner_id);
        EXCEPTION WHEN duplicate_object THEN NULL;
        END $$`,

		`DO $$ BEGIN
            ALTER TABLE comments
                ADD CONSTRAINT fk_comments_parent
                FOREIGN KEY (parent_id) REFERENCES comments(id) ON DELETE CASCADE;
        EXCEPTION WHEN duplicate_object THEN NULL;
        END $$`,

		`DO $$ BEGIN
            ALTER TABLE events
                ADD CONSTRAINT chk_events_end_after_start CHECK (end_time >= start_time);
        EXCEPTION WHEN duplicate_object THEN NULL;
        END $$`,
	}

	for _, constraintSQL := range constraints {
		if err := db.Exec(constraintSQL).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration004Down removes the integrity constraints
func migration004Down(db *gorm.DB) error {
	drops := []string{
		"ALTER TABLE events DROP CONSTRAINT IF EXISTS chk_events_end_after_start",
		"ALTER TABLE comments DROP CONSTRAINT IF EXISTS fk_comments_parent",
		"ALTER TABLE partners DROP CONSTRAINT IF EXISTS chk_partners_no_self_link",
	}

	for _, dropSQL := range drops {
		if err := db.Exec(dropSQL).Error; err != nil {
			return err
		}
	}

	return nil
}
