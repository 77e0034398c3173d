package migrations

import "gorm.io/gorm"

// migration001Up creates the enum types used by the core tables
func migration001Up(db *gorm.DB) error {
	types := []string{
		`DO $$ BEGIN
            CREATE TYPE time_period AS ENUM ('morning', 'afternoon', 'night');
        EXCEPTION WHEN duplicate_object THEN NULL;
        END $$`,

		`DO $$ BEGIN
            CREATE TYPE privacy_level AS ENUM ('private', 'partner', 'public');
        EXCEPTION WHEN duplicate_object THEN NULL;
        END $$`,

		`DO $$ BEGIN
            CREATE TYPE recurrence_type AS ENUM ('none', 'daily', 'weekly', 'monthly', 'custom');
        EXCEPTION WHEN duplicate_object THEN NULL;
        END $$`,

		`DO $$ BEGIN
            CREATE TYPE permission_level AS ENUM ('view', 'edit');
        EXCEPTION WHEN duplicate_object THEN NULL;
        END $$`,

		`DO $$ BEGIN
            CREATE TYPE partner_status AS ENUM ('pending', 'accepted', 'rejected');
        EXCEPTION WHEN duplicate_object THEN NULL;
        END $$`,
	}

	for _, typeSQL := range types {
		if err := db.Exec(typeSQL).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration001Down drops the enum types
func migration001Down(db *gorm.DB) error {
	types := []string{
		"partner_status",
		"permission_level",
		"recurrence_type",
		"privacy_level",
		"time_period",
	}

	for _, name := range types {
		if err := db.Exec("DROP TYPE IF EXISTS " + name + " CASCADE").Error; err != nil {
			return err
		}
	}

	return nil
}
