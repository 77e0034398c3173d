package postgres

import (
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/duetcal/duetcal-api/internal/config"
	"github.com/duetcal/duetcal-api/internal/logger"
	"github.com/duetcal/duetcal-api/internal/storage"
)

// Container implements storage.RepositoryContainer on top of GORM
type Container struct {
	db              *gorm.DB
	log             *log.Logger
	userRepo        storage.UserRepository
	eventRepo       storage.EventRepository
	participantRepo storage.ParticipantRepository
	commentRepo     storage.CommentRepository
	reactionRepo    storage.ReactionRepository
	partnerRepo     storage.PartnerRepository
	calendarRepo    storage.CalendarRepository
}

// NewContainer connects, migrates and initializes all repositories
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.Repository("postgres_container")
	log.Info("Initializing PostgreSQL repository container...")

	db, err := Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		log.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	container := NewContainerWithDB(db)

	if err := container.Health(); err != nil {
		log.Error("Container health check failed", "error", err)
		return nil, fmt.Errorf("container health check failed: %w", err)
	}

	log.Info("PostgreSQL repository container initialized successfully")
	return container, nil
}

// NewContainerWithDB creates a container with an existing database connection.
// It is also what WithTransaction uses to scope every repository to one tx.
func NewContainerWithDB(db *gorm.DB) *Container {
	return &Container{
		db:              db,
		log:             logger.Repository("postgres_container"),
		userRepo:        NewUserRepository(db),
		eventRepo:       NewEventRepository(db),
		participantRepo: NewParticipantRepository(db),
		commentRepo:     NewCommentRepository(db),
		reactionRepo:    NewReactionRepository(db),
		partnerRepo:     NewPartnerRepository(db),
		calendarRepo:    NewCalendarRepository(db),
	}
}

func (c *Container) Users() storage.UserRepository               { return c.userRepo }
func (c *Container) Events() storage.EventRepository             { return c.eventRepo }
func (c *Container) Participants() storage.ParticipantRepository { return c.participantRepo }
func (c *Container) Comments() storage.CommentRepository         { return c.commentRepo }
func (c *Container) Reactions() storage.ReactionRepository       { return c.reactionRepo }
func (c *Container) Partners() storage.PartnerRepository         { return c.partnerRepo }
func (c *Container) Calendars() storage.CalendarRepository       { return c.calendarRepo }

// WithTransaction runs fn against a container bound to a single database
// transaction. Any error from fn rolls the whole transaction back.
func (c *Container) WithTransaction(fn func(storage.RepositoryContainer) error) error {
	return c.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewContainerWithDB(tx))
	})
}

// Health performs a health check on the database connection
func (c *Container) Health() error {
	if err := Ping(c.db); err != nil {
		c.log.Error("Database health check failed", "error", err)
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// Close closes the underlying database connection
func (c *Container) Close() error {
	c.log.Info("Closing PostgreSQL repository container...")

	if c.db == nil {
		c.log.Warn("Database connection is nil, nothing to close")
		return nil
	}

	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	c.log.Info("PostgreSQL repository container closed successfully")
	return nil
}
