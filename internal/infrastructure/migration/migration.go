// Package migration manages the database schema, either through GORM
// AutoMigrate for development or versioned SQL scripts via goose for
// everything else.
package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"carsub/internal/shared/logger"
)

// Strategy applies schema changes to the database.
type Strategy interface {
	Migrate(db *gorm.DB, models ...interface{}) error
	GetName() string
}

// Manager runs migrations with the strategy picked for the environment.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks AutoMigrate for development and goose scripts otherwise.
func NewManager(environment string) *Manager {
	var strategy Strategy
	switch strings.ToLower(environment) {
	case "development", "dev":
		strategy = NewAutoMigrateStrategy()
	default:
		strategy = NewGooseStrategy()
	}

	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().Named("migration"),
	}
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().Named("migration"),
	}
}

// Migrate executes the configured migration strategy.
func (m *Manager) Migrate(db *gorm.DB, models ...interface{}) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed", "strategy", m.strategy.GetName())
	return nil
}
