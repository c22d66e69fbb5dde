package migration

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed scripts/*.sql
var scriptsFS embed.FS

// AutoMigrateStrategy lets GORM derive the schema from the model structs.
type AutoMigrateStrategy struct{}

func NewAutoMigrateStrategy() *AutoMigrateStrategy {
	return &AutoMigrateStrategy{}
}

func (s *AutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		return nil
	}
	return db.AutoMigrate(models...)
}

func (s *AutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// GooseStrategy applies the embedded versioned SQL scripts.
type GooseStrategy struct{}

func NewGooseStrategy() *GooseStrategy {
	return &GooseStrategy{}
}

func (s *GooseStrategy) Migrate(db *gorm.DB, _ ...interface{}) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	goose.SetBaseFS(scriptsFS)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.Up(sqlDB, "scripts")
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

// MigrateDown rolls back the given number of migrations.
func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	goose.SetBaseFS(scriptsFS)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	for i := 0; i < steps; i++ {
		if err := goose.Down(sqlDB, "scripts"); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
	}
	return nil
}

// Status prints the per-migration applied state.
func (s *GooseStrategy) Status(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	goose.SetBaseFS(scriptsFS)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.Status(sqlDB, "scripts")
}

// Version returns the current goose migration version.
func (s *GooseStrategy) Version(db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := goose.SetDialect("mysql"); err != nil {
		return 0, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.GetDBVersion(sqlDB)
}
