package migrator

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/bivex/creatorhub/migrations"
)

// Migrator applies the embedded schema migrations to one database
type Migrator struct {
	m *migrate.Migrate
}

// New opens a migrator for databaseURL
func New(databaseURL string) (*Migrator, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("migration setup failed: %w", err)
	}
	return &Migrator{m: m}, nil
}

// Up applies every pending migration
func (m *Migrator) Up() error {
	return ignoreNoChange(m.m.Up())
}

// Down rolls back every applied migration
func (m *Migrator) Down() error {
	return ignoreNoChange(m.m.Down())
}

// Steps applies n migrations forward, or -n backward
func (m *Migrator) Steps(n int) error {
	return ignoreNoChange(m.m.Steps(n))
}

// Force sets the recorded version without running migrations
func (m *Migrator) Force(version int) error {
	return m.m.Force(version)
}

// Version reports the applied version and whether the last run failed midway
func (m *Migrator) Version() (uint, bool, error) {
	v, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Close releases the source and database handles
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}

// Up opens databaseURL, applies all migrations and closes again
func Up(databaseURL string) error {
	m, err := New(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
