// Package store persists designed installations in SQLite.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/stanrw/enerwiseuk-sub000/internal/config"
	"github.com/stanrw/enerwiseuk-sub000/pkg/cost"
	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
	"github.com/stanrw/enerwiseuk-sub000/pkg/installation"
)

//go:embed schema.sql
var schema string

const (
	dirPermissions    = 0750
	msPerSecond       = 1000
	connectionTimeout = 5 * time.Second

	// DefaultListLimit caps List when no limit is given.
	DefaultListLimit = 50
)

// Store wraps a SQLite connection holding installations.
//
// All methods are safe for concurrent use from multiple goroutines.
type Store struct {
	db   *sql.DB
	path string
}

// Record is a stored installation with the inputs needed to redraw it.
type Record struct {
	ID           string                     `json:"id"`
	Address      string                     `json:"address,omitempty"`
	CreatedAt    time.Time                  `json:"createdAt"`
	Insights     *insights.BuildingInsights `json:"-"`
	Installation *installation.Installation `json:"installation"`
	Cost         *cost.Report               `json:"cost"`
}

// Summary is the list view of a stored installation.
type Summary struct {
	ID                string    `json:"id"`
	Address           string    `json:"address,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	TotalPanels       int       `json:"totalPanels"`
	SystemCapacityKw  float64   `json:"systemCapacityKw"`
	YearlyEnergyDcKwh float64   `json:"yearlyEnergyDcKwh"`
}

// Open opens (creating if needed) the database at cfg.Path and applies the
// schema.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), dirPermissions); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	connStr := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on",
		cfg.Path,
		cfg.BusyTimeout*msPerSecond,
	)
	if cfg.WALMode {
		connStr += "&_journal_mode=WAL&_synchronous=NORMAL"
	}

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck // best effort on error path
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close() //nolint:errcheck // best effort on error path
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db, path: cfg.Path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// Path returns the filesystem path to the database file.
func (s *Store) Path() string {
	return s.path
}

// HealthCheck verifies the database is accessible.
func (s *Store) HealthCheck(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// Save stores an installation under a new UUID and returns the record.
func (s *Store) Save(ctx context.Context, address string, bi *insights.BuildingInsights, inst *installation.Installation, report *cost.Report) (*Record, error) {
	if inst == nil {
		return nil, errors.New("store: nil installation")
	}
	rec := &Record{
		ID:           uuid.NewString(),
		Address:      address,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
		Insights:     bi,
		Installation: inst,
		Cost:         report,
	}

	biJSON, err := json.Marshal(bi)
	if err != nil {
		return nil, fmt.Errorf("encoding insights: %w", err)
	}
	instJSON, err := json.Marshal(inst)
	if err != nil {
		return nil, fmt.Errorf("encoding installation: %w", err)
	}
	costJSON, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encoding cost: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO installations
			(id, address, created_at, total_panels, system_kw, yearly_energy_kwh,
			 insights_json, installation_json, cost_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Address, rec.CreatedAt.Format(time.RFC3339),
		inst.Summary.TotalPanels, inst.Summary.SystemCapacityKw, inst.Summary.YearlyEnergyDcKwh,
		string(biJSON), string(instJSON), string(costJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting installation: %w", err)
	}
	return rec, nil
}

// Get loads the installation with the given ID.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	var (
		rec                        Record
		created                    string
		biJSON, instJSON, costJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, address, created_at, insights_json, installation_json, cost_json
		FROM installations WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Address, &created, &biJSON, &instJSON, &costJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying installation: %w", err)
	}

	if rec.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(biJSON), &rec.Insights); err != nil {
		return nil, fmt.Errorf("decoding insights: %w", err)
	}
	if err := json.Unmarshal([]byte(instJSON), &rec.Installation); err != nil {
		return nil, fmt.Errorf("decoding installation: %w", err)
	}
	if err := json.Unmarshal([]byte(costJSON), &rec.Cost); err != nil {
		return nil, fmt.Errorf("decoding cost: %w", err)
	}
	return &rec, nil
}

// List returns the most recent installations, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, address, created_at, total_panels, system_kw, yearly_energy_kwh
		FROM installations ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing installations: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var (
			sum     Summary
			created string
		)
		if err := rows.Scan(&sum.ID, &sum.Address, &created, &sum.TotalPanels, &sum.SystemCapacityKw, &sum.YearlyEnergyDcKwh); err != nil {
			return nil, fmt.Errorf("scanning installation: %w", err)
		}
		if sum.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating installations: %w", err)
	}
	return out, nil
}
