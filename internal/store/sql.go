package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/riskreg/riskreg/internal/register"
	"github.com/riskreg/riskreg/internal/risk"
	sharederrors "github.com/riskreg/riskreg/pkg/shared/errors"
)

var schemas = map[string]string{
	DriverSQLite: `
	CREATE TABLE IF NOT EXISTS risks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		asset TEXT NOT NULL,
		threat TEXT NOT NULL,
		likelihood INTEGER NOT NULL,
		impact INTEGER NOT NULL,
		score INTEGER NOT NULL,
		level TEXT NOT NULL
	)`,
	DriverPostgres: `
	CREATE TABLE IF NOT EXISTS risks (
		id BIGSERIAL PRIMARY KEY,
		asset TEXT NOT NULL,
		threat TEXT NOT NULL,
		likelihood INTEGER NOT NULL,
		impact INTEGER NOT NULL,
		score INTEGER NOT NULL,
		level TEXT NOT NULL
	)`,
}

const selectColumns = `SELECT id, asset, threat, likelihood, impact, score, level FROM risks`

// SQL is a Store backed by sqlite or postgres through sqlx.
type SQL struct {
	db     *sqlx.DB
	driver string
	logger hclog.Logger
}

var _ Store = (*SQL)(nil)

// OpenSQL connects to the database and creates the risks table if needed.
func OpenSQL(driver, dsn string, logger hclog.Logger) (*SQL, error) {
	schema, ok := schemas[driver]
	if !ok {
		return nil, sharederrors.NewNotImplementedError("OpenSQL", driver)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		// one connection so ":memory:" databases are shared across calls
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Debug("record store opened", "driver", driver)
	return &SQL{db: db, driver: driver, logger: logger}, nil
}

func (s *SQL) Create(ctx context.Context, in risk.Input) (risk.Record, error) {
	in, err := prepare(in)
	if err != nil {
		return risk.Record{}, err
	}

	r := risk.NewRecord(0, in)
	query := s.db.Rebind(`INSERT INTO risks (asset, threat, likelihood, impact, score, level)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
	if err := s.db.QueryRowxContext(ctx, query,
		r.Asset, r.Threat, r.Likelihood, r.Impact, r.Score, string(r.Level)).Scan(&r.ID); err != nil {
		return risk.Record{}, fmt.Errorf("failed to insert risk record: %w", err)
	}

	s.logger.Debug("risk record stored", "id", r.ID, "level", r.Level)
	return r, nil
}

func (s *SQL) List(ctx context.Context, filter register.Filter) ([]risk.Record, error) {
	var (
		records []risk.Record
		err     error
	)
	if filter == register.FilterAll || filter == "" {
		err = s.db.SelectContext(ctx, &records, selectColumns+` ORDER BY id`)
	} else {
		err = s.db.SelectContext(ctx, &records, s.db.Rebind(selectColumns+` WHERE level = ? ORDER BY id`), string(filter))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list risk records: %w", err)
	}
	if records == nil {
		records = []risk.Record{}
	}
	return records, nil
}

func (s *SQL) Get(ctx context.Context, id int64) (risk.Record, error) {
	var r risk.Record
	err := s.db.GetContext(ctx, &r, s.db.Rebind(selectColumns+` WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return risk.Record{}, ErrNotFound
	}
	if err != nil {
		return risk.Record{}, fmt.Errorf("failed to get risk record %d: %w", id, err)
	}
	return r, nil
}

func (s *SQL) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM risks WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete risk record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete risk record %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQL) Close() error {
	return s.db.Close()
}
