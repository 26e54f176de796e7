package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/strmangle"
	"github.com/friendsofgo/errors"
	_ "github.com/lib/pq"

	"github.com/nrfta/searchresult-go"
)

// DefaultTable is the table Postgres uses unless WithTable is given.
const DefaultTable = "searchresult_storage"

// Postgres stores each record set as one JSONB row keyed by identifier.
//
// Table layout:
//
//	identifier TEXT PRIMARY KEY
//	data       JSONB NOT NULL
//	updated_at TIMESTAMPTZ NOT NULL
type Postgres struct {
	exec  boil.ContextExecutor
	table string
	now   func() time.Time
}

var _ Store = (*Postgres)(nil)

// storageRow is one row of the storage table.
type storageRow struct {
	Identifier string    `boil:"identifier"`
	Data       null.JSON `boil:"data"`
	UpdatedAt  null.Time `boil:"updated_at"`
}

// PostgresOption configures a Postgres source.
type PostgresOption func(*Postgres)

// WithTable overrides the storage table name. The name may be schema
// qualified (e.g. "diagnostics.records").
func WithTable(table string) PostgresOption {
	return func(p *Postgres) {
		if table != "" {
			p.table = table
		}
	}
}

// NewPostgres returns a source on top of exec, usually a *sql.DB opened with
// the lib/pq driver.
func NewPostgres(exec boil.ContextExecutor, opts ...PostgresOption) *Postgres {
	p := &Postgres{
		exec:  exec,
		table: DefaultTable,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OpenPostgres opens and pings a lib/pq connection for dsn.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return db, nil
}

// EnsureSchema creates the storage table when it does not exist yet.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		identifier TEXT PRIMARY KEY,
		data JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`, p.quotedTable())

	if _, err := queries.Raw(query).ExecContext(ctx, p.exec); err != nil {
		return errors.Wrap(err, "create storage table")
	}
	return nil
}

// Read loads the record set of identifier. A missing row is an empty set.
func (p *Postgres) Read(ctx context.Context, identifier string) ([]searchresult.Record, error) {
	row, found, err := p.fetch(ctx, identifier)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", identifier)
	}
	if !found || !row.Data.Valid {
		return []searchresult.Record{}, nil
	}

	records, err := DecodeRecords(row.Data.JSON)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", identifier)
	}
	return records, nil
}

// Write upserts the record set of identifier.
func (p *Postgres) Write(ctx context.Context, identifier string, records []searchresult.Record) error {
	if identifier == "" {
		return ErrEmptyIdentifier
	}

	data, err := encodeRecords(records)
	if err != nil {
		return err
	}

	row := storageRow{
		Identifier: identifier,
		Data:       null.JSONFrom(data),
		UpdatedAt:  null.TimeFrom(p.now()),
	}

	query := fmt.Sprintf(`INSERT INTO %s (identifier, data, updated_at) VALUES ($1, $2::jsonb, $3)
		ON CONFLICT (identifier) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		p.quotedTable(),
	)

	if _, err := queries.Raw(query, row.Identifier, string(row.Data.JSON), row.UpdatedAt).ExecContext(ctx, p.exec); err != nil {
		return errors.Wrapf(err, "write %s", identifier)
	}
	return nil
}

// UpdatedAt returns when identifier was last written, and false when it never was.
func (p *Postgres) UpdatedAt(ctx context.Context, identifier string) (time.Time, bool, error) {
	row, found, err := p.fetch(ctx, identifier)
	if err != nil {
		return time.Time{}, false, errors.Wrapf(err, "read %s", identifier)
	}
	if !found {
		return time.Time{}, false, nil
	}
	return row.UpdatedAt.Time, row.UpdatedAt.Valid, nil
}

func (p *Postgres) fetch(ctx context.Context, identifier string) (storageRow, bool, error) {
	query := fmt.Sprintf(
		`SELECT identifier, data, updated_at FROM %s WHERE identifier = $1`,
		p.quotedTable(),
	)

	var row storageRow
	err := queries.Raw(query, identifier).Bind(ctx, p.exec, &row)
	if errors.Cause(err) == sql.ErrNoRows {
		return row, false, nil
	}
	if err != nil {
		return row, false, err
	}
	return row, true, nil
}

func (p *Postgres) quotedTable() string {
	return strmangle.IdentQuote('"', '"', p.table)
}
