package persist

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/httpfs"
)

var (
	//go:embed migrations
	migrations embed.FS

	ErrDBConnect  = errors.New("db connect error")
	ErrMigrate    = errors.New("failed to migrate db schema")
	ErrNoSnapshot = errors.New("no stored snapshot")
	ErrStore      = errors.New("store error")
)

// Store is the durable side of the persistence boundary. One snapshot row
// plus an append-only action audit trail.
type Store interface {
	LoadSnapshot(ctx context.Context) ([]byte, error)
	SaveSnapshot(ctx context.Context, body []byte) error
	AppendAction(ctx context.Context, row AuditRow) error
	RecentActions(ctx context.Context, limit int) ([]AuditRow, error)
}

// AuditRow is one line of the persisted activity trail. Unlike the in-memory
// history it keeps undo markers, so the log page can show the full story.
type AuditRow struct {
	TeamID    string
	PlayerID  string
	Label     string
	CreatedOn time.Time
}

func configureConnection(ctx context.Context, connection *sql.DB) error {
	parallelism := min(8, max(2, runtime.GOMAXPROCS(0)))
	connection.SetMaxOpenConns(parallelism)
	connection.SetMaxIdleConns(parallelism)
	connection.SetConnMaxLifetime(0)
	connection.SetConnMaxIdleTime(0)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA main.synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, errPragma := connection.ExecContext(ctx, pragma); errPragma != nil {
			return errors.Join(errPragma, ErrDBConnect)
		}
	}

	return nil
}

// Open connects the sqlite store, migrating the schema when asked. An empty
// path opens an in-memory database, which the tests rely on.
func Open(ctx context.Context, path string, autoMigrate bool) (*SQLStore, error) {
	if path == "" {
		path = ":memory:"
	}

	path += "?cache=private"
	connection, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Join(err, ErrDBConnect)
	}

	if errConfig := configureConnection(ctx, connection); errConfig != nil {
		return nil, errConfig
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := connection.PingContext(pingCtx); err != nil {
		connection.Close()

		return nil, errors.Join(err, ErrDBConnect)
	}

	if autoMigrate {
		if errMigrate := Migrate(connection, true); errMigrate != nil {
			return nil, errors.Join(errMigrate, ErrDBConnect)
		}
	}

	return &SQLStore{db: connection}, nil
}

// Migrate applies the embedded schema migrations.
func Migrate(conn *sql.DB, up bool) error {
	driver, errDriver := sqlite.WithInstance(conn, &sqlite.Config{})
	if errDriver != nil {
		return errors.Join(errDriver, ErrMigrate)
	}

	source, errHTTPFS := httpfs.New(http.FS(migrations), "migrations")
	if errHTTPFS != nil {
		return errors.Join(errHTTPFS, ErrMigrate)
	}

	migrator, errMigrateInstance := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if errMigrateInstance != nil {
		return errors.Join(errMigrateInstance, ErrMigrate)
	}

	var errMigration error
	if up {
		errMigration = migrator.Up()
	} else {
		errMigration = migrator.Down()
	}

	if errMigration != nil && !errors.Is(errMigration, migrate.ErrNoChange) {
		return errors.Join(errMigration, ErrMigrate)
	}

	return nil
}

// SQLStore implements Store on sqlite.
type SQLStore struct {
	db *sql.DB
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) LoadSnapshot(ctx context.Context) ([]byte, error) {
	var body []byte
	row := s.db.QueryRowContext(ctx, `SELECT body FROM app_state WHERE app_state_id = 1`)
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshot
		}

		return nil, errors.Join(err, ErrStore)
	}

	return body, nil
}

func (s *SQLStore) SaveSnapshot(ctx context.Context, body []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_state (app_state_id, body, updated_on) VALUES (1, ?, ?)
		ON CONFLICT (app_state_id) DO UPDATE SET body = excluded.body, updated_on = excluded.updated_on`,
		body, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return errors.Join(err, ErrStore)
	}

	return nil
}

func (s *SQLStore) AppendAction(ctx context.Context, row AuditRow) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO action_log (team_id, player_id, label, created_on) VALUES (?, ?, ?, ?)`,
		row.TeamID, row.PlayerID, row.Label, row.CreatedOn.UTC().Format(time.RFC3339))
	if err != nil {
		return errors.Join(err, ErrStore)
	}

	return nil
}

func (s *SQLStore) RecentActions(ctx context.Context, limit int) ([]AuditRow, error) {
	rows, errQuery := s.db.QueryContext(ctx, `
		SELECT team_id, player_id, label, created_on
		FROM action_log ORDER BY action_log_id DESC LIMIT ?`, limit)
	if errQuery != nil {
		return nil, errors.Join(errQuery, ErrStore)
	}
	defer rows.Close()

	var audit []AuditRow
	for rows.Next() {
		var (
			row     AuditRow
			created string
		)
		if err := rows.Scan(&row.TeamID, &row.PlayerID, &row.Label, &created); err != nil {
			return nil, errors.Join(err, ErrStore)
		}
		if parsed, errParse := time.Parse(time.RFC3339, created); errParse == nil {
			row.CreatedOn = parsed
		}

		audit = append(audit, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(err, ErrStore)
	}

	return audit, nil
}
