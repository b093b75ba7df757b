package gameserver

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

var errRosterNotFound = errors.New("roster not found")

// rosterStorage keeps the names of a table under a group name, per chat
type rosterStorage interface {
	saveRoster(ctx context.Context, chat int64, group string, names []string) error // replaces a group of the same name
	loadRoster(ctx context.Context, chat int64, group string) ([]string, error)     // errRosterNotFound if the group doesn't exist
	listRosters(ctx context.Context, chat int64) ([]string, error)
}

//go:embed migrations/*.sql
var migrations embed.FS

type rosterDb struct {
	db *sql.DB
}

func wrapUnableToConnect(err error) error {
	return fmt.Errorf("unable to connect to database: %w", err)
}

func openRosterDb(ctx context.Context, driverName string, dbUrl string) (*rosterDb, error) {
	db, err := sql.Open(driverName, dbUrl)
	if err != nil {
		return nil, wrapUnableToConnect(err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, wrapUnableToConnect(err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &rosterDb{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to migrate rosters: %w", err)
	}
	return nil
}

func (r *rosterDb) Close() error {
	return r.db.Close()
}

const upsertRosterQuery = `
INSERT INTO rosters (chat_id, name) VALUES ($1, $2)
ON CONFLICT (chat_id, name) DO UPDATE SET created_at = NOW()
RETURNING roster_id
`

const clearRosterQuery = `
DELETE FROM roster_names WHERE roster_id=$1
`

const insertNameQuery = `
INSERT INTO roster_names (roster_id, seat, name) VALUES ($1, $2, $3)
`

func (r *rosterDb) saveRoster(ctx context.Context, chat int64, group string, names []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var rosterID int
	if err := tx.QueryRowContext(ctx, upsertRosterQuery, chat, group).Scan(&rosterID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, clearRosterQuery, rosterID); err != nil {
		return err
	}
	for seat, name := range names {
		if _, err := tx.ExecContext(ctx, insertNameQuery, rosterID, seat, name); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const rosterNamesQuery = `
SELECT roster_names.name
FROM
rosters INNER JOIN roster_names USING(roster_id)
WHERE rosters.chat_id=$1 AND rosters.name=$2
ORDER BY seat
`

func (r *rosterDb) loadRoster(ctx context.Context, chat int64, group string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, rosterNamesQuery, chat, group)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errRosterNotFound
	}
	return names, nil
}

const rostersQuery = `
SELECT name FROM rosters
WHERE chat_id=$1
ORDER BY name
`

func (r *rosterDb) listRosters(ctx context.Context, chat int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, rostersQuery, chat)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]string, 0)
	for rows.Next() {
		var group string
		if err := rows.Scan(&group); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}
