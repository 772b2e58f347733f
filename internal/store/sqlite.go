package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements DB on a local SQLite file.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (or creates) the audit database at path.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps concurrent round writes from blocking reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &SQLiteDB{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteDB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			game TEXT NOT NULL,
			amount INTEGER NOT NULL,
			selection TEXT NOT NULL,
			outcome TEXT NOT NULL,
			won INTEGER NOT NULL,
			multiplier TEXT NOT NULL,
			payout INTEGER NOT NULL,
			server_seed_hash TEXT,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_player ON rounds(player, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_game ON rounds(game)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func (s *SQLiteDB) SaveRound(ctx context.Context, rec RoundRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds
			(id, player, game, amount, selection, outcome, won, multiplier, payout, server_seed_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.Player, rec.Game, rec.Amount, rec.SelectionJSON, rec.OutcomeJSON,
		rec.Won, rec.Multiplier, rec.Payout, rec.ServerSeedHash, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save round %s: %w", rec.ID, err)
	}
	return nil
}

func (s *SQLiteDB) GetRound(ctx context.Context, id uuid.UUID) (RoundRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, player, game, amount, selection, outcome, won, multiplier, payout, server_seed_hash, created_at
		 FROM rounds WHERE id = ?`, id.String())

	rec, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RoundRecord{}, ErrNotFound
	}
	if err != nil {
		return RoundRecord{}, fmt.Errorf("failed to load round %s: %w", id, err)
	}
	return rec, nil
}

func (s *SQLiteDB) ListRounds(ctx context.Context, player string, limit int) ([]RoundRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player, game, amount, selection, outcome, won, multiplier, payout, server_seed_hash, created_at
		 FROM rounds WHERE player = ? ORDER BY created_at DESC LIMIT ?`, player, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds for %s: %w", player, err)
	}
	defer rows.Close()

	var recs []RoundRecord
	for rows.Next() {
		rec, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(row scanner) (RoundRecord, error) {
	var rec RoundRecord
	var id string
	err := row.Scan(&id, &rec.Player, &rec.Game, &rec.Amount, &rec.SelectionJSON, &rec.OutcomeJSON,
		&rec.Won, &rec.Multiplier, &rec.Payout, &rec.ServerSeedHash, &rec.CreatedAt)
	if err != nil {
		return RoundRecord{}, err
	}
	rec.ID, err = uuid.Parse(id)
	if err != nil {
		return RoundRecord{}, fmt.Errorf("corrupt round id %q: %w", id, err)
	}
	return rec, nil
}
