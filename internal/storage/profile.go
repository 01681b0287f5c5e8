package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/snake-rogue/internal/games/snake"
	"github.com/vovakirdan/snake-rogue/internal/savefile"
)

// ProfileStore is the persistence port of one named profile: a single
// resumable session and a single best-run ghost, stored as zstd-compressed
// JSON documents. Sessions are bound to the board size they were saved on.
type ProfileStore struct {
	store   *Store
	profile string
	width   int
	height  int
}

var _ snake.Profile = (*ProfileStore)(nil)

// Profile returns the persistence port for name on a width×height board.
func (s *Store) Profile(name string, width, height int) *ProfileStore {
	return &ProfileStore{store: s, profile: name, width: width, height: height}
}

// Name returns the profile name.
func (p *ProfileStore) Name() string { return p.profile }

// SaveSession replaces the stored session.
func (p *ProfileStore) SaveSession(s snake.SavedSession) error {
	data, err := savefile.EncodeSession(s, p.width, p.height)
	if err != nil {
		return err
	}
	blob, err := savefile.Compress(data)
	if err != nil {
		return fmt.Errorf("storage: compress session: %w", err)
	}
	_, err = p.store.db.Exec(
		`INSERT INTO saved_sessions (profile, doc, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		p.profile, blob,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

// LoadSession returns the stored session. A session saved on a different
// board size is discarded and reported as absent.
func (p *ProfileStore) LoadSession() (snake.SavedSession, bool, error) {
	var blob []byte
	err := p.store.db.QueryRow(
		"SELECT doc FROM saved_sessions WHERE profile = ?", p.profile,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return snake.SavedSession{}, false, nil
	}
	if err != nil {
		return snake.SavedSession{}, false, fmt.Errorf("storage: cannot load session: %w", err)
	}
	data, err := savefile.Decompress(blob)
	if err != nil {
		return snake.SavedSession{}, false, err
	}
	saved, doc, err := savefile.DecodeSession(data)
	if err != nil {
		return snake.SavedSession{}, false, err
	}
	if doc.Width != p.width || doc.Height != p.height {
		return snake.SavedSession{}, false, p.ClearSession()
	}
	return saved, true, nil
}

// ClearSession removes the stored session, if any.
func (p *ProfileStore) ClearSession() error {
	if _, err := p.store.db.Exec("DELETE FROM saved_sessions WHERE profile = ?", p.profile); err != nil {
		return fmt.Errorf("storage: cannot clear session: %w", err)
	}
	return nil
}

// BestRun returns the stored best-run ghost.
func (p *ProfileStore) BestRun() (snake.GhostRun, bool, error) {
	var blob []byte
	err := p.store.db.QueryRow(
		"SELECT doc FROM ghost_runs WHERE profile = ?", p.profile,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return snake.GhostRun{}, false, nil
	}
	if err != nil {
		return snake.GhostRun{}, false, fmt.Errorf("storage: cannot load best run: %w", err)
	}
	data, err := savefile.Decompress(blob)
	if err != nil {
		return snake.GhostRun{}, false, err
	}
	run, err := savefile.DecodeGhost(data)
	if err != nil {
		return snake.GhostRun{}, false, err
	}
	return run, true, nil
}

// SaveBestRun replaces the stored ghost and records the score.
func (p *ProfileStore) SaveBestRun(run snake.GhostRun) error {
	data, err := savefile.EncodeGhost(run)
	if err != nil {
		return err
	}
	blob, err := savefile.Compress(data)
	if err != nil {
		return fmt.Errorf("storage: compress ghost: %w", err)
	}
	_, err = p.store.db.Exec(
		`INSERT INTO ghost_runs (profile, score, level, seed, doc, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET
		   score = excluded.score, level = excluded.level, seed = excluded.seed,
		   doc = excluded.doc, updated_at = excluded.updated_at`,
		p.profile, run.Score, run.LevelIndex, run.Seed, blob,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best run: %w", err)
	}
	return nil
}
