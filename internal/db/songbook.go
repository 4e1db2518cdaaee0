package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sukalov/lyricplayer/internal/logger"
	"github.com/sukalov/lyricplayer/internal/songbook"
	"github.com/sukalov/lyricplayer/internal/utils"
)

type row struct {
	ID     string
	Title  string
	Artist sql.NullString
	Lines  string
	Pauses string
}

// SaveSong inserts the song or replaces the stored one with the same ID.
func (s *Store) SaveSong(ctx context.Context, song songbook.Song) error {
	r, err := encodeSong(song)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO lyrics (id, title, artist, lines, pauses, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			lines = excluded.lines,
			pauses = excluded.pauses,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, r.ID, r.Title, r.Artist, r.Lines, r.Pauses, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save song %s: %w", song.ID, err)
	}

	logger.Info(fmt.Sprintf("saved song %s (%d lines)", song.ID, len(song.Lines)))
	return nil
}

func (s *Store) FindSongByID(ctx context.Context, id string) (songbook.Song, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var r row
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, artist, lines, pauses FROM lyrics WHERE id = ?`, id,
	).Scan(&r.ID, &r.Title, &r.Artist, &r.Lines, &r.Pauses)
	if errors.Is(err, sql.ErrNoRows) {
		return songbook.Song{}, false, nil
	}
	if err != nil {
		return songbook.Song{}, false, fmt.Errorf("failed to query song %s: %w", id, err)
	}

	song, err := decodeSong(r)
	if err != nil {
		return songbook.Song{}, false, err
	}
	return song, true, nil
}

// ListSongs returns every stored song ordered by ID. Rows that fail to
// decode are logged and skipped.
func (s *Store) ListSongs(ctx context.Context) ([]songbook.Song, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT id, title, artist, lines, pauses FROM lyrics ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var songs []songbook.Song
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.ID, &r.Title, &r.Artist, &r.Lines, &r.Pauses); err != nil {
			logger.Error(fmt.Sprintf("error scanning row: %v", err))
			continue
		}
		song, err := decodeSong(r)
		if err != nil {
			logger.Error(err.Error())
			continue
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration: %w", err)
	}

	return songs, nil
}

// encodeSong stores texts as a JSON array of strings and pauses as a JSON
// array of seconds.
func encodeSong(song songbook.Song) (row, error) {
	texts, err := json.Marshal(song.Texts())
	if err != nil {
		return row{}, fmt.Errorf("failed to encode lines: %w", err)
	}

	seconds := make([]float64, len(song.Lines))
	for i, line := range song.Lines {
		seconds[i] = utils.DurationToSeconds(line.Pause)
	}
	pauses, err := json.Marshal(seconds)
	if err != nil {
		return row{}, fmt.Errorf("failed to encode pauses: %w", err)
	}

	return row{
		ID:     song.ID,
		Title:  song.Title,
		Artist: sql.NullString{String: song.Artist, Valid: song.Artist != ""},
		Lines:  string(texts),
		Pauses: string(pauses),
	}, nil
}

func decodeSong(r row) (songbook.Song, error) {
	var texts []string
	if err := json.Unmarshal([]byte(r.Lines), &texts); err != nil {
		return songbook.Song{}, fmt.Errorf("song %s has malformed lines: %w", r.ID, err)
	}

	var seconds []float64
	if err := json.Unmarshal([]byte(r.Pauses), &seconds); err != nil {
		return songbook.Song{}, fmt.Errorf("song %s has malformed pauses: %w", r.ID, err)
	}

	pauses := make([]time.Duration, len(seconds))
	for i, secs := range seconds {
		if err := utils.CheckSeconds(secs); err != nil {
			return songbook.Song{}, fmt.Errorf("song %s has bad pause on line %d: %w", r.ID, i+1, err)
		}
		pauses[i] = utils.SecondsToDuration(secs)
	}

	song, err := songbook.NewSong(r.ID, r.Title, texts, pauses)
	if err != nil {
		return songbook.Song{}, fmt.Errorf("song %s: %w", r.ID, err)
	}
	if r.Artist.Valid {
		song.Artist = r.Artist.String
	}
	return song, nil
}
