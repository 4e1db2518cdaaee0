package lyrics

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/sukalov/lyricplayer/internal/logger"
	"github.com/sukalov/lyricplayer/internal/lyrics/parsers/amdm"
	"github.com/sukalov/lyricplayer/internal/songbook"
)

var (
	ErrUnsupportedSource = errors.New("unsupported URL source")
	ErrSongNotFound      = errors.New("song not found")
	ErrNoLines           = errors.New("song has no lyric lines")
)

// SongStore is a persistent songbook, looked up before the built-in one.
type SongStore interface {
	FindSongByID(ctx context.Context, id string) (songbook.Song, bool, error)
}

// Source says where to take lyrics from. The first non-empty field wins in
// the order URL, File, SongID.
type Source struct {
	SongID string
	URL    string
	File   string
}

// Service handles lyrics extraction for different sources
type Service struct {
	amdmParser *amdm.Parser
	store      SongStore
	linePause  time.Duration
}

// NewService creates a new lyrics service. store may be nil. linePause is
// used for lines whose source carries no timing.
func NewService(store SongStore, linePause time.Duration) *Service {
	return NewServiceWithParser(amdm.NewParser(), store, linePause)
}

func NewServiceWithParser(parser *amdm.Parser, store SongStore, linePause time.Duration) *Service {
	return &Service{
		amdmParser: parser,
		store:      store,
		linePause:  linePause,
	}
}

// Resolve loads the song described by src.
func (s *Service) Resolve(ctx context.Context, src Source) (songbook.Song, error) {
	switch {
	case src.URL != "":
		return s.ExtractLyrics(ctx, src.URL)
	case src.File != "":
		song, err := ParseSheetFile(src.File, s.linePause)
		if err != nil {
			return songbook.Song{}, err
		}
		if len(song.Lines) == 0 {
			return songbook.Song{}, fmt.Errorf("%w: %s", ErrNoLines, src.File)
		}
		return song, nil
	default:
		id := src.SongID
		if id == "" {
			id = songbook.DefaultSongID
		}
		return s.FindSong(ctx, id)
	}
}

// FindSong looks in the store first and falls back to the built-in catalog.
func (s *Service) FindSong(ctx context.Context, id string) (songbook.Song, error) {
	if s.store != nil {
		song, found, err := s.store.FindSongByID(ctx, id)
		if err != nil {
			return songbook.Song{}, fmt.Errorf("failed to look up song %s: %w", id, err)
		}
		if found {
			logger.Debug(fmt.Sprintf("FindSong: %s loaded from database", id))
			return song, nil
		}
	}

	if song, found := songbook.FindSongByID(id); found {
		return song, nil
	}

	return songbook.Song{}, fmt.Errorf("%w: %s", ErrSongNotFound, id)
}

// ExtractLyrics extracts lyrics from a URL based on the source
func (s *Service) ExtractLyrics(ctx context.Context, rawURL string) (songbook.Song, error) {
	logger.Debug(fmt.Sprintf("ExtractLyrics called with URL: %s", rawURL))

	if strings.Contains(rawURL, "amdm.ru") {
		return s.extractFromAmdm(ctx, rawURL)
	}

	logger.Error(fmt.Sprintf("Unsupported URL source: %s", rawURL))
	return songbook.Song{}, fmt.Errorf("%w: %s", ErrUnsupportedSource, rawURL)
}

func (s *Service) extractFromAmdm(ctx context.Context, rawURL string) (songbook.Song, error) {
	result, err := s.amdmParser.ExtractLyricsFromAmdm(ctx, rawURL)
	if err != nil {
		return songbook.Song{}, err
	}
	if len(result.Lines) == 0 {
		return songbook.Song{}, fmt.Errorf("%w: %s", ErrNoLines, rawURL)
	}

	id := slugFromURL(rawURL)
	title := result.Title
	if title == "" {
		title = id
	}

	pauses := make([]time.Duration, len(result.Lines))
	for i := range pauses {
		pauses[i] = s.linePause
	}

	return songbook.NewSong(id, title, result.Lines, pauses)
}

// slugFromURL turns ".../akkordi/kino/1/gruppa_krovi/" into "gruppa_krovi".
func slugFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return rawURL
	}
	slug := path.Base(strings.TrimSuffix(u.Path, "/"))
	if slug == "." || slug == "/" {
		return u.Host
	}
	return slug
}
