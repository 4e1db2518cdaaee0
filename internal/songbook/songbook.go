package songbook

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var ErrLengthMismatch = errors.New("lyric lines and pauses differ in length")

// Line is one lyric line and the pause that follows it.
type Line struct {
	Text  string        `json:"text"`
	Pause time.Duration `json:"pause"`
}

type Song struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
	Lines  []Line `json:"lines"`
}

// NewSong pairs texts with pauses positionally. Both slices must be the same
// length.
func NewSong(id, title string, texts []string, pauses []time.Duration) (Song, error) {
	if len(texts) != len(pauses) {
		return Song{}, fmt.Errorf("%w: %d lines, %d pauses", ErrLengthMismatch, len(texts), len(pauses))
	}

	lines := make([]Line, len(texts))
	for i := range texts {
		lines[i] = Line{Text: texts[i], Pause: pauses[i]}
	}

	return Song{ID: id, Title: title, Lines: lines}, nil
}

var ErrNegativePause = errors.New("negative pause")

// Validate checks that every pause is non-negative.
func (s Song) Validate() error {
	for i, line := range s.Lines {
		if line.Pause < 0 {
			return fmt.Errorf("%w: line %d of %s", ErrNegativePause, i+1, s.ID)
		}
	}
	return nil
}

func (s Song) Texts() []string {
	texts := make([]string, len(s.Lines))
	for i, line := range s.Lines {
		texts[i] = line.Text
	}
	return texts
}

func (s Song) Pauses() []time.Duration {
	pauses := make([]time.Duration, len(s.Lines))
	for i, line := range s.Lines {
		pauses[i] = line.Pause
	}
	return pauses
}

// Duration is the time the lines take to reveal at the given char delay,
// not counting the intro pause.
func (s Song) Duration(charDelay time.Duration) time.Duration {
	var total time.Duration
	for _, line := range s.Lines {
		total += time.Duration(len([]rune(line.Text))) * charDelay
		total += line.Pause
	}
	return total
}

const DefaultSongID = "pal-pal"

var songs = []Song{
	{
		ID:    DefaultSongID,
		Title: "Pal Pal",
		Lines: []Line{
			{Text: "Mein ab kyun hosh mein aata nahi?", Pause: 300 * time.Millisecond},
			{Text: "Sukoon yeh dil kyun paata nahi?", Pause: 300 * time.Millisecond},
			{Text: "Kyun todun khud se jo thay waaday,", Pause: 400 * time.Millisecond},
			{Text: "Ke ab yeh ishq nibhaana nahi?", Pause: 300 * time.Millisecond},
			{Text: "Mein modun tum se jo yeh chehra,", Pause: 300 * time.Millisecond},
			{Text: "Dobara nazar milaana nahi.", Pause: 300 * time.Millisecond},
			{Text: "Yeh duniya jaanay mera dard,", Pause: 300 * time.Millisecond},
			{Text: "Tujhe yeh nazar kyun aata nahi?", Pause: 800 * time.Millisecond},
		},
	},
}

func FindSongByID(id string) (Song, bool) {
	for _, song := range songs {
		if song.ID == id {
			return cloneSong(song), true
		}
	}
	return Song{}, false
}

// List returns the built-in songs ordered by ID.
func List() []Song {
	result := make([]Song, 0, len(songs))
	for _, song := range songs {
		result = append(result, cloneSong(song))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func FormatSongName(s Song) string {
	if s.Artist == "" {
		return strings.TrimSpace(s.Title)
	}
	return strings.TrimSpace(fmt.Sprintf("%s - %s", s.Artist, s.Title))
}

// Banner is the title line printed before the lyrics.
func Banner(s Song) string {
	return fmt.Sprintf("\n🎵 %s 🎵", s.Title)
}

func cloneSong(s Song) Song {
	s.Lines = append([]Line(nil), s.Lines...)
	return s
}
