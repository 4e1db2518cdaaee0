package lyrics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sukalov/lyricplayer/internal/songbook"
	"github.com/sukalov/lyricplayer/internal/utils"
)

// pausePrefix matches an explicit pause in seconds at the start of a line:
// "[0.4] Ke ab yeh ishq nibhaana nahi?"
var pausePrefix = regexp.MustCompile(`^\[([^\]]*)\]\s?`)

// ParseSheet reads a lyric sheet: one lyric line per text line, an optional
// "# Title" first line, and an optional "[seconds]" pause prefix per line.
// Lines without a prefix get defaultPause. Blank lines are skipped.
func ParseSheet(r io.Reader, id string, defaultPause time.Duration) (songbook.Song, error) {
	song := songbook.Song{ID: id, Title: id}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(raw) == "" {
			continue
		}

		if len(song.Lines) == 0 && strings.HasPrefix(raw, "# ") {
			song.Title = strings.TrimSpace(strings.TrimPrefix(raw, "# "))
			continue
		}

		line := songbook.Line{Text: raw, Pause: defaultPause}
		if match := pausePrefix.FindStringSubmatch(raw); match != nil && looksNumeric(match[1]) {
			pause, err := utils.ParseSeconds(strings.TrimSpace(match[1]))
			if err != nil {
				return songbook.Song{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			line.Text = raw[len(match[0]):]
			line.Pause = pause
		}

		song.Lines = append(song.Lines, line)
	}

	if err := scanner.Err(); err != nil {
		return songbook.Song{}, fmt.Errorf("failed to read lyric sheet: %w", err)
	}

	return song, nil
}

// ParseSheetFile reads a lyric sheet from disk, using the file name without
// extension as the song ID.
func ParseSheetFile(path string, defaultPause time.Duration) (songbook.Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return songbook.Song{}, fmt.Errorf("failed to open lyric sheet: %w", err)
	}
	defer f.Close()

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseSheet(f, id, defaultPause)
}

// looksNumeric tells a pause prefix apart from bracketed lyrics such as
// "[Chorus]". Anything starting with a digit, sign or dot is treated as a
// pause and must then parse.
func looksNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	switch c := s[0]; {
	case c >= '0' && c <= '9', c == '-', c == '+', c == '.':
		return true
	}
	return false
}

// WriteSheet writes song in the format ParseSheet reads. Every line gets an
// explicit pause so the sheet plays the same under any default.
func WriteSheet(w io.Writer, song songbook.Song) error {
	bw := bufio.NewWriter(w)
	if song.Title != "" {
		fmt.Fprintf(bw, "# %s\n\n", song.Title)
	}
	for _, line := range song.Lines {
		secs := strconv.FormatFloat(utils.DurationToSeconds(line.Pause), 'f', -1, 64)
		fmt.Fprintf(bw, "[%s] %s\n", secs, line.Text)
	}
	return bw.Flush()
}
