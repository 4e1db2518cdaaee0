package player

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/sukalov/lyricplayer/internal/songbook"
)

const (
	DefaultCharDelay  = 50 * time.Millisecond
	DefaultIntroPause = 1200 * time.Millisecond
)

var (
	ErrLengthMismatch   = songbook.ErrLengthMismatch
	ErrNegativeDuration = errors.New("negative duration")
)

// Timing holds the delays that are shared by every line of a song.
type Timing struct {
	CharDelay  time.Duration
	IntroPause time.Duration
}

func DefaultTiming() Timing {
	return Timing{CharDelay: DefaultCharDelay, IntroPause: DefaultIntroPause}
}

// flusher is satisfied by buffered writers such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// Player reveals lyrics one character at a time on a writer.
type Player struct {
	out   io.Writer
	sleep func(time.Duration)
}

type Option func(*Player)

// WithSleep replaces time.Sleep, mostly for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(p *Player) {
		p.sleep = sleep
	}
}

func New(out io.Writer, opts ...Option) *Player {
	p := &Player{
		out:   out,
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play writes the title banner and a blank line, waits for the intro pause,
// then reveals each line character by character. Every character is written
// and flushed on its own before the char delay. Arguments are validated
// before anything is written.
func (p *Player) Play(title string, lines []string, pauses []time.Duration, timing Timing) error {
	if len(lines) != len(pauses) {
		return fmt.Errorf("%w: %d lines, %d pauses", ErrLengthMismatch, len(lines), len(pauses))
	}
	if err := validateTiming(timing); err != nil {
		return err
	}
	for i, pause := range pauses {
		if pause < 0 {
			return fmt.Errorf("%w: pause after line %d is %v", ErrNegativeDuration, i+1, pause)
		}
	}

	if err := p.write(title + "\n\n"); err != nil {
		return err
	}
	p.sleep(timing.IntroPause)

	for i, line := range lines {
		if err := p.reveal(line, timing.CharDelay); err != nil {
			return err
		}
		if err := p.write("\n"); err != nil {
			return err
		}
		p.sleep(pauses[i])
	}

	return nil
}

// PlaySong plays a song under the given banner title.
func (p *Player) PlaySong(title string, song songbook.Song, timing Timing) error {
	return p.Play(title, song.Texts(), song.Pauses(), timing)
}

// reveal writes s one code point at a time. Invalid UTF-8 bytes are written
// as they are, one byte per step.
func (p *Player) reveal(s string, charDelay time.Duration) error {
	for len(s) > 0 {
		_, size := utf8.DecodeRuneInString(s)
		if err := p.write(s[:size]); err != nil {
			return err
		}
		p.sleep(charDelay)
		s = s[size:]
	}
	return nil
}

func (p *Player) write(s string) error {
	if _, err := io.WriteString(p.out, s); err != nil {
		return fmt.Errorf("failed to write lyrics: %w", err)
	}
	if f, ok := p.out.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("failed to flush lyrics: %w", err)
		}
	}
	return nil
}

func validateTiming(timing Timing) error {
	if timing.CharDelay < 0 {
		return fmt.Errorf("%w: char delay %v", ErrNegativeDuration, timing.CharDelay)
	}
	if timing.IntroPause < 0 {
		return fmt.Errorf("%w: intro pause %v", ErrNegativeDuration, timing.IntroPause)
	}
	return nil
}

// Play reveals lines on standard output using real sleeps.
func Play(lines []string, pauses []time.Duration, charDelay, introPause time.Duration, title string) error {
	return New(os.Stdout).Play(title, lines, pauses, Timing{CharDelay: charDelay, IntroPause: introPause})
}
