package player

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sukalov/lyricplayer/internal/songbook"
)

// recorder logs every write and sleep in the order they happen.
type recorder struct {
	events []string
	out    bytes.Buffer
}

func (r *recorder) Write(p []byte) (int, error) {
	r.events = append(r.events, "w:"+string(p))
	return r.out.Write(p)
}

func (r *recorder) sleep(d time.Duration) {
	r.events = append(r.events, fmt.Sprintf("s:%v", d))
}

func (r *recorder) slept() time.Duration {
	var total time.Duration
	for _, ev := range r.events {
		if strings.HasPrefix(ev, "s:") {
			d, _ := time.ParseDuration(strings.TrimPrefix(ev, "s:"))
			total += d
		}
	}
	return total
}

func newRecordingPlayer() (*Player, *recorder) {
	rec := &recorder{}
	return New(rec, WithSleep(rec.sleep)), rec
}

func TestPlayExampleScenario(t *testing.T) {
	p, rec := newRecordingPlayer()

	err := p.Play("T", []string{"Hi", "Bye"},
		[]time.Duration{100 * time.Millisecond, 200 * time.Millisecond},
		Timing{CharDelay: 10 * time.Millisecond, IntroPause: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := rec.out.String(); got != "T\n\nHi\nBye\n" {
		t.Errorf("output = %q, want %q", got, "T\n\nHi\nBye\n")
	}

	want := []string{
		"w:T\n\n", "s:0s",
		"w:H", "s:10ms", "w:i", "s:10ms", "w:\n", "s:100ms",
		"w:B", "s:10ms", "w:y", "s:10ms", "w:e", "s:10ms", "w:\n", "s:200ms",
	}
	if len(rec.events) != len(want) {
		t.Fatalf("got %d events %q, want %d", len(rec.events), rec.events, len(want))
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, rec.events[i], want[i])
		}
	}
}

func TestPlayTotalSleepMatchesFormula(t *testing.T) {
	p, rec := newRecordingPlayer()
	song, _ := songbook.FindSongByID(songbook.DefaultSongID)
	timing := DefaultTiming()

	if err := p.PlaySong(songbook.Banner(song), song, timing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := timing.IntroPause + song.Duration(timing.CharDelay)
	if got := rec.slept(); got != want {
		t.Errorf("total sleep = %v, want %v", got, want)
	}
}

func TestPlayOneCharacterPerWrite(t *testing.T) {
	p, rec := newRecordingPlayer()

	if err := p.Play("", []string{"añ🎵b"}, []time.Duration{0}, Timing{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var chars []string
	for _, ev := range rec.events[2:] {
		if strings.HasPrefix(ev, "w:") && ev != "w:\n" {
			chars = append(chars, strings.TrimPrefix(ev, "w:"))
		}
	}
	want := []string{"a", "ñ", "🎵", "b"}
	if len(chars) != len(want) {
		t.Fatalf("got writes %q, want %q", chars, want)
	}
	for i := range want {
		if chars[i] != want[i] {
			t.Errorf("write %d = %q, want %q", i, chars[i], want[i])
		}
	}
}

func TestPlayKeepsInvalidBytes(t *testing.T) {
	p, rec := newRecordingPlayer()
	line := "a\xffb"

	if err := p.Play("", []string{line}, []time.Duration{0}, Timing{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.out.String(); got != "\n\n"+line+"\n" {
		t.Errorf("output = %q", got)
	}
}

func TestPlayEmptyLines(t *testing.T) {
	p, rec := newRecordingPlayer()

	if err := p.Play("T", nil, nil, Timing{CharDelay: time.Second, IntroPause: 2 * time.Second}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.out.String(); got != "T\n\n" {
		t.Errorf("output = %q, want %q", got, "T\n\n")
	}
	if len(rec.events) != 2 || rec.events[1] != "s:2s" {
		t.Errorf("unexpected events %q", rec.events)
	}
}

func TestPlayIsRepeatable(t *testing.T) {
	p, rec := newRecordingPlayer()
	lines := []string{"one", "two"}
	pauses := []time.Duration{time.Millisecond, time.Millisecond}

	if err := p.Play("T", lines, pauses, Timing{}); err != nil {
		t.Fatalf("first play: %v", err)
	}
	first := rec.out.String()
	firstEvents := len(rec.events)

	if err := p.Play("T", lines, pauses, Timing{}); err != nil {
		t.Fatalf("second play: %v", err)
	}
	if rec.out.String() != first+first {
		t.Errorf("second play differs: %q", rec.out.String())
	}
	if len(rec.events) != 2*firstEvents {
		t.Errorf("expected %d events, got %d", 2*firstEvents, len(rec.events))
	}
}

func TestPlayRejectsBadArguments(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		pauses  []time.Duration
		timing  Timing
		wantErr error
	}{
		{"more lines", []string{"a", "b"}, []time.Duration{0}, Timing{}, ErrLengthMismatch},
		{"more pauses", []string{"a"}, []time.Duration{0, 0}, Timing{}, ErrLengthMismatch},
		{"negative pause", []string{"a"}, []time.Duration{-time.Second}, Timing{}, ErrNegativeDuration},
		{"negative char delay", []string{"a"}, []time.Duration{0}, Timing{CharDelay: -1}, ErrNegativeDuration},
		{"negative intro", nil, nil, Timing{IntroPause: -1}, ErrNegativeDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, rec := newRecordingPlayer()
			err := p.Play("T", tt.lines, tt.pauses, tt.timing)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if len(rec.events) != 0 {
				t.Errorf("nothing should be written or slept, got %q", rec.events)
			}
		})
	}
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after == 0 {
		return 0, errors.New("broken pipe")
	}
	w.after--
	return len(p), nil
}

func TestPlayStopsOnWriteError(t *testing.T) {
	p := New(&failingWriter{after: 2}, WithSleep(func(time.Duration) {}))

	err := p.Play("T", []string{"abc"}, []time.Duration{0}, Timing{})
	if err == nil || !strings.Contains(err.Error(), "broken pipe") {
		t.Fatalf("expected write error, got %v", err)
	}
}

func TestPlayFlushesBufferedWriter(t *testing.T) {
	var out bytes.Buffer
	buffered := bufio.NewWriterSize(&out, 4096)

	var seen []string
	p := New(buffered, WithSleep(func(time.Duration) {
		seen = append(seen, out.String())
	}))

	if err := p.Play("T", []string{"ab"}, []time.Duration{0}, Timing{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"T\n\n", "T\n\na", "T\n\nab", "T\n\nab\n"}
	if len(seen) != len(want) {
		t.Fatalf("got %q, want %q", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("sleep %d saw %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestPlayRealTime(t *testing.T) {
	var out bytes.Buffer
	p := New(&out)
	charDelay := 2 * time.Millisecond
	pauses := []time.Duration{5 * time.Millisecond, 5 * time.Millisecond}
	lines := []string{"Hi", "Bye"}
	expected := 5*charDelay + 10*time.Millisecond

	start := time.Now()
	if err := p.Play("T", lines, pauses, Timing{CharDelay: charDelay}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < expected {
		t.Errorf("elapsed %v shorter than expected %v", elapsed, expected)
	}
	if out.String() != "T\n\nHi\nBye\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}
