package logger

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
)

type fakeBot struct {
	mu       sync.Mutex
	chatIDs  []int64
	messages []string
}

func (f *fakeBot) SendMessage(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatIDs = append(f.chatIDs, chatID)
	f.messages = append(f.messages, text)
	return nil
}

// resetForTest puts the package back to its zero state.
func resetForTest(t *testing.T) *bytes.Buffer {
	t.Helper()
	Wait()
	once = sync.Once{}
	botClient = nil
	ChannelID = 0

	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		Wait()
		botClient = nil
		once = sync.Once{}
	})
	return &buf
}

func TestFallbackGoesToOutput(t *testing.T) {
	buf := resetForTest(t)

	if ChannelActive() {
		t.Fatal("channel should be inactive before Init")
	}

	Info("hello")
	Error("boom")

	out := buf.String()
	if !strings.Contains(out, "ℹ️ INFO hello") {
		t.Errorf("missing info line in %q", out)
	}
	if !strings.Contains(out, "❌ ERROR boom") {
		t.Errorf("missing error line in %q", out)
	}
}

func TestInitSendsToChannel(t *testing.T) {
	resetForTest(t)
	t.Setenv("LOG_CHANNEL_ID", "-100123")

	bot := &fakeBot{}
	if err := Init(bot); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !ChannelActive() {
		t.Fatal("channel should be active after Init")
	}

	Success("played pal-pal")
	Wait()

	bot.mu.Lock()
	defer bot.mu.Unlock()
	if len(bot.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(bot.messages))
	}
	if bot.chatIDs[0] != -100123 {
		t.Errorf("unexpected chat id %d", bot.chatIDs[0])
	}
	if !strings.Contains(bot.messages[0], "✅ SUCCESS\nplayed pal-pal") {
		t.Errorf("unexpected message %q", bot.messages[0])
	}
}

func TestInitBadChannelID(t *testing.T) {
	resetForTest(t)
	t.Setenv("LOG_CHANNEL_ID", "not-a-number")

	if err := Init(&fakeBot{}); err == nil {
		t.Fatal("expected parse error")
	}
	if botClient != nil {
		t.Error("bot client should not be set after a failed init")
	}
}

func TestLogWithErr(t *testing.T) {
	buf := resetForTest(t)

	if err := LogWithErr("saved song", nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	cause := errors.New("db down")
	err := LogWithErr("failed to save song", cause)
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
	if !strings.Contains(buf.String(), "failed to save song\nError: db down") {
		t.Errorf("unexpected log output %q", buf.String())
	}
}
