package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/sukalov/lyricplayer/internal/utils"
)

var (
	ChannelID int64
	once      sync.Once
	botClient BotClient
	pending   sync.WaitGroup
	fallback  = log.New(os.Stderr, "", log.LstdFlags)
)

type BotClient interface {
	SendMessage(chatID int64, text string) error
}

// Init routes log messages to the Telegram channel named by LOG_CHANNEL_ID.
// Without Init, messages go to stderr. Stdout is left to the lyrics.
func Init(client BotClient) error {
	var initErr error
	once.Do(func() {
		env, err := utils.LoadEnv([]string{"LOG_CHANNEL_ID"})
		if err != nil {
			initErr = fmt.Errorf("failed to load LOG_CHANNEL_ID: %w", err)
			return
		}

		ChannelID, err = strconv.ParseInt(env["LOG_CHANNEL_ID"], 10, 64)
		if err != nil {
			initErr = fmt.Errorf("failed to parse LOG_CHANNEL_ID: %w", err)
			return
		}

		botClient = client
	})

	return initErr
}

// ChannelActive reports whether messages go to the Telegram channel rather
// than stderr.
func ChannelActive() bool {
	return botClient != nil
}

// SetOutput changes where messages go when no channel is configured.
func SetOutput(w io.Writer) {
	fallback.SetOutput(w)
}

func Info(message string) {
	sendLog("ℹ️ INFO", message)
}

func Error(message string) {
	sendLog("❌ ERROR", message)
}

func Debug(message string) {
	sendLog("🔍 DEBUG", message)
}

func Success(message string) {
	sendLog("✅ SUCCESS", message)
}

// Wait blocks until every channel message sent so far has been delivered
// or has failed.
func Wait() {
	pending.Wait()
}

func sendLog(prefix, message string) {
	if botClient == nil {
		fallback.Printf("%s %s", prefix, message)
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logMessage := fmt.Sprintf("[%s] %s\n%s", timestamp, prefix, message)

	pending.Add(1)
	go func() {
		defer pending.Done()
		if err := botClient.SendMessage(ChannelID, logMessage); err != nil {
			fallback.Printf("failed to send log to channel: %v\nlog was: %s", err, logMessage)
		}
	}()
}

// LogWithErr logs message as info when err is nil, as an error otherwise,
// and returns err wrapped with message.
func LogWithErr(message string, err error) error {
	if err == nil {
		Info(message)
		return nil
	}

	Error(fmt.Sprintf("%s\nError: %v", message, err))

	return fmt.Errorf("%s: %w", message, err)
}
