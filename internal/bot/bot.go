package bot

import (
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sukalov/lyricplayer/internal/utils"
)

// Bot sends plain messages through a Telegram bot account. It only ever
// talks to the log channel, so it never polls for updates.
type Bot struct {
	Client *tgbotapi.BotAPI
	name   string
	mu     sync.Mutex
}

// New creates a new bot instance
func New(name, token string) (*Bot, error) {
	botClient, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		Client: botClient,
		name:   name,
	}, nil
}

// FromEnv builds the log bot from LOG_BOT_TOKEN.
func FromEnv(name string) (*Bot, error) {
	env, err := utils.LoadEnv([]string{"LOG_BOT_TOKEN"})
	if err != nil {
		return nil, err
	}
	b, err := New(name, env["LOG_BOT_TOKEN"])
	if err != nil {
		return nil, fmt.Errorf("[%s] failed to authorize bot: %w", name, err)
	}
	return b, nil
}

func (b *Bot) Name() string {
	return b.name
}

func (b *Bot) SendMessage(chatID int64, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	_, err := b.Client.Send(msg)
	return err
}
