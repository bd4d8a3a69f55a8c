package telegram

import (
	"errors"
	"fmt"
	"strings"

	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Septrum101/cfddns/config"
)

type Telegram struct {
	ChatID int64
	Token  string
	// APIEndpoint overrides tg.APIEndpoint, e.g. for a self hosted bot api.
	APIEndpoint string
}

func (t *Telegram) Webhook(title string, content string) error {
	endpoint := t.APIEndpoint
	if endpoint == "" {
		endpoint = tg.APIEndpoint
	}

	bot, err := tg.NewBotAPIWithAPIEndpoint(t.Token, endpoint)
	if err != nil {
		return t.error(err)
	}

	msg := tg.NewMessage(t.ChatID, fmt.Sprintf("#%s\nDomain: %s\n%s",
		config.AppName,
		title,
		content,
	))
	if _, err = bot.Send(msg); err != nil {
		return t.error(err)
	}
	return nil
}

// error keeps the bot token, which is part of every request URL, out of the
// returned message.
func (t *Telegram) error(err error) error {
	msg := err.Error()
	if t.Token != "" {
		msg = strings.ReplaceAll(msg, t.Token, "<redacted>")
	}
	return errors.New("[telegram] " + msg)
}
