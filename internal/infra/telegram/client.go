// internal/infra/telegram/client.go
package telegram

import (
	"gopkg.in/telebot.v3"
)

// chatRecipient addresses a chat by its raw identifier: a numeric ID or an @channel username.
type chatRecipient string

func (c chatRecipient) Recipient() string { return string(c) }

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// NewOfflineBot builds a bot without calling getMe, so an invalid token
// surfaces on the first send instead of at startup.
func NewOfflineBot(token string) (*telebot.Bot, error) {
	return telebot.NewBot(telebot.Settings{
		Token:   token,
		Offline: true,
	})
}

// SendMessage sends a plain text message to the specified chat.
func (tba *TelebotAdapter) SendMessage(chatID string, text string) error {
	_, err := tba.bot.Send(chatRecipient(chatID), text, &telebot.SendOptions{
		ParseMode:             telebot.ModeDefault,
		DisableWebPagePreview: true,
	})
	return err
}
