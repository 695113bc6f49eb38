package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shoplens/backend/internal/domain"
)

// Bot implements domain.Messenger on the Telegram Bot API.
type Bot struct {
	api        *tgbotapi.BotAPI
	httpClient *http.Client
}

// New connects to the Telegram Bot API with the given token.
func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram: %w", err)
	}

	return &Bot{
		api: api,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Username returns the bot account's username.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// SendText sends a plain text message.
func (b *Bot) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// SendLinks sends text with one inline URL button per row.
func (b *Bot) SendLinks(ctx context.Context, chatID int64, text string, buttons []domain.LinkButton) error {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, btn := range buttons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(btn.Label, btn.URL),
		))
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	_, err := b.api.Send(msg)
	return err
}

// SendLanguageChooser sends the language selection keyboard. Button
// presses come back as "lang:<code>" callback queries.
func (b *Bot) SendLanguageChooser(ctx context.Context, chatID int64, prompt string) error {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("العربية 🇸🇦", "lang:ar"),
			tgbotapi.NewInlineKeyboardButtonData("English 🇺🇸", "lang:en"),
			tgbotapi.NewInlineKeyboardButtonData("Français 🇫🇷", "lang:fr"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, prompt)
	msg.ReplyMarkup = keyboard
	_, err := b.api.Send(msg)
	return err
}

// AnswerCallback acknowledges a callback query.
func (b *Bot) AnswerCallback(ctx context.Context, callbackID, text string) error {
	_, err := b.api.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}

// PhotoFileURL resolves a photo file ID to a direct download URL.
func (b *Bot) PhotoFileURL(ctx context.Context, fileID string) (string, error) {
	return b.api.GetFileDirectURL(fileID)
}

// Download fetches a file from the platform's file servers.
func (b *Bot) Download(ctx context.Context, fileURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// FromUpdate flattens a Telegram update into the chat-platform-agnostic
// shape the bot service consumes. Photo messages keep only the largest
// size, which Telegram lists last.
func FromUpdate(u tgbotapi.Update) domain.ChatUpdate {
	var out domain.ChatUpdate

	if u.CallbackQuery != nil {
		out.CallbackID = u.CallbackQuery.ID
		out.CallbackData = u.CallbackQuery.Data
		if u.CallbackQuery.From != nil {
			out.UserID = u.CallbackQuery.From.ID
		}
		if u.CallbackQuery.Message != nil && u.CallbackQuery.Message.Chat != nil {
			out.ChatID = u.CallbackQuery.Message.Chat.ID
		}
		return out
	}

	msg := u.Message
	if msg == nil {
		return out
	}

	if msg.Chat != nil {
		out.ChatID = msg.Chat.ID
	}
	if msg.From != nil {
		out.UserID = msg.From.ID
	}
	if msg.IsCommand() {
		out.Command = msg.Command()
		out.Text = msg.CommandArguments()
	} else {
		out.Text = msg.Text
	}
	if len(msg.Photo) > 0 {
		out.PhotoID = msg.Photo[len(msg.Photo)-1].FileID
	}
	return out
}
