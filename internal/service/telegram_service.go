package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/osa911/folio/internal/models"
)

const defaultTelegramAPI = "https://api.telegram.org"

// TelegramService sends contact messages to a Telegram chat
type TelegramService struct {
	botToken string
	chatID   string
	apiURL   string
	client   *http.Client
}

// NewTelegramService creates a new Telegram service
func NewTelegramService(botToken, chatID string) *TelegramService {
	return &TelegramService{
		botToken: botToken,
		chatID:   chatID,
		apiURL:   defaultTelegramAPI,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithAPIURL points the service at a different Bot API host
func (s *TelegramService) WithAPIURL(url string) *TelegramService {
	s.apiURL = strings.TrimRight(url, "/")
	return s
}

// Configured reports whether a bot token and chat are set
func (s *TelegramService) Configured() bool {
	return s.botToken != "" && s.chatID != ""
}

func (s *TelegramService) Name() string { return "telegram" }

// telegramMessage represents a Telegram API message
type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// Deliver sends a contact form message to Telegram
func (s *TelegramService) Deliver(ctx context.Context, msg *models.ContactMessage, info *ContactMessageInfo) error {
	if !s.Configured() {
		return fmt.Errorf("telegram bot token or chat ID: %w", ErrNotConfigured)
	}

	payload := telegramMessage{
		ChatID:    s.chatID,
		Text:      formatTelegramText(msg, info),
		ParseMode: "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiURL, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: telegram: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: telegram API returned status %d", ErrDelivery, resp.StatusCode)
	}

	return nil
}

func formatTelegramText(msg *models.ContactMessage, info *ContactMessageInfo) string {
	var b strings.Builder
	b.WriteString("🆕 <b>New Contact Form Submission</b>\n\n")
	fmt.Fprintf(&b, "<b>Name:</b> %s\n", html.EscapeString(msg.Name))
	fmt.Fprintf(&b, "<b>Email:</b> %s\n", html.EscapeString(msg.Email))
	fmt.Fprintf(&b, "<b>Message:</b>\n%s", html.EscapeString(msg.Message))

	if info != nil {
		b.WriteString("\n\n")
		if info.IPAddress != "" {
			fmt.Fprintf(&b, "<i>IP:</i> %s\n", html.EscapeString(info.IPAddress))
		}
		if info.Referrer != "" {
			fmt.Fprintf(&b, "<i>Referrer:</i> %s\n", html.EscapeString(info.Referrer))
		}
		if info.UserAgent != "" {
			fmt.Fprintf(&b, "<i>User agent:</i> %s\n", html.EscapeString(info.UserAgent))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
