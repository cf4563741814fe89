package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TelegramClient pushes notification messages to a Telegram chat through the
// Bot API. Failures here never block a sale — callers run it from the async
// worker pool.
type TelegramClient struct {
	token      string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

func NewTelegramClient(token, chatID string) *TelegramClient {
	return &TelegramClient{
		token:      token,
		chatID:     chatID,
		baseURL:    "https://api.telegram.org",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether a bot token and chat id are set. A nil client
// counts as not configured.
func (c *TelegramClient) Configured() bool { return c != nil && c.token != "" && c.chatID != "" }

type sendMessagePayload struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage posts a Markdown-formatted message to the configured chat.
func (c *TelegramClient) SendMessage(ctx context.Context, text string) error {
	payload := sendMessagePayload{ChatID: c.chatID, Text: text, ParseMode: "Markdown"}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram: marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram: api returned %d", resp.StatusCode)
	}
	return nil
}
