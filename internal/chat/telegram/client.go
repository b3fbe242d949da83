package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"notibot-be/internal/chat"
	"notibot-be/internal/pkg/boterr"
)

// Client talks to the Telegram Bot API over HTTP and implements
// chat.Channel for outbound replies.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(token, baseURL string) *Client {
	return &Client{
		token:   token,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Send(ctx context.Context, chatID int64, reply chat.Reply) error {
	if reply.PhotoFileID != "" {
		return c.sendPhoto(ctx, chatID, reply)
	}
	return c.sendMessage(ctx, chatID, reply)
}

func (c *Client) sendMessage(ctx context.Context, chatID int64, reply chat.Reply) error {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    reply.Text,
	}
	if markup := buildMarkup(reply); markup != nil {
		payload["reply_markup"] = markup
	}
	return c.call(ctx, "sendMessage", payload)
}

func (c *Client) sendPhoto(ctx context.Context, chatID int64, reply chat.Reply) error {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"photo":   reply.PhotoFileID,
		"caption": reply.Text,
	}
	if markup := buildMarkup(reply); markup != nil {
		payload["reply_markup"] = markup
	}
	return c.call(ctx, "sendPhoto", payload)
}

func (c *Client) AnswerCallback(ctx context.Context, callbackID string) error {
	return c.call(ctx, "answerCallbackQuery", map[string]interface{}{
		"callback_query_id": callbackID,
	})
}

func buildMarkup(reply chat.Reply) interface{} {
	if len(reply.Keyboard) > 0 {
		markup := inlineKeyboardMarkup{}
		for _, row := range reply.Keyboard {
			var buttons []inlineKeyboardButton
			for _, b := range row {
				buttons = append(buttons, inlineKeyboardButton{
					Text:         b.Label,
					CallbackData: b.Data,
				})
			}
			markup.InlineKeyboard = append(markup.InlineKeyboard, buttons)
		}
		return markup
	}

	if len(reply.QuickReplies) > 0 {
		markup := replyKeyboardMarkup{ResizeKeyboard: true}
		for i := 0; i < len(reply.QuickReplies); i += 2 {
			row := []keyboardButton{{Text: reply.QuickReplies[i]}}
			if i+1 < len(reply.QuickReplies) {
				row = append(row, keyboardButton{Text: reply.QuickReplies[i+1]})
			}
			markup.Keyboard = append(markup.Keyboard, row)
		}
		return markup
	}

	return nil
}

func (c *Client) call(ctx context.Context, method string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return boterr.Wrap(boterr.KindUnexpected, "telegram api unreachable", err)
	}
	defer resp.Body.Close()

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return boterr.Wrap(boterr.KindUnexpected, "telegram api returned malformed body", err)
	}
	if !result.Ok {
		return boterr.New(boterr.KindUnexpected,
			fmt.Sprintf("telegram %s failed: %s", method, result.Description))
	}
	return nil
}
