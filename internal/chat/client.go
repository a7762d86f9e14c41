// Package chat refines extracted material through an OpenAI-compatible
// chat/completions backend. It is an optional stage: the rule-based pipeline
// works without it, and callers treat a nil client as "disabled".
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elephantfactory/promogen/internal/common"
	"github.com/elephantfactory/promogen/internal/httpjson"
)

const userTextCapRunes = 3000

// Client calls a chat/completions endpoint.
type Client struct {
	cfg  common.ChatConfig
	http *http.Client
	log  *slog.Logger
}

// NewClient returns nil when no model is configured, which disables the stage.
func NewClient(cfg common.ChatConfig, logger *slog.Logger) *Client {
	if cfg.Model == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		log:  logger,
	}
}

// Summarize asks the model for a short Korean prose summary of the document
// text and returns the reply verbatim.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("chat.summarize.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(text),
	)

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"messages": []map[string]any{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": buildUserPrompt(text)},
		},
	}

	headers := map[string]string{}
	if c.cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.cfg.APIKey
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, _, err := httpjson.SendJSON(ctx, c.http, endpoint, body, headers, c.log)
	if err != nil {
		c.log.Error("chat.summarize.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("chat.summarize.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("chat.summarize.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("no choices in chat response")
	}

	content := strings.TrimSpace(cc.Choices[0].Message.Content)
	c.log.Info("chat.summarize.ok",
		"req_id", rid,
		"reply_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}

const systemPrompt = "당신은 비영리 기관의 홍보 담당자입니다. " +
	"주어진 안내문을 이주민도 이해하기 쉬운 한국어로 2~3문장으로 요약하세요. " +
	"과장 없이 핵심 정보(무엇을, 언제, 어디서, 어떻게)만 담으세요."

func buildUserPrompt(text string) string {
	runes := []rune(text)
	if len(runes) > userTextCapRunes {
		runes = runes[:userTextCapRunes]
	}
	return "안내문:\n" + string(runes)
}
