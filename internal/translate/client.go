// Package translate talks to the machine translation backend and fans a
// single Korean text out into every target language.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/elephantfactory/promogen/constants"
	"github.com/elephantfactory/promogen/internal/common"
	"github.com/elephantfactory/promogen/internal/httpjson"
)

// Client calls a LibreTranslate-compatible endpoint.
type Client struct {
	baseURL string
	apiKey  string
	delay   time.Duration
	http    *http.Client
	log     *slog.Logger
}

// NewClient builds a client from config. The HTTP client carries no timeout;
// callers bound calls with a context.
func NewClient(cfg common.TranslateConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		delay:   cfg.Delay,
		http:    &http.Client{},
		log:     logger,
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate translates text from the source language into target.
func (c *Client) Translate(ctx context.Context, text string, target constants.Language) (string, error) {
	if !constants.IsLanguage(target) {
		return "", fmt.Errorf("%w: language %q", common.ErrInvalidInput, target)
	}
	if target == constants.SourceLanguage || strings.TrimSpace(text) == "" {
		return text, nil
	}

	req := translateRequest{
		Q:      text,
		Source: string(constants.SourceLanguage),
		Target: string(target),
		Format: "text",
		APIKey: c.apiKey,
	}
	raw, _, err := httpjson.SendJSON(ctx, c.http, c.baseURL+"/translate", req, nil, c.log)
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", target, err)
	}

	var resp translateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if resp.TranslatedText == "" {
		return "", fmt.Errorf("translate to %s: empty translation", target)
	}
	return resp.TranslatedText, nil
}

// TranslateAll translates text into each target sequentially, pausing between
// calls. A language that fails falls back to the untranslated text; the run
// keeps going so one bad language never sinks the rest.
func (c *Client) TranslateAll(ctx context.Context, text string, targets []constants.Language) (map[constants.Language]string, error) {
	out := make(map[constants.Language]string, len(targets))
	for i, lang := range targets {
		if i > 0 && c.delay > 0 {
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case <-time.After(c.delay):
			}
		}

		translated, err := c.Translate(ctx, text, lang)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			c.log.Warn("translate.fallback", "lang", lang, "error", err)
			out[lang] = text
			continue
		}
		c.log.Info("translate.ok", "lang", lang, "chars", len(translated))
		out[lang] = translated
	}
	return out, nil
}
