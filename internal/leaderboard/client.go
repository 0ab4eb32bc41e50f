// Package leaderboard is a small JSON client for the remote score service.
//
// The service exposes two endpoints: a submit endpoint accepting
// {"name", "score"} and a scores endpoint returning the top records.
// Failures are reported to the caller and logged; nothing is retried.
package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// PlaceholderText is shown instead of the table when Fetch fails.
const PlaceholderText = "Could not load leaderboard"

// Client-side validation errors.
var (
	ErrEmptyName     = errors.New("leaderboard: empty name")
	ErrNegativeScore = errors.New("leaderboard: negative score")
)

// Entry is one leaderboard record.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("leaderboard: %s: HTTP %d", e.Op, e.Status)
	}
	return fmt.Sprintf("leaderboard: %s: HTTP %d: %s", e.Op, e.Status, e.Body)
}

type submitRequest struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type submitResponse struct {
	Message string `json:"message"`
}

// Client talks to the leaderboard service. It holds no per-call state and is
// safe for concurrent use.
type Client struct {
	baseURL    string
	submitPath string
	scoresPath string
	http       *http.Client
	logger     *log.Logger
}

// New creates a client from config. A nil logger uses the package default.
func New(cfg config.LeaderboardConfig, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		submitPath: cfg.SubmitPath,
		scoresPath: cfg.ScoresPath,
		http:       &http.Client{Timeout: timeout},
		logger:     logger.WithPrefix("leaderboard"),
	}
}

// BaseURL returns the service root the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Submit posts a finished run. The name is trimmed; an empty name is not
// sent. On success the service's message, if any, is returned.
func (c *Client) Submit(ctx context.Context, name string, score int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if score < 0 {
		return "", ErrNegativeScore
	}

	body, err := json.Marshal(submitRequest{Name: name, Score: score})
	if err != nil {
		return "", fmt.Errorf("leaderboard: encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.submitPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("leaderboard: build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("submit failed", "name", name, "score", score, "error", err)
		return "", fmt.Errorf("leaderboard: submit: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus("submit", resp); err != nil {
		c.logger.Error("submit rejected", "name", name, "score", score, "status", resp.StatusCode)
		return "", err
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		c.logger.Error("submit response unreadable", "error", err)
		return "", fmt.Errorf("leaderboard: decode submit response: %w", err)
	}

	c.logger.Info("score submitted", "name", name, "score", score, "message", out.Message)
	return out.Message, nil
}

// Fetch returns the records in the order the service sent them.
func (c *Client) Fetch(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.scoresPath, nil)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: build scores request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("fetch failed", "error", err)
		return nil, fmt.Errorf("leaderboard: fetch: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus("fetch", resp); err != nil {
		c.logger.Warn("fetch rejected", "status", resp.StatusCode)
		return nil, err
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		c.logger.Warn("scores unreadable", "error", err)
		return nil, fmt.Errorf("leaderboard: decode scores: %w", err)
	}
	c.logger.Debug("scores fetched", "count", len(entries))
	return entries, nil
}

func checkStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{
		Op:     op,
		Status: resp.StatusCode,
		Body:   strings.TrimSpace(string(snippet)),
	}
}
