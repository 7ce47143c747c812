// Package slack publishes planning summaries through an incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"mealplanner/report"
)

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	webhookURL string
	httpClient doer
}

func NewClient(webhookURL string, httpClient doer) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

type attachment struct {
	Color  string `json:"color"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	Footer string `json:"footer,omitempty"`
}

type payload struct {
	Channel     string       `json:"channel"`
	Text        string       `json:"text"`
	Attachments []attachment `json:"attachments,omitempty"`
}

// PostMessage sends plain text to channel.
func (c *Client) PostMessage(ctx context.Context, channel string, message string) error {
	return c.post(ctx, payload{Channel: channel, Text: message})
}

// PostReport sends a run summary as an attachment colored by its score.
func (c *Client) PostReport(ctx context.Context, channel string, s report.Summary) error {
	footer := ""
	if len(s.Flags) > 0 {
		footer = "flags: " + strings.Join(s.Flags, ", ")
	}
	return c.post(ctx, payload{
		Channel: channel,
		Text:    s.Title,
		Attachments: []attachment{{
			Color:  ScoreColor(s.Score),
			Title:  fmt.Sprintf("Health score %.1f", s.Score),
			Text:   strings.Join(s.Lines, "\n"),
			Footer: footer,
		}},
	})
}

// ScoreColor maps a weekly score to a Slack attachment color.
func ScoreColor(score float64) string {
	switch {
	case score >= 90:
		return "good"
	case score >= 70:
		return "warning"
	default:
		return "danger"
	}
}

func (c *Client) post(ctx context.Context, p payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to post message: %s", resp.Status)
	}

	return nil
}
