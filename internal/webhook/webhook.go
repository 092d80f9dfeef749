// Package webhook posts Discord embed notifications for moderation
// activity. Sends are fire-and-forget through the worker pool; a dead
// webhook never blocks or fails an API request.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jorgeberrex/mars-api/internal/models"
)

const (
	colorReport             = 0xFFEE00
	colorPunishmentIssued   = 0x0077FF
	colorPunishmentReverted = 0x00FF4C
	colorNoteAdded          = 0xFF77FF
	colorNoteDeleted        = 0xFF4F55
)

type embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type payload struct {
	Embeds []embed `json:"embeds"`
}

// Submitter queues async work; satisfied by the worker pool.
type Submitter interface {
	Submit(task func(context.Context) error) bool
}

// Client posts embeds to the configured Discord webhooks.
type Client struct {
	reportsURL     string
	punishmentsURL string
	notesURL       string

	pool   Submitter
	http   *http.Client
	logger *zap.SugaredLogger
}

func NewClient(reportsURL, punishmentsURL, notesURL string, pool Submitter, logger *zap.SugaredLogger) *Client {
	return &Client{
		reportsURL:     reportsURL,
		punishmentsURL: punishmentsURL,
		notesURL:       notesURL,
		pool:           pool,
		http:           &http.Client{Timeout: 10 * time.Second},
		logger:         logger,
	}
}

// SendReport announces an in-game player report.
func (c *Client) SendReport(target, reporter, reason, serverID string) {
	c.send(c.reportsURL, embed{
		Title:     "Player Reported",
		Color:     colorReport,
		Timestamp: timestamp(),
		Fields: []embedField{
			{Name: "Target", Value: target, Inline: true},
			{Name: "Reporter", Value: reporter, Inline: true},
			{Name: "Reason", Value: reason},
			{Name: "Server", Value: serverID, Inline: true},
		},
	})
}

// SendPunishment announces a newly issued punishment.
func (c *Client) SendPunishment(pun *models.Punishment) {
	c.send(c.punishmentsURL, embed{
		Title:     "Punishment Issued",
		Color:     colorPunishmentIssued,
		Timestamp: timestamp(),
		Fields: []embedField{
			{Name: "Target", Value: pun.Target.Name, Inline: true},
			{Name: "Staff", Value: punisherName(pun), Inline: true},
			{Name: "Kind", Value: string(pun.Action.Kind), Inline: true},
			{Name: "Reason", Value: pun.Reason.Name},
			{Name: "Duration", Value: formatLength(pun.Action.Length), Inline: true},
		},
	})
}

// SendPunishmentReverted announces a punishment reversion.
func (c *Client) SendPunishmentReverted(pun *models.Punishment) {
	fields := []embedField{
		{Name: "Target", Value: pun.Target.Name, Inline: true},
		{Name: "Kind", Value: string(pun.Action.Kind), Inline: true},
	}
	if pun.Reversion != nil {
		fields = append(fields,
			embedField{Name: "Reverted By", Value: pun.Reversion.Reverter.Name, Inline: true},
			embedField{Name: "Reason", Value: pun.Reversion.Reason},
		)
	}
	c.send(c.punishmentsURL, embed{
		Title:     "Punishment Reverted",
		Color:     colorPunishmentReverted,
		Timestamp: timestamp(),
		Fields:    fields,
	})
}

// SendNoteAdded announces a staff note added to a player.
func (c *Client) SendNoteAdded(player *models.Player, note *models.StaffNote) {
	c.send(c.notesURL, embed{
		Title:     "Note Added",
		Color:     colorNoteAdded,
		Timestamp: timestamp(),
		Fields: []embedField{
			{Name: "Player", Value: player.Name, Inline: true},
			{Name: "Author", Value: note.Author.Name, Inline: true},
			{Name: "Note", Value: note.Content},
		},
	})
}

// SendNoteDeleted announces a staff note removal.
func (c *Client) SendNoteDeleted(player *models.Player, note *models.StaffNote) {
	c.send(c.notesURL, embed{
		Title:     "Note Deleted",
		Color:     colorNoteDeleted,
		Timestamp: timestamp(),
		Fields: []embedField{
			{Name: "Player", Value: player.Name, Inline: true},
			{Name: "Author", Value: note.Author.Name, Inline: true},
			{Name: "Note", Value: note.Content},
		},
	})
}

// send queues the POST; an unconfigured URL disables the notification.
func (c *Client) send(url string, e embed) {
	if url == "" {
		return
	}
	body, err := json.Marshal(payload{Embeds: []embed{e}})
	if err != nil {
		c.logger.Warnw("Failed to encode webhook payload", "error", err)
		return
	}
	c.pool.Submit(func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			return fmt.Errorf("webhook returned status %d", resp.StatusCode)
		}
		return nil
	})
}

func punisherName(pun *models.Punishment) string {
	if pun.Punisher == nil {
		return "Console"
	}
	return pun.Punisher.Name
}

func formatLength(ms int64) string {
	if ms == -1 {
		return "Permanent"
	}
	return (time.Duration(ms) * time.Millisecond).String()
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
