// ABOUTME: Calendar collaborator over a local JSON agenda file
// ABOUTME: List, create, update and delete events; only listing is dispatched
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pmcavoy/aide/internal/models"
)

const (
	defaultLookahead = 7 * 24 * time.Hour
	defaultMaxEvents = 10
	displayLayout    = "2006-01-02 15:04"
)

// StoredEvent is the on-disk representation of one calendar entry.
type StoredEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// EventUpdate carries optional field changes for UpdateEvent.
type EventUpdate struct {
	Title       *string
	Description *string
	Location    *string
	Start       *time.Time
	End         *time.Time
}

// Client manages the agenda file. All methods are safe for concurrent use.
type Client struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// DefaultDataDir returns the agenda directory following the XDG spec.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".local", "share", "aide")
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "aide")
}

// NewClient creates a calendar client storing events at path. An empty
// path selects the default XDG location.
func NewClient(path string) (*Client, error) {
	if path == "" {
		path = filepath.Join(DefaultDataDir(), "agenda.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating agenda directory: %w", err)
	}
	return &Client{path: path, now: time.Now}, nil
}

// IntentKeywords returns the keywords that indicate calendar queries.
func (c *Client) IntentKeywords() []string {
	return []string{
		"calendar", "schedule", "meeting", "appointment", "event", "remind",
		"book", "plan", "agenda", "today", "tomorrow", "next week", "upcoming",
		"create event", "add to calendar", "what's on my calendar",
	}
}

// ListEvents returns upcoming events within the next seven days, ordered
// by start time, capped at ten.
func (c *Client) ListEvents(ctx context.Context) (*models.Agenda, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	events, err := c.load()
	if err != nil {
		return nil, err
	}

	now := c.now()
	horizon := now.Add(defaultLookahead)

	var upcoming []StoredEvent
	for _, ev := range events {
		if ev.End.Before(now) || ev.Start.After(horizon) {
			continue
		}
		upcoming = append(upcoming, ev)
	}
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].Start.Before(upcoming[j].Start) })
	if len(upcoming) > defaultMaxEvents {
		upcoming = upcoming[:defaultMaxEvents]
	}

	agenda := &models.Agenda{
		Action:  "list",
		Message: fmt.Sprintf("Found %d upcoming events", len(upcoming)),
	}
	for _, ev := range upcoming {
		agenda.Events = append(agenda.Events, toModelEvent(ev))
	}
	return agenda, nil
}

// CreateEvent appends a new event and returns it inside an Agenda.
func (c *Client) CreateEvent(ctx context.Context, title string, start, end time.Time, description, location string) (*models.Agenda, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, fmt.Errorf("event title cannot be empty")
	}
	if !end.After(start) {
		return nil, fmt.Errorf("event end %s is not after start %s", end.Format(displayLayout), start.Format(displayLayout))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	events, err := c.load()
	if err != nil {
		return nil, err
	}

	now := c.now()
	ev := StoredEvent{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Location:    location,
		Start:       start,
		End:         end,
		Status:      "confirmed",
		Created:     now,
		Updated:     now,
	}
	events = append(events, ev)
	if err := c.save(events); err != nil {
		return nil, err
	}

	return &models.Agenda{
		Events:  []models.Event{toModelEvent(ev)},
		Action:  "create",
		Message: fmt.Sprintf("Event %q created successfully", title),
	}, nil
}

// UpdateEvent applies the non-nil fields of update to the event with id.
func (c *Client) UpdateEvent(ctx context.Context, id string, update EventUpdate) (*models.Agenda, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	events, err := c.load()
	if err != nil {
		return nil, err
	}

	for i := range events {
		if events[i].ID != id {
			continue
		}
		if update.Title != nil {
			events[i].Title = *update.Title
		}
		if update.Description != nil {
			events[i].Description = *update.Description
		}
		if update.Location != nil {
			events[i].Location = *update.Location
		}
		if update.Start != nil {
			events[i].Start = *update.Start
		}
		if update.End != nil {
			events[i].End = *update.End
		}
		events[i].Updated = c.now()

		if err := c.save(events); err != nil {
			return nil, err
		}
		return &models.Agenda{
			Events:  []models.Event{toModelEvent(events[i])},
			Action:  "update",
			Message: "Event updated successfully",
		}, nil
	}
	return nil, fmt.Errorf("event %q not found", id)
}

// DeleteEvent removes the event with id.
func (c *Client) DeleteEvent(ctx context.Context, id string) (*models.Agenda, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	events, err := c.load()
	if err != nil {
		return nil, err
	}

	for i := range events {
		if events[i].ID != id {
			continue
		}
		events = append(events[:i], events[i+1:]...)
		if err := c.save(events); err != nil {
			return nil, err
		}
		return &models.Agenda{
			Action:  "delete",
			Message: "Event deleted successfully",
		}, nil
	}
	return nil, fmt.Errorf("event %q not found", id)
}

// load reads the agenda file; a missing file is an empty agenda.
func (c *Client) load() ([]StoredEvent, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading agenda: %w", err)
	}
	var events []StoredEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parsing agenda: %w", err)
	}
	return events, nil
}

func (c *Client) save(events []StoredEvent) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding agenda: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing agenda: %w", err)
	}
	return nil
}

func toModelEvent(ev StoredEvent) models.Event {
	return models.Event{
		ID:          ev.ID,
		Title:       ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		StartTime:   ev.Start.Format(displayLayout),
		EndTime:     ev.End.Format(displayLayout),
		Status:      ev.Status,
	}
}
