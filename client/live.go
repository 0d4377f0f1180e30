package client

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/streetsight/streetsight/issues"
	"github.com/streetsight/streetsight/models"
)

// LiveEvent is one message on the live issue feed
type LiveEvent struct {
	Type  string          `json:"type"`
	Issue models.RawIssue `json:"issue"`
}

// Live event types
const (
	EventIssueCreated = "issue.created"
	EventIssueStatus  = "issue.status"
)

// LiveFeed keeps the collection in sync with server-pushed issue events so
// derived views stay fresh between scheduled refreshes
type LiveFeed struct {
	url        string
	tokens     TokenProvider
	collection *issues.Collection

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewLiveFeed builds a feed for the websocket url applying events onto
// collection
func NewLiveFeed(url string, tokens TokenProvider, collection *issues.Collection) *LiveFeed {
	return &LiveFeed{
		url:        url,
		tokens:     tokens,
		collection: collection,
	}
}

// Start dials the feed and applies events until the connection drops or
// Stop is called
func (f *LiveFeed) Start(ctx context.Context) error {
	header := http.Header{}
	if f.tokens != nil {
		if token := f.tokens.Token(); token != "" {
			header.Set("Authorization", "Bearer "+token)
		}
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.url, header)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.conn = conn
	f.mu.Unlock()

	go f.readLoop(conn)
	return nil
}

// Stop closes the feed connection
func (f *LiveFeed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn != nil {
		_ = f.conn.Close()
		f.conn = nil
	}
}

func (f *LiveFeed) readLoop(conn *websocket.Conn) {
	for {
		var event LiveEvent
		if err := conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.S().Warnw("live feed closed unexpectedly", "error", err)
			}
			return
		}
		f.apply(event)
	}
}

func (f *LiveFeed) apply(event LiveEvent) {
	if err := event.Issue.Validate(); err != nil {
		zap.S().Warnw("dropping malformed live event", "type", event.Type, "error", err)
		return
	}

	switch event.Type {
	case EventIssueCreated:
		err := f.collection.Insert(event.Issue.ToIssue())
		if err != nil && !errors.Is(err, models.ErrDuplicateID) {
			zap.S().Warnw("live insert failed", "id", event.Issue.ID, "error", err)
		}
	case EventIssueStatus:
		err := f.collection.UpdateStatus(event.Issue.ID, models.IssueStatus(event.Issue.Status))
		if errors.Is(err, models.ErrNotFound) {
			// status event for an issue we have not seen yet
			err = f.collection.Insert(event.Issue.ToIssue())
		}
		if err != nil && !errors.Is(err, models.ErrInvalidTransition) {
			zap.S().Warnw("live status update failed", "id", event.Issue.ID, "error", err)
		}
	default:
		zap.S().Debugw("ignoring unknown live event", "type", event.Type)
	}
}
