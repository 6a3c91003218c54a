package realtime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"radarboard/internal/models"

	"go.uber.org/zap"
)

// ===========================================================================
// Centrifugo Client
// Pushes collection snapshots to browser clients. Channels are
// per-collection; private-message snapshots go to a per-user channel.
// Publishing is fire-and-forget from the caller's point of view: failures
// are logged, the write that triggered them has already been persisted.
// ===========================================================================

// Channel names
const (
	ChannelNotes       = "board:notes"
	ChannelAnnotations = "board:annotations"
	ChannelStorage     = "board:storage"
)

// UserChannel returns the private-message channel of a user.
func UserChannel(userID string) string {
	return fmt.Sprintf("chat:user_%s", userID)
}

// Publisher pushes collection snapshots to connected clients. Board
// channels are shared by every authenticated user, so they only ever carry
// shared-scope data: shared-board notes, live annotations, the storage
// selection. Viewer-scoped collections (tasks, private notes) are streamed
// per viewer over the SSE endpoints instead.
type Publisher interface {
	// PublishNotes pushes the shared-board note snapshot
	PublishNotes(notes []models.Note) error

	// PublishAnnotations pushes the live annotation snapshot
	PublishAnnotations(annotations []models.Annotation) error

	// PublishStorage pushes the current storage selection
	PublishStorage(selection *models.StorageSelection) error

	// PublishPrivateMessages pushes a user's message snapshot to their channel
	PublishPrivateMessages(userID string, messages []models.PrivateMessage) error
}

// snapshotEvent is the wire envelope for a snapshot push.
type snapshotEvent struct {
	Type string      `json:"type"`
	At   time.Time   `json:"at"`
	Data interface{} `json:"data"`
}

// CentrifugoClient implements Publisher
type CentrifugoClient struct {
	url    string
	apiKey string
	client *http.Client
	log    *zap.Logger
}

// NewCentrifugoClient creates a new Centrifugo client
func NewCentrifugoClient(url, apiKey string, log *zap.Logger) *CentrifugoClient {
	return &CentrifugoClient{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: 5 * time.Second},
		log:    log,
	}
}

// publishRequest is the Centrifugo HTTP API envelope
type publishRequest struct {
	Method string      `json:"method"`
	Params interface{} `json:"params"`
}

type publishParams struct {
	Channel string      `json:"channel"`
	Data    interface{} `json:"data"`
}

func (c *CentrifugoClient) publish(channel, eventType string, data interface{}) error {
	req := publishRequest{
		Method: "publish",
		Params: publishParams{
			Channel: channel,
			Data: snapshotEvent{
				Type: eventType,
				At:   time.Now().UTC(),
				Data: data,
			},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequest("POST", c.url+"/api", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "apikey "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.log.Warn("centrifugo publish failed", zap.Error(err))
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("centrifugo publish bad status",
			zap.Int("status", resp.StatusCode),
			zap.String("channel", channel),
		)
		return fmt.Errorf("bad status: %d", resp.StatusCode)
	}

	c.log.Debug("published to centrifugo",
		zap.String("channel", channel),
	)

	return nil
}

// PublishNotes pushes the shared-board note snapshot
func (c *CentrifugoClient) PublishNotes(notes []models.Note) error {
	return c.publish(ChannelNotes, "notes_snapshot", notes)
}

// PublishAnnotations pushes the live annotation snapshot
func (c *CentrifugoClient) PublishAnnotations(annotations []models.Annotation) error {
	return c.publish(ChannelAnnotations, "annotations_snapshot", annotations)
}

// PublishStorage pushes the current storage selection
func (c *CentrifugoClient) PublishStorage(selection *models.StorageSelection) error {
	return c.publish(ChannelStorage, "storage_snapshot", selection)
}

// PublishPrivateMessages pushes a user's message snapshot to their channel
func (c *CentrifugoClient) PublishPrivateMessages(userID string, messages []models.PrivateMessage) error {
	return c.publish(UserChannel(userID), "messages_snapshot", messages)
}

// ===========================================================================
// Noop Publisher (for when Centrifugo is not configured)
// ===========================================================================

// NoopPublisher does nothing (used when realtime push is disabled)
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (n *NoopPublisher) PublishNotes([]models.Note) error              { return nil }
func (n *NoopPublisher) PublishAnnotations([]models.Annotation) error  { return nil }
func (n *NoopPublisher) PublishStorage(*models.StorageSelection) error { return nil }
func (n *NoopPublisher) PublishPrivateMessages(string, []models.PrivateMessage) error {
	return nil
}
