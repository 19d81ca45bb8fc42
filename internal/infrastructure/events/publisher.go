package events

import (
	"context"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/google/uuid"
)

const (
	CollabStream   = "COLLAB"
	collabSubjects = "collab.request.*"
)

// Publisher sends collaboration lifecycle events to JetStream, using the
// event type as subject.
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) (*Publisher, error) {
	if err := client.EnsureStream(CollabStream, []string{collabSubjects}); err != nil {
		return nil, err
	}
	return &Publisher{client: client}, nil
}

func (p *Publisher) PublishCollabEvent(ctx context.Context, event domain.CollabEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	return p.client.Publish(event.Type, event)
}
