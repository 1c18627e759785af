package pubsub

import (
	"context"

	"cloud.google.com/go/pubsub"
	"github.com/fluidattacks/rocketchat-webhooks/service/hook/common"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// Client publishes notification records to a Pub/Sub topic.
type Client struct {
	c             *pubsub.Client
	pubsubTopicID string
}

// NewClient ...
func NewClient(projectID, serviceAccountJSON, pubsubTopicID string) (*Client, error) {
	client, err := pubsub.NewClient(context.Background(), projectID, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create Pub/Sub client")
	}
	return &Client{c: client, pubsubTopicID: pubsubTopicID}, nil
}

// PublishNotification waits for the record to be published.
// It is a no-op on a nil client.
func (c *Client) PublishNotification(ctx context.Context, record common.NotificationRecordModel) error {
	if c == nil {
		return nil
	}

	msg, err := transformRecordToMessage(record)
	if err != nil {
		return err
	}

	topic := c.c.Topic(c.pubsubTopicID)
	result := topic.Publish(ctx, msg)
	serverID, err := result.Get(ctx)
	if err != nil {
		return errors.Wrap(errors.WithStack(err), "serverID: "+serverID)
	}
	return nil
}

// Close ...
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.c.Close()
}

func transformRecordToMessage(record common.NotificationRecordModel) (*pubsub.Message, error) {
	data, err := record.Serialise()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to serialise notification record")
	}
	return &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"provider":   record.Provider,
			"event_type": record.EventType,
			"outcome":    string(record.Outcome),
		},
	}, nil
}
