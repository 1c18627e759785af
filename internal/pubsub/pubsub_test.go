package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/fluidattacks/rocketchat-webhooks/service/hook/common"
	"github.com/stretchr/testify/require"
)

func TestClient_PublishNotification_nilClient(t *testing.T) {
	var c *Client
	require.NoError(t, c.PublishNotification(context.Background(), common.NotificationRecordModel{}))
	require.NoError(t, c.Close())
}

func Test_transformRecordToMessage(t *testing.T) {
	record := common.NotificationRecordModel{
		TimeStamp: time.Date(2023, time.October, 26, 8, 0, 0, 0, time.UTC),
		Provider:  "gitlab",
		EventType: "Pipeline Hook",
		Outcome:   common.OutcomeSuppressed,
		Channel:   "dev",
	}

	msg, err := transformRecordToMessage(record)
	require.NoError(t, err)
	require.Equal(t, `{"timestamp":"2023-10-26T08:00:00Z","provider":"gitlab","event_type":"Pipeline Hook","outcome":"suppressed","channel":"dev"}`, string(msg.Data))
	require.Equal(t, map[string]string{
		"provider":   "gitlab",
		"event_type": "Pipeline Hook",
		"outcome":    "suppressed",
	}, msg.Attributes)
}
