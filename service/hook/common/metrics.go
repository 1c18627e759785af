package common

import (
	"encoding/json"
	"fmt"
	"time"
)

// NotificationRecordModel describes one processed webhook call.
type NotificationRecordModel struct {
	TimeStamp time.Time     `json:"timestamp"`
	Provider  string        `json:"provider"`
	EventType string        `json:"event_type"`
	Outcome   Outcome       `json:"outcome"`
	Channel   string        `json:"channel,omitempty"`
	Message   *MessageModel `json:"message,omitempty"`
}

// NewNotificationRecord ...
func NewNotificationRecord(currentTime time.Time, provider, channel string, result DispatchResultModel) NotificationRecordModel {
	record := NotificationRecordModel{
		TimeStamp: currentTime,
		Provider:  provider,
		EventType: result.EventTypeLabel(),
		Outcome:   result.Outcome,
		Channel:   channel,
	}
	if result.Response != nil {
		record.Message = result.Response.Content
	}
	return record
}

// Serialise ...
func (m NotificationRecordModel) Serialise() ([]byte, error) {
	return json.Marshal(m)
}

// String ...
func (m NotificationRecordModel) String() string {
	return stringer(m)
}

func stringer(v interface{}) string {
	c, err := json.MarshalIndent(v, "", "\t")
	if err == nil {
		return string(c)
	}
	return fmt.Sprintf("#%v", v)
}
