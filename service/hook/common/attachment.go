package common

import (
	"time"
)

// ISO8601Format is the timestamp format of attachments, UTC with millisecond precision
const ISO8601Format = "2006-01-02T15:04:05.000Z"

// layouts GitLab uses for timestamps in webhook payloads
var vendorTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05 -0700",
}

// AttachmentBuilder ...
type AttachmentBuilder struct {
	config       NotifierConfig
	timeProvider TimeProvider
}

// NewAttachmentBuilder ...
func NewAttachmentBuilder(config NotifierConfig, timeProvider TimeProvider) AttachmentBuilder {
	return AttachmentBuilder{
		config:       config,
		timeProvider: timeProvider,
	}
}

// MakeAttachment builds the attachment of a message.
// An empty timestamp defaults to the current time, an empty color to NotifColor.
func (b AttachmentBuilder) MakeAttachment(author *UserModel, text, timestamp, color string) AttachmentModel {
	attachment := AttachmentModel{
		Timestamp: normalizeTimestamp(timestamp),
		Text:      text,
		Color:     color,
	}
	if author != nil {
		attachment.AuthorName = DisplayName(author.Name)
		attachment.AuthorIcon = author.AvatarURL
	}
	if attachment.Timestamp == "" {
		attachment.Timestamp = b.timeProvider.CurrentTime().UTC().Format(ISO8601Format)
	}
	if attachment.Color == "" {
		attachment.Color = b.config.NotifColor
	}
	if b.config.AttachmentTitleSize > 0 {
		attachment.Title = truncate(text, b.config.AttachmentTitleSize) + "..."
	}

	return attachment
}

// RawAttachment is an attachment without author and timestamp,
// used for raw payload dumps and error details.
func (b AttachmentBuilder) RawAttachment(text string) AttachmentModel {
	return AttachmentModel{
		Text:  text,
		Color: b.config.NotifColor,
	}
}

func normalizeTimestamp(timestamp string) string {
	if timestamp == "" {
		return ""
	}
	if t := parseTime(timestamp); t != nil {
		return t.UTC().Format(ISO8601Format)
	}
	return timestamp
}

func parseTime(s string) *time.Time {
	for _, aLayout := range vendorTimeLayouts {
		if t, err := time.Parse(aLayout, s); err == nil {
			return &t
		}
	}
	return nil
}

func truncate(s string, size int) string {
	r := []rune(s)
	if len(r) <= size {
		return s
	}
	return string(r[:size])
}
