package common

import (
	"net/http"
	"time"
)

const (
	// ContentTypeApplicationJSON ...
	ContentTypeApplicationJSON string = "application/json"
)

// Outcome describes what happened to a single webhook call.
type Outcome string

const (
	// OutcomeNotified a chat message was produced
	OutcomeNotified Outcome = "notified"
	// OutcomeSuppressed the event is valid, but policy says nothing should be sent
	OutcomeSuppressed Outcome = "suppressed"
	// OutcomeIgnored the event type is unknown and unknown events are ignored
	OutcomeIgnored Outcome = "ignored"
	// OutcomeUnknown the event type is unknown and was echoed back as-is
	OutcomeUnknown Outcome = "unknown"
	// OutcomeFailed the payload could not be classified
	OutcomeFailed Outcome = "failed"
)

// UserModel ...
type UserModel struct {
	Name      string `json:"name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// AttachmentModel ...
type AttachmentModel struct {
	Title      string `json:"title,omitempty"`
	AuthorName string `json:"author_name"`
	AuthorIcon string `json:"author_icon"`
	Timestamp  string `json:"ts"`
	Text       string `json:"text"`
	Color      string `json:"color"`
}

// MessageModel is the body of a Rocket.Chat incoming webhook message.
type MessageModel struct {
	Channel     string            `json:"channel,omitempty"`
	Username    string            `json:"username,omitempty"`
	IconURL     *string           `json:"icon_url"`
	Text        string            `json:"text"`
	Attachments []AttachmentModel `json:"attachments,omitempty"`
}

// ErrorModel ...
type ErrorModel struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ResponseModel is either a message to send or an error to swallow.
// A nil *ResponseModel means nothing should be sent.
type ResponseModel struct {
	Content *MessageModel `json:"content,omitempty"`
	Error   *ErrorModel   `json:"error,omitempty"`
}

// InboundRequestModel ...
type InboundRequestModel struct {
	EventType string
	Channel   string
	Payload   []byte
}

// TransformResultModel ...
type TransformResultModel struct {
	// Message is the chat message produced for the event
	Message *MessageModel
	// ShouldSkip if true then no message should be sent for this event,
	// but it's not a failure either
	ShouldSkip bool
	// Error in transforming the event. If ShouldSkip=true this is
	// the reason why the event was suppressed.
	Error error
}

// DispatchResultModel ...
type DispatchResultModel struct {
	EventType string
	Outcome   Outcome
	// Response is nil if nothing should be sent
	Response *ResponseModel
}

// UnknownEventTypeLabel replaces the event type of unknown events in metrics
// and notification records, the raw header is caller controlled.
const UnknownEventTypeLabel = "unknown"

// EventTypeLabel is the event type, or UnknownEventTypeLabel for event types
// without a classifier.
func (r DispatchResultModel) EventTypeLabel() string {
	if r.Outcome == OutcomeUnknown || r.Outcome == OutcomeIgnored {
		return UnknownEventTypeLabel
	}
	return r.EventType
}

// Provider ...
type Provider interface {
	// TransformRequest should transform the hook into a chat message.
	// Malformed payloads are reported in the result, the returned error
	// is reserved for requests that can't be read at all.
	TransformRequest(r *http.Request) (DispatchResultModel, error)
}

// TimeProvider ...
type TimeProvider interface {
	CurrentTime() time.Time
}

// DefaultTimeProvider ...
type DefaultTimeProvider struct{}

// NewDefaultTimeProvider ...
func NewDefaultTimeProvider() TimeProvider {
	return DefaultTimeProvider{}
}

// CurrentTime ...
func (DefaultTimeProvider) CurrentTime() time.Time {
	return time.Now()
}

// ---------------------------------------
// --- Response transformers ---

// TransformResponseModel ...
type TransformResponseModel struct {
	// Data will be transformed into JSON, and returned as the response.
	// If nil, no body is written.
	Data interface{}
	// HTTPStatusCode if specified (!= 0) will be used as the respone's
	// HTTP response status code.
	HTTPStatusCode int
}

// ResponseTransformer ...
type ResponseTransformer interface {
	// TransformResponse is called when the hook was dispatched,
	// whatever the outcome was.
	TransformResponse(input DispatchResultModel) TransformResponseModel
	// TransformErrorMessageResponse is called if an error prevents
	// the dispatch (unknown provider, unreadable body, ...)
	TransformErrorMessageResponse(errMsg string) TransformResponseModel
}
