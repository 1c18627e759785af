package gitlab

import (
	"bytes"
	"encoding/json"
	"fmt"

	hookCommon "github.com/fluidattacks/rocketchat-webhooks/service/hook/common"
	"github.com/pkg/errors"
	"github.com/xanzy/go-gitlab"
	"go.uber.org/zap"
)

type classifierFunc func(payload []byte) hookCommon.TransformResultModel

// Dispatcher routes a webhook payload to the classifier of its event type.
// It is safe for concurrent use, nothing is mutated after NewDispatcher.
type Dispatcher struct {
	config        hookCommon.NotifierConfig
	attachments   hookCommon.AttachmentBuilder
	errorNotifier ErrorNotifier
	logger        *zap.Logger
	classifiers   map[gitlab.EventType]classifierFunc
}

// NewDispatcher ...
func NewDispatcher(config hookCommon.NotifierConfig, timeProvider hookCommon.TimeProvider, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dispatcher{
		config:        config,
		attachments:   hookCommon.NewAttachmentBuilder(config, timeProvider),
		errorNotifier: NewErrorNotifier(config),
		logger:        logger,
	}

	wikiEvent := decodeAnd(d.wikiEvent)
	pipelineEvent := decodeAnd(d.pipelineEvent)
	d.classifiers = map[gitlab.EventType]classifierFunc{
		gitlab.EventTypeMergeRequest:  decodeAnd(d.mergeRequestEvent),
		gitlab.EventTypeNote:          d.noteClassifier(false),
		gitlab.EventConfidentialNote:  d.noteClassifier(true),
		gitlab.EventTypeIssue:         d.issueClassifier(false),
		gitlab.EventConfidentialIssue: d.issueClassifier(true),
		gitlab.EventTypeTagPush:       decodeAnd(d.tagEvent),
		gitlab.EventTypePipeline:      pipelineEvent,
		pipelineEventLegacyID:         pipelineEvent,
		gitlab.EventTypeBuild:         wikiEvent,
		gitlab.EventTypeJob:           wikiEvent,
		gitlab.EventTypeWikiPage:      wikiEvent,
		gitlab.EventTypeSystemHook:    d.systemClassifier,
	}

	return d
}

// noteClassifier reads the comment author first: the bot and confidential
// policy holds whatever the rest of the payload looks like.
func (d *Dispatcher) noteClassifier(isConfidential bool) classifierFunc {
	classify := decodeAnd(func(event NoteEventModel) hookCommon.TransformResultModel {
		return d.commentEvent(event, isConfidential)
	})
	return func(payload []byte) hookCommon.TransformResultModel {
		// a malformed payload is reported by the full decode below
		var author NoteAuthorModel
		_ = json.Unmarshal(payload, &author)
		if result, isSuppressed := d.commentPolicy(author.User, isConfidential); isSuppressed {
			return result
		}
		return classify(payload)
	}
}

func (d *Dispatcher) issueClassifier(isConfidential bool) classifierFunc {
	return decodeAnd(func(event IssueEventModel) hookCommon.TransformResultModel {
		return d.issueEvent(event, isConfidential)
	})
}

func (d *Dispatcher) systemClassifier(payload []byte) hookCommon.TransformResultModel {
	var event SystemEventModel
	if err := decodePayload(payload, &event); err != nil {
		return hookCommon.TransformResultModel{Error: err}
	}
	return d.systemEvent(event, payload)
}

// IsKnownEventType ...
func (d *Dispatcher) IsKnownEventType(eventType string) bool {
	_, ok := d.classifiers[gitlab.EventType(eventType)]
	return ok
}

// Handle returns the response for the request, nil if nothing should be sent.
func (d *Dispatcher) Handle(req hookCommon.InboundRequestModel) *hookCommon.ResponseModel {
	return d.Dispatch(req).Response
}

// Dispatch is Handle, with the outcome of the call.
func (d *Dispatcher) Dispatch(req hookCommon.InboundRequestModel) hookCommon.DispatchResultModel {
	dispatchResult := hookCommon.DispatchResultModel{EventType: req.EventType}

	outcome := hookCommon.OutcomeNotified
	classify, isKnown := d.classifiers[gitlab.EventType(req.EventType)]
	if !isKnown {
		if d.config.IgnoreUnknownEvents {
			d.logger.Info("gitlabevent unknown", zap.String("event", req.EventType))
			dispatchResult.Outcome = hookCommon.OutcomeIgnored
			dispatchResult.Response = &hookCommon.ResponseModel{
				Error: &hookCommon.ErrorModel{Success: false, Message: fmt.Sprintf("unknown event %s", req.EventType)},
			}
			return dispatchResult
		}

		outcome = hookCommon.OutcomeUnknown
		classify = func(payload []byte) hookCommon.TransformResultModel {
			return d.unknownEvent(req.EventType, payload)
		}
	}

	result := classifySafely(classify, req.Payload)

	if result.ShouldSkip || (result.Error == nil && result.Message == nil) {
		d.logger.Debug("gitlabevent suppressed", zap.String("event", req.EventType), zap.NamedError("reason", result.Error))
		dispatchResult.Outcome = hookCommon.OutcomeSuppressed
		return dispatchResult
	}

	if result.Error != nil {
		d.logger.Error("gitlabevent error", zap.String("event", req.EventType), zap.Error(result.Error))
		dispatchResult.Outcome = hookCommon.OutcomeFailed
		dispatchResult.Response = d.errorNotifier.OnError(result.Error)
		return dispatchResult
	}

	if req.Channel != "" {
		result.Message.Channel = "#" + req.Channel
	}
	dispatchResult.Outcome = outcome
	dispatchResult.Response = &hookCommon.ResponseModel{Content: result.Message}
	return dispatchResult
}

// classifySafely is the failure boundary of the dispatcher:
// a panicking classifier is turned into a classification error.
func classifySafely(classify classifierFunc, payload []byte) (result hookCommon.TransformResultModel) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			result = hookCommon.TransformResultModel{Error: errors.WithStack(err)}
		}
	}()

	return classify(payload)
}

func decodeAnd[T any](classify func(T) hookCommon.TransformResultModel) classifierFunc {
	return func(payload []byte) hookCommon.TransformResultModel {
		var event T
		if err := decodePayload(payload, &event); err != nil {
			return hookCommon.TransformResultModel{Error: err}
		}
		return classify(event)
	}
}

func decodePayload(payload []byte, v interface{}) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return errors.Wrap(err, "Failed to parse request body as JSON")
	}
	return nil
}

// rawPayload pretty prints the payload, or returns it as is if it's not JSON.
func rawPayload(payload []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "    "); err != nil {
		return string(payload)
	}
	return buf.String()
}
