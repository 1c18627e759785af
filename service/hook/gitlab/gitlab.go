package gitlab

// # Infos / notes:
//
// ## Webhook calls
//
// Official API docs: https://docs.gitlab.com/ee/user/project/integrations/webhook_events.html
//
// The event type is sent in the `X-Gitlab-Event` header, the payload
// shape depends on it. Every event type is translated into a single
// Rocket.Chat incoming webhook message, or into nothing if the event
// is not worth a notification (bot comments, non master pipelines, ...).
//
// ### Project vs. Repository
//
// Older GitLab versions send the project info in a "repository" object,
// newer ones in "project". Both are accepted, "project" wins.
//
// ### Tag Push
//
// A deleted tag is sent as a Tag Push Hook with `"checkout_sha": null`.
//
// ### Pipeline
//
// Both `Pipeline Hook` and the older `Pipeline Event` header are accepted.
// Only failed pipelines of the master branch are notified.
//
// ### Build / Job
//
// `Build Hook` (GitLab < 9.3.0) and `Job Hook` (GitLab >= 9.3.0) are routed
// to the wiki page classifier, as they always were. Job payloads don't
// carry the wiki fields, so they end up in an error notification.
//

import (
	"io"
	"net/http"

	hookCommon "github.com/fluidattacks/rocketchat-webhooks/service/hook/common"
	"github.com/pkg/errors"
	"github.com/xanzy/go-gitlab"
)

const (
	// pipelineEventLegacyID is sent by GitLab versions before "Pipeline Hook"
	pipelineEventLegacyID gitlab.EventType = "Pipeline Event"

	// ProviderID ...
	ProviderID = "gitlab"
)

// maxRequestBodySize bigger webhook payloads are rejected
var maxRequestBodySize int64 = 10 << 20

// ---------------------------------------
// --- Webhook Provider Implementation ---

// HookProvider ...
type HookProvider struct {
	dispatcher *Dispatcher
}

// NewHookProvider ...
func NewHookProvider(dispatcher *Dispatcher) hookCommon.Provider {
	return HookProvider{
		dispatcher: dispatcher,
	}
}

// TransformRequest ...
func (hp HookProvider) TransformRequest(r *http.Request) (hookCommon.DispatchResultModel, error) {
	if r.Body == nil {
		return hookCommon.DispatchResultModel{}, errors.New("Failed to read content of request body: no or empty request body")
	}

	payload, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxRequestBodySize))
	if err != nil {
		return hookCommon.DispatchResultModel{}, errors.Wrap(err, "Failed to read content of request body")
	}

	return hp.dispatcher.Dispatch(hookCommon.InboundRequestModel{
		EventType: string(gitlab.HookEventType(r)),
		Channel:   r.URL.Query().Get("channel"),
		Payload:   payload,
	}), nil
}
