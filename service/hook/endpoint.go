package hook

import (
	"fmt"
	"net/http"

	"github.com/bitrise-io/api-utils/logging"
	"github.com/bitrise-io/go-utils/colorstring"
	"github.com/fluidattacks/rocketchat-webhooks/chatapi"
	"github.com/fluidattacks/rocketchat-webhooks/config"
	"github.com/fluidattacks/rocketchat-webhooks/internal/pubsub"
	"github.com/fluidattacks/rocketchat-webhooks/metrics"
	"github.com/fluidattacks/rocketchat-webhooks/service"
	hookCommon "github.com/fluidattacks/rocketchat-webhooks/service/hook/common"
	"github.com/fluidattacks/rocketchat-webhooks/service/hook/gitlab"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Client ...
type Client struct {
	Providers    map[string]hookCommon.Provider
	PubsubClient *pubsub.Client
	TimeProvider hookCommon.TimeProvider
}

// NewClient ...
func NewClient(notifierConfig hookCommon.NotifierConfig, pubsubClient *pubsub.Client, logger *zap.Logger) Client {
	timeProvider := hookCommon.NewDefaultTimeProvider()
	return Client{
		Providers:    supportedProviders(notifierConfig, timeProvider, logger),
		PubsubClient: pubsubClient,
		TimeProvider: timeProvider,
	}
}

func supportedProviders(notifierConfig hookCommon.NotifierConfig, timeProvider hookCommon.TimeProvider, logger *zap.Logger) map[string]hookCommon.Provider {
	return map[string]hookCommon.Provider{
		gitlab.ProviderID: gitlab.NewHookProvider(gitlab.NewDispatcher(notifierConfig, timeProvider, logger)),
	}
}

// ----------------------------------
// --- Response handler functions ---

func responseTransformer(provider hookCommon.Provider) hookCommon.ResponseTransformer {
	if respTransformer, ok := provider.(hookCommon.ResponseTransformer); ok {
		// provider can transform responses - let it do so
		return respTransformer
	}
	return hookCommon.DefaultResponseProvider{}
}

func respondWithErrorString(w http.ResponseWriter, provider hookCommon.Provider, errStr string) {
	respInfo := responseTransformer(provider).TransformErrorMessageResponse(errStr)
	httpStatusCode := http.StatusBadRequest // default
	if respInfo.HTTPStatusCode != 0 {
		httpStatusCode = respInfo.HTTPStatusCode
	}
	service.RespondWith(w, httpStatusCode, respInfo.Data)
}

func respondWithResult(w http.ResponseWriter, provider hookCommon.Provider, result hookCommon.DispatchResultModel) {
	respInfo := responseTransformer(provider).TransformResponse(result)
	httpStatusCode := http.StatusOK // default
	if respInfo.HTTPStatusCode != 0 {
		httpStatusCode = respInfo.HTTPStatusCode
	}
	service.RespondWith(w, httpStatusCode, respInfo.Data)
}

// -------------------------
// --- Utility functions ---

func forwardMessage(logger *zap.Logger, msg hookCommon.MessageModel) {
	if config.SendRequestToURL == nil {
		return
	}

	isOnlyLog := config.LogOnlyMode
	if isOnlyLog {
		logger.Debug(colorstring.Yellow(" (debug) isOnlyLog: true"))
	}

	resp, isSuccess, err := chatapi.PostMessage(config.SendRequestToURL, msg, isOnlyLog)
	if err != nil {
		logger.Error(" [!] Exception: Failed to forward message", zap.Error(err))
		return
	}
	logger.Info(" ===> forward message - DONE", zap.Bool("success", isSuccess), zap.String("error", resp.Error))
}

// ------------------------------
// --- Main HTTP Handler code ---

// HTTPHandler ...
func (c Client) HTTPHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID := vars["service-id"]

	logger := logging.WithContext(r.Context())
	defer logging.Sync(logger)

	if serviceID == "" {
		respondWithErrorString(w, nil, "No service-id defined")
		return
	}
	hookProvider, isSupported := c.Providers[serviceID]
	if !isSupported {
		respondWithErrorString(w, nil, fmt.Sprintf("Unsupported Webhook Type / Provider: %s", serviceID))
		return
	}

	var dispatchResult hookCommon.DispatchResultModel
	var err error
	metrics.Trace("Hook: Transform", func() {
		dispatchResult, err = hookProvider.TransformRequest(r)
	})
	if err != nil {
		logger.Error(" [!] Exception: Failed to read the webhook", zap.String("provider", serviceID), zap.Error(err))
		respondWithErrorString(w, hookProvider, err.Error())
		return
	}

	metrics.RecordOutcome(serviceID, dispatchResult.EventTypeLabel(), string(dispatchResult.Outcome))

	if dispatchResult.Response != nil && dispatchResult.Response.Content != nil {
		metrics.Trace("Hook: Forward Message", func() {
			forwardMessage(logger, *dispatchResult.Response.Content)
		})
	}

	if c.PubsubClient != nil {
		currentTime := hookCommon.NewDefaultTimeProvider().CurrentTime()
		if c.TimeProvider != nil {
			currentTime = c.TimeProvider.CurrentTime()
		}
		record := hookCommon.NewNotificationRecord(currentTime, serviceID, r.URL.Query().Get("channel"), dispatchResult)
		if err := c.PubsubClient.PublishNotification(r.Context(), record); err != nil {
			logger.Error(" [!] Exception: Failed to publish notification record", zap.Error(err))
		}
	}

	respondWithResult(w, hookProvider, dispatchResult)
}
