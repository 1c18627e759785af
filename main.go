package main

import (
	"flag"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/bitrise-io/api-utils/logging"
	"github.com/fluidattacks/rocketchat-webhooks/config"
	"github.com/fluidattacks/rocketchat-webhooks/internal/pubsub"
	"github.com/fluidattacks/rocketchat-webhooks/service/hook"
	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func stringFlagOrEnv(flagValue *string, envKey string) string {
	if flagValue != nil && *flagValue != "" {
		return *flagValue
	}
	return os.Getenv(envKey)
}

func main() {
	var (
		portFlag          = flag.String("port", "", `Use port [$PORT]`)
		sendRequestToFlag = flag.String("send-request-to", "", `Forward every produced message to this Rocket.Chat incoming webhook URL [$SEND_REQUEST_TO]`)
		logOnlyFlag       = flag.String("log-only", "", `Only log the messages that would be forwarded to send-request-to [$LOG_ONLY]`)
	)
	flag.Parse()

	logger := logging.WithContext(nil)
	defer logging.Sync(logger)

	port := stringFlagOrEnv(portFlag, "PORT")
	if port == "" {
		logger.Fatal("Port must be set")
	}
	config.SetupServerEnvMode()

	if sendRequestTo := stringFlagOrEnv(sendRequestToFlag, "SEND_REQUEST_TO"); sendRequestTo != "" {
		u, err := url.Parse(sendRequestTo)
		if err != nil {
			logger.Fatal("Failed to parse send-request-to URL", zap.Error(err))
		}
		config.SendRequestToURL = u
		logger.Warn(" (!) Send-Request-To specified, every message will be sent to it", zap.String("url", u.Redacted()))
	}

	if logOnly := stringFlagOrEnv(logOnlyFlag, "LOG_ONLY"); logOnly != "" {
		isLogOnly, err := strconv.ParseBool(logOnly)
		if err != nil {
			logger.Fatal("Failed to parse log-only", zap.Error(err))
		}
		config.LogOnlyMode = isLogOnly
		if isLogOnly {
			logger.Warn(" (!) Log only mode, messages won't be forwarded")
		}
	}

	notifierConfig, err := config.NotifierFromEnv()
	if err != nil {
		logger.Fatal("Failed to load notifier config", zap.Error(err))
	}

	// Monitoring
	if config.GetServerEnvMode() == config.ServerEnvModeProd {
		tracer.Start(tracer.WithService("rocketchat-webhooks"))
		defer tracer.Stop()
	} else {
		logger.Info(" (!) Skipping tracer setup - environment is not 'production'")
	}

	var pubsubClient *pubsub.Client
	if projectID := os.Getenv("PUBSUB_PROJECT_ID"); projectID != "" {
		pubsubClient, err = pubsub.NewClient(projectID, os.Getenv("PUBSUB_SERVICE_ACCOUNT_JSON"), os.Getenv("PUBSUB_TOPIC_ID"))
		if err != nil {
			logger.Fatal("Failed to create Pub/Sub client", zap.Error(err))
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logger.Error("Failed to close Pub/Sub client", zap.Error(err))
			}
		}()
	}

	// Routing
	setupRoutes(hook.NewClient(notifierConfig, pubsubClient, logger))

	logger.Info("Starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Fatal("Failed to ListenAndServe", zap.Error(err))
	}
}
