package config

import (
	"net/url"
	"os"

	hookCommon "github.com/fluidattacks/rocketchat-webhooks/service/hook/common"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	// ServerEnvModeDev ...
	ServerEnvModeDev = "development"
	// ServerEnvModeProd ...
	ServerEnvModeProd = "production"

	// NotifierEnvPrefix every notifier setting is read from GITLAB_NOTIFIER_<NAME>
	NotifierEnvPrefix = "GITLAB_NOTIFIER"
)

var (
	serverEnvironmentMode = ServerEnvModeDev

	// SendRequestToURL Rocket.Chat incoming webhook the produced messages are forwarded to
	SendRequestToURL *url.URL

	// LogOnlyMode when set to true, messages are logged instead of forwarded to SendRequestToURL
	LogOnlyMode = false
)

// GetServerEnvMode ...
func GetServerEnvMode() string {
	return serverEnvironmentMode
}

// SetupServerEnvMode ...
func SetupServerEnvMode() {
	envMode := os.Getenv("RACK_ENV")
	if envMode != "" {
		serverEnvironmentMode = envMode
	}
}

// NotifierFromEnv returns the default notifier settings,
// overridden by the GITLAB_NOTIFIER_* environment variables.
func NotifierFromEnv() (hookCommon.NotifierConfig, error) {
	notifierConfig := hookCommon.DefaultNotifierConfig()
	if err := envconfig.Process(NotifierEnvPrefix, &notifierConfig); err != nil {
		return hookCommon.NotifierConfig{}, errors.Wrap(err, "Failed to read notifier config from environment")
	}
	if err := ValidateNotifier(notifierConfig); err != nil {
		return hookCommon.NotifierConfig{}, err
	}
	return notifierConfig, nil
}

// ValidateNotifier ...
func ValidateNotifier(notifierConfig hookCommon.NotifierConfig) error {
	if err := validator.New().Struct(notifierConfig); err != nil {
		return errors.Wrap(err, "Invalid notifier config")
	}
	return nil
}
