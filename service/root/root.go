package root

import (
	"net/http"
	"time"

	"github.com/fluidattacks/rocketchat-webhooks/config"
	"github.com/fluidattacks/rocketchat-webhooks/service"
	"github.com/fluidattacks/rocketchat-webhooks/version"
)

// RespModel ...
type RespModel struct {
	Message         string `json:"message"`
	Version         string `json:"version"`
	Time            string `json:"time"`
	EnvironmentMode string `json:"environment_mode"`
}

// HTTPHandler ...
func HTTPHandler(w http.ResponseWriter, r *http.Request) {
	resp := RespModel{
		Message:         "Welcome to rocketchat-webhooks! Point your GitLab project webhooks to /h/gitlab?channel=<channel>",
		Version:         version.VERSION,
		Time:            time.Now().UTC().Format(time.RFC3339),
		EnvironmentMode: config.GetServerEnvMode(),
	}

	service.RespondWithSuccessOK(w, resp)
}
