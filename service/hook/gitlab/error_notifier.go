package gitlab

import (
	"fmt"

	hookCommon "github.com/fluidattacks/rocketchat-webhooks/service/hook/common"
	"github.com/pkg/errors"
)

const (
	errorHandlerUsername = "Rocket.Cat ErrorHandler"
	errorHandlerText     = "Error occured while parsing an incoming webhook request. Details attached."
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// ErrorNotifier turns a classification failure into a response.
type ErrorNotifier struct {
	config hookCommon.NotifierConfig
}

// NewErrorNotifier ...
func NewErrorNotifier(config hookCommon.NotifierConfig) ErrorNotifier {
	return ErrorNotifier{config: config}
}

// OnError returns a diagnostic chat message, or a structured error
// if error messages are ignored.
func (n ErrorNotifier) OnError(err error) *hookCommon.ResponseModel {
	if n.config.IgnoreErrorMessages {
		return &hookCommon.ResponseModel{
			Error: &hookCommon.ErrorModel{
				Success: false,
				Message: fmt.Sprintf("gitlabevent error: %s", err),
			},
		}
	}

	return &hookCommon.ResponseModel{
		Content: &hookCommon.MessageModel{
			Username: errorHandlerUsername,
			Text:     errorHandlerText,
			IconURL:  n.config.IconURL(),
			Attachments: []hookCommon.AttachmentModel{
				{
					Text:  fmt.Sprintf("Error: '%s', \n Message: '%s', \n Stack: '%s'", err, errors.Cause(err), stackOf(err)),
					Color: n.config.NotifColor,
				},
			},
		},
	}
}

// stackOf returns the deepest recorded stack of the error chain.
func stackOf(err error) string {
	var deepest stackTracer
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			deepest = st
		}
	}
	if deepest == nil {
		return ""
	}
	return fmt.Sprintf("%+v", deepest.StackTrace())
}
