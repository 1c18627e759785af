package service

import (
	"net/http"

	"github.com/bitrise-io/api-utils/httpresponse"
	"github.com/bitrise-io/api-utils/logging"
	"go.uber.org/zap"
)

// StandardErrorRespModel ...
type StandardErrorRespModel struct {
	ErrorMessage string `json:"error"`
}

// -----------------
// --- Generic ---

// RespondWith writes respModel as JSON, or only the status code if respModel is nil.
func RespondWith(w http.ResponseWriter, httpStatusCode int, respModel interface{}) {
	if respModel == nil {
		w.WriteHeader(httpStatusCode)
		return
	}
	if err := httpresponse.RespondWithJSON(w, httpStatusCode, respModel); err != nil {
		logging.WithContext(nil).Error(" [!] Exception: RespondWith", zap.Error(err))
	}
}

// -----------------
// --- Successes ---

// RespondWithSuccessOK ...
func RespondWithSuccessOK(w http.ResponseWriter, respModel interface{}) {
	RespondWith(w, http.StatusOK, respModel)
}

// --------------
// --- Errors ---

// RespondWithBadRequestError ...
func RespondWithBadRequestError(w http.ResponseWriter, errMsg string) {
	RespondWithError(w, http.StatusBadRequest, errMsg)
}

// RespondWithNotFoundError ...
func RespondWithNotFoundError(w http.ResponseWriter, errMsg string) {
	RespondWithError(w, http.StatusNotFound, errMsg)
}

// RespondWithError ...
func RespondWithError(w http.ResponseWriter, httpErrCode int, errMsg string) {
	RespondWith(w, httpErrCode, StandardErrorRespModel{
		ErrorMessage: errMsg,
	})
}
