package chatapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bitrise-io/api-utils/httpresponse"
	"github.com/bitrise-io/api-utils/logging"
	hookCommon "github.com/fluidattacks/rocketchat-webhooks/service/hook/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// PostMessageResponseModel is the answer of a Rocket.Chat incoming webhook.
type PostMessageResponseModel struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

var httpClient = &http.Client{
	Timeout: 60 * time.Second,
}

// PostMessage sends the message to a Rocket.Chat incoming webhook, once.
// Returns an error in case it can't send the request or can't read the
// response. A non 2xx response is not an error, isSuccess is false then.
func PostMessage(url *url.URL, msg hookCommon.MessageModel, isOnlyLog bool) (PostMessageResponseModel, bool, error) {
	logger := logging.WithContext(nil)

	jsonStr, err := json.Marshal(msg)
	if err != nil {
		return PostMessageResponseModel{}, false, errors.Wrap(err, "PostMessage: failed to json marshal")
	}

	logger.Debug("===> Posting message", zap.Stringer("url", url), zap.ByteString("body", jsonStr))

	if isOnlyLog {
		return PostMessageResponseModel{Success: true}, true, nil
	}

	req, err := http.NewRequest(http.MethodPost, url.String(), bytes.NewBuffer(jsonStr))
	if err != nil {
		return PostMessageResponseModel{}, false, errors.Wrap(err, "PostMessage: failed to create request")
	}
	req.Header.Set("Content-Type", hookCommon.ContentTypeApplicationJSON)

	resp, err := httpClient.Do(req)
	if err != nil {
		return PostMessageResponseModel{}, false, errors.Wrap(err, "PostMessage: failed to send request")
	}
	defer httpresponse.BodyCloseWithErrorLog(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return PostMessageResponseModel{}, false, errors.Wrapf(err, "PostMessage: request sent, but failed to read response body (http-code:%d)", resp.StatusCode)
	}

	var respModel PostMessageResponseModel
	if err := json.Unmarshal(body, &respModel); err != nil {
		return PostMessageResponseModel{}, false, errors.Errorf("PostMessage: request sent, but failed to parse response (http-code:%d): %s", resp.StatusCode, body)
	}

	if 200 <= resp.StatusCode && resp.StatusCode <= 202 {
		return respModel, true, nil
	}
	return respModel, false, nil
}
