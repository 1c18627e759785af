package root

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fluidattacks/rocketchat-webhooks/version"
	"github.com/stretchr/testify/require"
)

func TestHTTPHandler(t *testing.T) {
	w := httptest.NewRecorder()
	HTTPHandler(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp RespModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, version.VERSION, resp.Version)
	require.Equal(t, "development", resp.EnvironmentMode)
	require.Contains(t, resp.Message, "/h/gitlab")
}
