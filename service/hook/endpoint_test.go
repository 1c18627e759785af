package hook

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	hookCommon "github.com/fluidattacks/rocketchat-webhooks/service/hook/common"
	"github.com/fluidattacks/rocketchat-webhooks/config"
	"github.com/fluidattacks/rocketchat-webhooks/metrics"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

const sampleTagPushData = `{
"ref": "refs/tags/v1.0.0",
"checkout_sha": "82b3d5ae55f7080f1e6022629cdb57bfae7cccc7",
"user_name": "José Pérez",
"project": {
	"name": "product",
	"web_url": "https://gitlab.com/fluidattacks/product"
}
}`

type failingBody struct{}

func (failingBody) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func (failingBody) Close() error {
	return nil
}

func newTestRequest(serviceID, eventType, query string, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/h/"+serviceID+query, strings.NewReader(body))
	r.Header.Set("X-Gitlab-Event", eventType)
	return mux.SetURLVars(r, map[string]string{"service-id": serviceID})
}

func TestClient_HTTPHandler(t *testing.T) {
	client := NewClient(hookCommon.DefaultNotifierConfig(), nil, nil)

	t.Log("Unsupported provider")
	{
		w := httptest.NewRecorder()
		client.HTTPHandler(w, newTestRequest("github", "push", "", `{}`))
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.JSONEq(t, `{"error": "Unsupported Webhook Type / Provider: github"}`, w.Body.String())
	}

	t.Log("No service id")
	{
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/h/", strings.NewReader(`{}`))
		client.HTTPHandler(w, r)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.JSONEq(t, `{"error": "No service-id defined"}`, w.Body.String())
	}

	t.Log("Notified")
	{
		w := httptest.NewRecorder()
		client.HTTPHandler(w, newTestRequest("gitlab", "Tag Push Hook", "?channel=releases", sampleTagPushData))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		body := w.Body.String()
		require.Contains(t, body, `"channel":"#releases"`)
		require.Contains(t, body, `"username":"gitlab/product"`)
		require.Contains(t, body, `"text":"pushed tag [v1.0.0 82b3d5ae](https://gitlab.com/fluidattacks/product/tags/v1.0.0)"`)
		require.Contains(t, body, `"author_name":"jose.perez"`)
	}

	t.Log("Suppressed")
	{
		w := httptest.NewRecorder()
		client.HTTPHandler(w, newTestRequest("gitlab", "Note Hook", "", `{"user": {"username": "internalbotatfluid"}}`))
		require.Equal(t, http.StatusNoContent, w.Code)
		require.Equal(t, "", w.Body.String())
	}

	t.Log("Error notification")
	{
		w := httptest.NewRecorder()
		client.HTTPHandler(w, newTestRequest("gitlab", "Pipeline Hook", "", `{"object_attributes": `))
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"username":"Rocket.Cat ErrorHandler"`)
	}

	t.Log("Unreadable body")
	{
		w := httptest.NewRecorder()
		r := newTestRequest("gitlab", "Tag Push Hook", "", "")
		r.Body = failingBody{}
		client.HTTPHandler(w, r)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.JSONEq(t, `{"error": "Failed to read content of request body: connection reset"}`, w.Body.String())
	}
}

func TestClient_HTTPHandler_ignoredUnknownEvents(t *testing.T) {
	notifierConfig := hookCommon.DefaultNotifierConfig()
	notifierConfig.IgnoreUnknownEvents = true
	client := NewClient(notifierConfig, nil, nil)

	w := httptest.NewRecorder()
	client.HTTPHandler(w, newTestRequest("gitlab", "Push Hook", "", `{}`))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"error": {"success": false, "message": "unknown event Push Hook"}}`, w.Body.String())
}

func TestClient_HTTPHandler_unknownEventTypeLabel(t *testing.T) {
	client := NewClient(hookCommon.DefaultNotifierConfig(), nil, nil)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		client.HTTPHandler(w, newTestRequest("gitlab", fmt.Sprintf("made-up-header-%d", i), "", `{}`))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	require.NotContains(t, body, "made-up-header")
	require.Contains(t, body, `rocketchat_webhooks_events_total{event_type="unknown",outcome="unknown",provider="gitlab"}`)
}

func TestClient_HTTPHandler_forward(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		_, err := w.Write([]byte(`{"success": true}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	sendRequestTo, err := url.Parse(server.URL + "/hooks/abc")
	require.NoError(t, err)
	config.SendRequestToURL = sendRequestTo
	t.Cleanup(func() {
		config.SendRequestToURL = nil
		config.LogOnlyMode = false
	})

	client := NewClient(hookCommon.DefaultNotifierConfig(), nil, nil)

	t.Log("Log only - nothing is sent")
	{
		config.LogOnlyMode = true
		w := httptest.NewRecorder()
		client.HTTPHandler(w, newTestRequest("gitlab", "Tag Push Hook", "", sampleTagPushData))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, 0, callCount)
	}

	t.Log("Forwarded once")
	{
		config.LogOnlyMode = false
		w := httptest.NewRecorder()
		client.HTTPHandler(w, newTestRequest("gitlab", "Tag Push Hook", "", sampleTagPushData))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, 1, callCount)
	}

	t.Log("Suppressed events are not forwarded")
	{
		w := httptest.NewRecorder()
		client.HTTPHandler(w, newTestRequest("gitlab", "Note Hook", "", `{"user": {"username": "publicbotatfluid"}}`))
		require.Equal(t, http.StatusNoContent, w.Code)
		require.Equal(t, 1, callCount)
	}
}
