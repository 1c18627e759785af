package chatapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	hookCommon "github.com/fluidattacks/rocketchat-webhooks/service/hook/common"
	"github.com/stretchr/testify/require"
)

func TestPostMessage(t *testing.T) {
	msg := hookCommon.MessageModel{
		Channel:  "#dev",
		Username: "gitlab/product",
		Attachments: []hookCommon.AttachmentModel{
			{Text: "pushed tag [v1.0.0 82b3d5ae](https://gitlab.com/product/tags/v1.0.0)", Color: "#6498CC"},
		},
	}

	t.Log("Sent once, success")
	{
		callCount := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callCount++
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			var received hookCommon.MessageModel
			require.NoError(t, json.Unmarshal(body, &received))
			require.Equal(t, msg, received)

			_, err = w.Write([]byte(`{"success": true}`))
			require.NoError(t, err)
		}))
		defer server.Close()

		u, err := url.Parse(server.URL + "/hooks/abc")
		require.NoError(t, err)

		resp, isSuccess, err := PostMessage(u, msg, false)
		require.NoError(t, err)
		require.True(t, isSuccess)
		require.Equal(t, PostMessageResponseModel{Success: true}, resp)
		require.Equal(t, 1, callCount)
	}

	t.Log("Rejected, no retry")
	{
		callCount := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callCount++
			w.WriteHeader(http.StatusBadRequest)
			_, err := w.Write([]byte(`{"success": false, "error": "invalid-channel"}`))
			require.NoError(t, err)
		}))
		defer server.Close()

		u, err := url.Parse(server.URL)
		require.NoError(t, err)

		resp, isSuccess, err := PostMessage(u, msg, false)
		require.NoError(t, err)
		require.False(t, isSuccess)
		require.Equal(t, "invalid-channel", resp.Error)
		require.Equal(t, 1, callCount)
	}

	t.Log("Not JSON response")
	{
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := w.Write([]byte(`<html>`))
			require.NoError(t, err)
		}))
		defer server.Close()

		u, err := url.Parse(server.URL)
		require.NoError(t, err)

		_, isSuccess, err := PostMessage(u, msg, false)
		require.EqualError(t, err, "PostMessage: request sent, but failed to parse response (http-code:200): <html>")
		require.False(t, isSuccess)
	}

	t.Log("Only log")
	{
		u, err := url.Parse("http://localhost:1/never-called")
		require.NoError(t, err)

		resp, isSuccess, err := PostMessage(u, msg, true)
		require.NoError(t, err)
		require.True(t, isSuccess)
		require.True(t, resp.Success)
	}
}
