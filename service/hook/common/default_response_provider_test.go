package common

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultResponseProvider_TransformResponse(t *testing.T) {
	provider := DefaultResponseProvider{}

	t.Log("Nothing to send")
	{
		resp := provider.TransformResponse(DispatchResultModel{EventType: "Note Hook", Outcome: OutcomeSuppressed})
		require.Equal(t, TransformResponseModel{HTTPStatusCode: http.StatusNoContent}, resp)
	}

	t.Log("Message")
	{
		response := &ResponseModel{Content: &MessageModel{Text: "hi"}}
		resp := provider.TransformResponse(DispatchResultModel{Outcome: OutcomeNotified, Response: response})
		require.Equal(t, TransformResponseModel{Data: response, HTTPStatusCode: http.StatusOK}, resp)
	}

	t.Log("Error-shaped response")
	{
		response := &ResponseModel{Error: &ErrorModel{Message: "unknown event Push Hook"}}
		resp := provider.TransformResponse(DispatchResultModel{Outcome: OutcomeIgnored, Response: response})
		require.Equal(t, http.StatusOK, resp.HTTPStatusCode)
		require.Equal(t, response, resp.Data)
	}
}

func TestDefaultResponseProvider_TransformErrorMessageResponse(t *testing.T) {
	resp := DefaultResponseProvider{}.TransformErrorMessageResponse("No service-id defined")
	require.Equal(t, TransformResponseModel{
		Data:           SingleErrorRespModel{Error: "No service-id defined"},
		HTTPStatusCode: http.StatusBadRequest,
	}, resp)
}
