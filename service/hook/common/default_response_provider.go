package common

import "net/http"

// DefaultResponseProvider ...
type DefaultResponseProvider struct {
}

// SingleErrorRespModel ...
type SingleErrorRespModel struct {
	Error string `json:"error"`
}

// TransformResponse ...
func (hp DefaultResponseProvider) TransformResponse(input DispatchResultModel) TransformResponseModel {
	if input.Response == nil {
		// nothing to send
		return TransformResponseModel{HTTPStatusCode: http.StatusNoContent}
	}

	return TransformResponseModel{
		Data:           input.Response,
		HTTPStatusCode: http.StatusOK,
	}
}

// TransformErrorMessageResponse ...
func (hp DefaultResponseProvider) TransformErrorMessageResponse(errMsg string) TransformResponseModel {
	return TransformResponseModel{
		Data:           SingleErrorRespModel{Error: errMsg},
		HTTPStatusCode: http.StatusBadRequest,
	}
}
