package sls

import (
	stderrors "errors"
	"fmt"
)

// ErrRequestTimeout reports that the bounded wall-clock deadline for a single
// request elapsed before the exchange completed. Match it with errors.Is.
var ErrRequestTimeout = stderrors.New("sls: request timed out")

// Error is an error reported by the service in a JSON response body. It carries
// the service error code, the human-readable message, and the server-assigned
// request id when the response included one.
type Error struct {
	Code       string
	Message    string
	RequestID  string
	HTTPStatus int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("sls: %s: %s (request id %s)", e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("sls: %s: %s", e.Code, e.Message)
}

// errorEnvelope matches the two error body shapes the service produces.
type errorEnvelope struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
	Detail       *struct {
		Code      string `json:"Code"`
		Message   string `json:"Message"`
		RequestID string `json:"RequestId"`
	} `json:"Error"`
}

// serviceError maps a JSON response body to a typed service error. It returns
// nil when the body does not carry either of the known error envelopes.
func serviceError(httpStatus int, requestID string, body []byte) *Error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	if env.ErrorCode != "" || env.ErrorMessage != "" {
		return &Error{
			Code:       env.ErrorCode,
			Message:    env.ErrorMessage,
			RequestID:  requestID,
			HTTPStatus: httpStatus,
		}
	}
	if env.Detail != nil {
		return &Error{
			Code:       env.Detail.Code,
			Message:    env.Detail.Message,
			RequestID:  env.Detail.RequestID,
			HTTPStatus: httpStatus,
		}
	}
	return nil
}
