package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/nutrition-recommender/pkg/errors"
)

const (
	codeInvalidRequest = "invalid_request"
	codeRateLimited    = "rate_limit_exceeded"
	codeInternal       = "internal_error"
)

// statusByCode maps domain error codes onto HTTP statuses.
var statusByCode = map[string]int{
	apperrors.CodeInvalidProfile:     http.StatusBadRequest,
	apperrors.CodeInvalidInput:       http.StatusBadRequest,
	apperrors.CodeDatasetUnavailable: http.StatusServiceUnavailable,
}

// HTTPError is an error already resolved to a status and public code.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// errorEnvelope is the body of every failed response.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func badRequest(err error) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Code: codeInvalidRequest, Message: err.Error(), Err: err}
}

// asHTTPError resolves transport errors, domain AppErrors and anything else.
// Unknown errors become a 500 without leaking their text.
func asHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if status, ok := statusByCode[appErr.Code]; ok {
			return &HTTPError{Status: status, Code: appErr.Code, Message: appErr.Error(), Err: err}
		}
	}
	return &HTTPError{Status: http.StatusInternalServerError, Code: codeInternal, Message: "something went wrong", Err: err}
}

// abortWithError records err for errorHandlingMiddleware and stops the chain.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
