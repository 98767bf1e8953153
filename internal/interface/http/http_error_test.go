package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/nutrition-recommender/pkg/errors"
)

func TestAsHTTPError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"bind error", badRequest(errors.New("unexpected EOF")), http.StatusBadRequest, codeInvalidRequest},
		{"invalid profile", apperrors.Wrap(apperrors.CodeInvalidProfile, "ageYears must be at least 10, got 3", nil), http.StatusBadRequest, apperrors.CodeInvalidProfile},
		{"wrapped dataset error", fmt.Errorf("startup: %w", apperrors.Wrap(apperrors.CodeDatasetUnavailable, "food table unavailable", nil)), http.StatusServiceUnavailable, apperrors.CodeDatasetUnavailable},
		{"unmapped app code", apperrors.Wrap("something_new", "odd", nil), http.StatusInternalServerError, codeInternal},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, codeInternal},
	}
	for _, tc := range cases {
		got := asHTTPError(tc.err)
		require.Equal(t, tc.status, got.Status, tc.name)
		require.Equal(t, tc.code, got.Code, tc.name)
		require.ErrorIs(t, got, tc.err, tc.name)
	}
}

func TestAsHTTPErrorKeepsDomainMessage(t *testing.T) {
	got := asHTTPError(apperrors.Wrap(apperrors.CodeInvalidInput, "topK must be at most 100", nil))
	require.Equal(t, "topK must be at most 100", got.Message)

	got = asHTTPError(errors.New("connection reset"))
	require.Equal(t, "something went wrong", got.Message)
}
