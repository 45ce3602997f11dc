package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokebinder/pokebinder-backend/pkg/ctxutil"
)

func TestRequestID_ReusesIncomingHeader(t *testing.T) {
	t.Parallel()

	incoming := uuid.New().String()

	var seen string
	wrapped := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/collection/stats", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, incoming, seen, "context should carry the caller's ID")
	assert.Equal(t, incoming, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	t.Parallel()

	var seen string
	wrapped := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sets", nil))

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err, "generated ID should be a UUID")
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader), "response echoes the generated ID")
}
