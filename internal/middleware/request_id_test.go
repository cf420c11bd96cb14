package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWithRequestID(t *testing.T, inbound string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if inbound != "" {
		req.Header.Set(requestIDHeader, inbound)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequestID_PropagatesInboundID(t *testing.T) {
	rec := serveWithRequestID(t, "trace-123")
	assert.Equal(t, "trace-123", rec.Header().Get(requestIDHeader))
}

func TestRequestID_MintsWhenAbsent(t *testing.T) {
	rec := serveWithRequestID(t, "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRequestID_ReplacesOversizedID(t *testing.T) {
	inbound := strings.Repeat("x", maxRequestIDLength+1)
	rec := serveWithRequestID(t, inbound)

	got := rec.Header().Get(requestIDHeader)
	require.NotEmpty(t, got)
	assert.NotEqual(t, inbound, got)
	assert.LessOrEqual(t, len(got), maxRequestIDLength)
}
