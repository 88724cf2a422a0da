// cmd/worker-manager/main_test.go
package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"ai-web-explorer/internal/common/config"
	"ai-web-explorer/pkg/registry"
)

type brokenWriter struct {
	header http.Header
	code   int
}

func (w *brokenWriter) Header() http.Header       { return w.header }
func (w *brokenWriter) WriteHeader(code int)      { w.code = code }
func (w *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func createTestActivities() *registry.ActivityRegistry {
	reg := registry.New("1.0.0")
	reg.Add(registry.Activity{ID: "ai-conversation.web-search", TaskType: "web-search", Enabled: true})
	return reg
}

func TestServer_Activities(t *testing.T) {
	server := newServer(config.MetricsConfig{Address: ":0"}, nil, createTestActivities(), zap.NewNop())

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/activities", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var decoded registry.ActivityRegistry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	require.Len(t, decoded.Activities, 1)
	assert.Equal(t, "web-search", decoded.Activities[0].TaskType)
}

func TestServer_ActivitiesWriteFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	server := newServer(config.MetricsConfig{Address: ":0"}, nil, createTestActivities(), zap.New(core))

	w := &brokenWriter{header: http.Header{}}
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/activities", nil))

	entries := logs.FilterMessage("Failed to write activities").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "connection reset", entries[0].ContextMap()["error"])
}

func TestServer_Health(t *testing.T) {
	server := newServer(config.MetricsConfig{Address: ":0"}, nil, createTestActivities(), zap.NewNop())

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}
