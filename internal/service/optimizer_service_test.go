package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edusync/academia-api/pkg/config"
	appErrors "github.com/edusync/academia-api/pkg/errors"
)

func TestOptimizerServiceGenerateForwardsPayload(t *testing.T) {
	var received []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		received = body
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"schedules":[]}`))
	}))
	defer server.Close()

	svc := NewOptimizerService(config.OptimizerConfig{URL: server.URL, Timeout: 5 * time.Second}, zap.NewNop())

	result, err := svc.Generate(context.Background(), json.RawMessage(`{"subjects":[]}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"schedules":[]}`, string(result))
	assert.JSONEq(t, `{"subjects":[]}`, string(received))
}

func TestOptimizerServiceGenerateUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "solver exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewOptimizerService(config.OptimizerConfig{URL: server.URL, Timeout: 5 * time.Second}, zap.NewNop())

	_, err := svc.Generate(context.Background(), json.RawMessage(`{}`))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrBadGateway.Code, appErr.Code)
	assert.Equal(t, 502, appErr.Status)
	assert.Equal(t, "Error connecting to optimizer service", appErr.Message)
}

func TestOptimizerServiceGenerateUnreachable(t *testing.T) {
	svc := NewOptimizerService(config.OptimizerConfig{URL: "http://127.0.0.1:1", Timeout: time.Second}, zap.NewNop())

	_, err := svc.Generate(context.Background(), json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBadGateway.Code, appErrors.FromError(err).Code)
}
