package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/edusync/academia-api/pkg/config"
	appErrors "github.com/edusync/academia-api/pkg/errors"
)

// OptimizerService forwards schedule generation requests to the
// external solver and relays its answer verbatim. Payloads are opaque
// here; the solver owns their shape.
type OptimizerService struct {
	client *http.Client
	url    string
	logger *zap.Logger
}

// NewOptimizerService constructs an OptimizerService. The client
// timeout covers the full solver run, which can take minutes.
func NewOptimizerService(cfg config.OptimizerConfig, logger *zap.Logger) *OptimizerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OptimizerService{
		client: &http.Client{Timeout: cfg.Timeout},
		url:    cfg.URL,
		logger: logger,
	}
}

// Generate posts the raw request body to the solver and returns its
// raw response body. Any transport failure or non-2xx answer surfaces
// as a bad gateway.
func (s *OptimizerService) Generate(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build optimizer request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("optimizer request failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrBadGateway.Code, appErrors.ErrBadGateway.Status, "Error connecting to optimizer service")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Error("optimizer response read failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrBadGateway.Code, appErrors.ErrBadGateway.Status, "Error connecting to optimizer service")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		s.logger.Error("optimizer returned error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, appErrors.Clone(appErrors.ErrBadGateway, "Error connecting to optimizer service")
	}

	return json.RawMessage(body), nil
}
