package sidecar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/vimix/vimix-desktop/internal/constants"
	"github.com/vimix/vimix-desktop/internal/logging"
)

// WaitReady polls the worker's health endpoint until it answers 200 or
// ctx expires. The worker serves GET /health once its API is bound.
//
// Readiness is a startup convenience for the UI layer; a probe timeout
// is reported to the caller but is not a launcher-fatal condition.
func WaitReady(ctx context.Context, port uint16, logger *logging.Logger) error {
	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Timeout: 2 * time.Second}
	client.RetryMax = int(constants.ReadyProbeTimeout / constants.ReadyProbeInterval)
	client.RetryWaitMin = constants.ReadyProbeInterval
	client.RetryWaitMax = constants.ReadyProbeMaxInterval
	client.Logger = nil // Probe failures before startup are expected noise

	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build readiness request: %w", err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("worker did not become ready on port %d: %w", port, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("worker health endpoint returned status %d", resp.StatusCode)
	}

	logger.Info().
		Uint16("port", port).
		Dur("elapsed", time.Since(start)).
		Msg("Worker API ready")
	return nil
}
