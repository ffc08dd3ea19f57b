package classifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/amankumarsingh77/cube-phase-detector/internal/config"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
)

// Load registers the weights archive with the model server (when a management
// endpoint is configured), checks the inference endpoint is up and returns a
// classifier that is safe to share between requests.
func Load(ctx context.Context, cfg *config.Config, client *http.Client, log logger.Logger) (*Serialized, error) {
	remote := NewRemote(cfg, client, log)

	if cfg.Model.ManagementEndpoint != "" && cfg.Model.WeightsPath != "" {
		if err := register(ctx, remote.client, cfg); err != nil {
			return nil, err
		}
		log.Infof("Load - registered %s from %s", cfg.Model.Name, cfg.Model.WeightsPath)
	}

	if err := ping(ctx, remote.client, cfg.Model.InferenceEndpoint); err != nil {
		return nil, err
	}
	log.Infof("Load - model %s ready at %s", cfg.Model.Name, cfg.Model.InferenceEndpoint)
	return NewSerialized(remote), nil
}

func register(ctx context.Context, client *http.Client, cfg *config.Config) error {
	q := url.Values{}
	q.Set("url", cfg.Model.WeightsPath)
	q.Set("model_name", cfg.Model.Name)
	q.Set("initial_workers", "1")
	q.Set("synchronous", "true")
	endpoint := strings.TrimRight(cfg.Model.ManagementEndpoint, "/") + "/models?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build register request: %w", err)
	}
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to register model: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusConflict:
		return nil
	default:
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("failed to register model: status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}
}

func ping(ctx context.Context, client *http.Client, inferenceEndpoint string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(inferenceEndpoint, "/")+"/ping", nil)
	if err != nil {
		return fmt.Errorf("failed to build ping request: %w", err)
	}
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("model server unreachable: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("model server unhealthy: status %d", res.StatusCode)
	}
	return nil
}
