package classifier

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amankumarsingh77/cube-phase-detector/internal/config"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	HeaderTensorShape = "X-Tensor-Shape"

	defaultTimeout          = 30 * time.Second
	defaultBreakerFailures  = 5
	defaultBreakerOpenDelay = 30 * time.Second
)

type predictionResponse struct {
	Logits []float64 `json:"logits"`
}

// Remote calls a model server's prediction endpoint.
type Remote struct {
	client    *http.Client
	predict   string
	breaker   *gobreaker.CircuitBreaker[int]
	logger    logger.Logger
	modelName string
}

func NewRemote(cfg *config.Config, client *http.Client, log logger.Logger) *Remote {
	if client == nil {
		timeout := defaultTimeout
		if cfg.Model.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.Model.TimeoutSeconds) * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	failures := uint32(defaultBreakerFailures)
	if cfg.Model.BreakerFailures > 0 {
		failures = uint32(cfg.Model.BreakerFailures)
	}
	openDelay := defaultBreakerOpenDelay
	if cfg.Model.BreakerTimeoutSeconds > 0 {
		openDelay = time.Duration(cfg.Model.BreakerTimeoutSeconds) * time.Second
	}

	r := &Remote{
		client:    client,
		predict:   strings.TrimRight(cfg.Model.InferenceEndpoint, "/") + "/predictions/" + url.PathEscape(cfg.Model.Name),
		logger:    log,
		modelName: cfg.Model.Name,
	}
	r.breaker = gobreaker.NewCircuitBreaker[int](gobreaker.Settings{
		Name:    "model-server",
		Timeout: openDelay,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			// a cancelled request says nothing about the model server
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("Remote - circuit %s changed from %s to %s", name, from, to)
		},
	})
	return r
}

func (r *Remote) Classify(ctx context.Context, tensor *Tensor) (int, error) {
	if err := tensor.Validate(); err != nil {
		return 0, err
	}
	label, err := r.breaker.Execute(func() (int, error) {
		return r.predictOnce(ctx, tensor)
	})
	if err != nil {
		return 0, fmt.Errorf("classify with %s: %w", r.modelName, err)
	}
	return label, nil
}

func (r *Remote) predictOnce(ctx context.Context, tensor *Tensor) (int, error) {
	body := new(bytes.Buffer)
	body.Grow(len(tensor.Data) * 4)
	if err := binary.Write(body, binary.LittleEndian, tensor.Data); err != nil {
		return 0, fmt.Errorf("failed to encode tensor: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.predict, body)
	if err != nil {
		return 0, fmt.Errorf("failed to build prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set(HeaderTensorShape, fmt.Sprintf("1,%d,%d,%d,%d", tensor.Channels, tensor.Frames, tensor.Height, tensor.Width))

	res, err := r.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("failed to reach model server: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return 0, fmt.Errorf("model server returned %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var pred predictionResponse
	if err = json.NewDecoder(res.Body).Decode(&pred); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return 0, fmt.Errorf("failed to decode prediction: %w", err)
	}
	return Argmax(pred.Logits)
}

// Argmax returns the index of the largest logit; ties go to the lowest index.
func Argmax(logits []float64) (int, error) {
	if len(logits) == 0 {
		return 0, fmt.Errorf("empty logits")
	}
	best := 0
	for i, v := range logits[1:] {
		if v > logits[best] {
			best = i + 1
		}
	}
	return best, nil
}
