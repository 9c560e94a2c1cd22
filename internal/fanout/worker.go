package fanout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hostly/mirrorbox/internal/entities"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// WorkerRequest is the payload sent to the delegated-upload worker,
// the external process that speaks the provider protocols.
type WorkerRequest struct {
	JobID         string                `json:"jobId"`
	FileID        string                `json:"fileId"`
	FileURL       string                `json:"fileUrl"`
	Filename      string                `json:"filename"`
	Size          int64                 `json:"size"`
	Service       string                `json:"service"`
	ServiceConfig entities.MirrorConfig `json:"serviceConfig"`
}

// WorkerResponse carries an explicit success flag distinct from the
// HTTP status: success=false is a terminal, non-retryable failure.
type WorkerResponse struct {
	Success     bool                   `json:"success"`
	DownloadURL string                 `json:"downloadUrl,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	ExpiresAt   *time.Time             `json:"expiresAt,omitempty"`
}

type WorkerClient struct {
	logger  *zap.SugaredLogger
	baseURL string
	httpc   *http.Client
}

func NewWorkerClient(logger *zap.SugaredLogger, baseURL string) *WorkerClient {
	return &WorkerClient{
		logger:  logger,
		baseURL: baseURL,
		httpc:   &http.Client{},
	}
}

// Mirror posts one delegated-upload request. Timeouts and non-2xx
// statuses come back as errors; the caller treats them as retryable.
func (c *WorkerClient) Mirror(ctx context.Context, inp *WorkerRequest) (*WorkerResponse, error) {

	body, err := json.Marshal(inp)
	if err != nil {
		return nil, errors.Wrap(err, "WorkerClient.Mirror.Marshal")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mirror", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "WorkerClient.Mirror.NewRequest")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "WorkerClient.Mirror.Do")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("worker responded with status %d", resp.StatusCode)
	}

	var out WorkerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "WorkerClient.Mirror.Decode")
	}

	return &out, nil
}
