package signal

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// HTTPVectorIndex probes a vector-index service over HTTP.
// It implements VectorSource for deployments where the index runs as
// a separate service with a health endpoint.
type HTTPVectorIndex struct {
	baseURL string
	client  *http.Client
	retry   RetryPolicy
}

func NewHTTPVectorIndex(baseURL string, timeout time.Duration) *HTTPVectorIndex {
	return &HTTPVectorIndex{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		retry:   DefaultProbeRetry(),
	}
}

// Ping checks the index health endpoint, allowing one quick retry.
func (v *HTTPVectorIndex) Ping(ctx context.Context) error {
	return Retry(ctx, v.retry, func() error {
		req, err := http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			v.baseURL+"/healthz",
			nil,
		)
		if err != nil {
			return err
		}

		resp, err := v.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("vector index returned %s", resp.Status)
		}
		return nil
	})
}
