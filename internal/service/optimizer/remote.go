package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const optimizePath = "/ai/staff/optimize-schedule"

// RemoteStrategy delegates to the optimization backend. Any failure, network,
// timeout or non-200, is returned as an error for the fallback composition to
// consume; it is never surfaced to the end caller directly.
type RemoteStrategy struct {
	baseURL string
	client  *http.Client
}

func NewRemoteStrategy(baseURL string, timeout time.Duration) *RemoteStrategy {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemoteStrategy{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

type optimizeRequest struct {
	StaffData        []StaffProfile     `json:"staff_data"`
	ShiftData        []ShiftRequirement `json:"shift_data"`
	Constraints      Constraints        `json:"constraints"`
	OptimizationType string             `json:"optimization_type"`
}

func (r *RemoteStrategy) Optimize(ctx context.Context, input OptimizeInput) (OptimizeResult, error) {
	body, err := json.Marshal(optimizeRequest{
		StaffData:        input.Staff,
		ShiftData:        input.Shifts,
		Constraints:      input.Constraints,
		OptimizationType: "balanced",
	})
	if err != nil {
		return OptimizeResult{}, fmt.Errorf("failed to encode optimize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+optimizePath, bytes.NewReader(body))
	if err != nil {
		return OptimizeResult{}, fmt.Errorf("failed to build optimize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return OptimizeResult{}, fmt.Errorf("optimizer backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return OptimizeResult{}, fmt.Errorf("optimizer backend returned status %d", resp.StatusCode)
	}

	var result OptimizeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return OptimizeResult{}, fmt.Errorf("failed to decode optimize response: %w", err)
	}
	return result, nil
}
