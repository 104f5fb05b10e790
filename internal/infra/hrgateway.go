package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// LeaveSubmission is posted to the external HR gateway when an employee
// submits a leave request. The gateway owns the approval workflow; this
// service only reports the submission.
type LeaveSubmission struct {
	RequestID       string   `json:"request_id"`
	EmployeeID      string   `json:"employee_id"`
	LeaveType       string   `json:"leave_type"`
	ShiftType       string   `json:"shift_type"`
	Dates           []string `json:"dates"`
	ConsumedDays    string   `json:"consumed_days"`
	Reason          string   `json:"reason"`
	ExceededBalance bool     `json:"exceeded_balance"`
}

// HRGatewayClient notifies the external HR backend of leave submissions.
// All calls run through a circuit breaker so a downed gateway fast-fails
// instead of tying up worker goroutines.
type HRGatewayClient struct {
	baseURL    string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewHRGatewayClient(baseURL string, cb *CircuitBreaker) *HRGatewayClient {
	return &HRGatewayClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cb:         cb,
	}
}

// CB exposes the breaker for health reporting.
func (c *HRGatewayClient) CB() *CircuitBreaker { return c.cb }

// NotifyLeaveSubmitted POSTs the submission to the gateway.
func (c *HRGatewayClient) NotifyLeaveSubmitted(ctx context.Context, sub LeaveSubmission) error {
	return c.cb.Execute(func() error {
		body, err := json.Marshal(sub)
		if err != nil {
			return fmt.Errorf("hrgateway: marshal submission: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/leave-requests", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("hrgateway: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("hrgateway: unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			return fmt.Errorf("hrgateway: returned %d", resp.StatusCode)
		}
		return nil
	})
}
