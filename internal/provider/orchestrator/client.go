package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yassirk/tijari-assist/internal/assist"
)

type envelope struct {
	Success bool                  `json:"success"`
	Data    *assist.BackendResult `json:"data,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// Client talks to the internal orchestration backend.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates an orchestrator client with a bounded request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Chat calls the backend's chat operation with the caller's session token.
// Transport failures, timeouts and 5xx responses come back as
// BackendUnavailable; every other failure is BackendLogic.
func (c *Client) Chat(ctx context.Context, token string, req assist.BackendRequest) (assist.BackendResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return assist.BackendResult{}, assist.NewError(assist.KindBackendLogic, "orchestrator_marshal", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orchestrator/chat", bytes.NewReader(body))
	if err != nil {
		return assist.BackendResult{}, assist.NewError(assist.KindBackendLogic, "orchestrator_request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return assist.BackendResult{}, assist.NewError(assist.KindBackendUnavailable, "orchestrator_transport", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return assist.BackendResult{}, assist.NewError(assist.KindBackendUnavailable, "orchestrator_server_error",
			fmt.Errorf("orchestrator status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return assist.BackendResult{}, assist.NewError(assist.KindBackendLogic, "orchestrator_rejected",
			fmt.Errorf("orchestrator status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return assist.BackendResult{}, assist.NewError(assist.KindBackendUnavailable, "orchestrator_read", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return assist.BackendResult{}, assist.NewError(assist.KindBackendLogic, "orchestrator_decode", err)
	}
	if !env.Success {
		return assist.BackendResult{}, assist.NewError(assist.KindBackendLogic, "orchestrator_failure",
			fmt.Errorf("orchestrator reported: %s", env.Error))
	}
	if env.Data == nil {
		return assist.BackendResult{}, assist.NewError(assist.KindBackendLogic, "orchestrator_empty_data",
			fmt.Errorf("success envelope without data"))
	}
	return *env.Data, nil
}
