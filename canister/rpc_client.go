package canister

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// RPCRequest RPC request structure
type RPCRequest struct {
	Jsonrpc string        `json:"jsonrpc"`
	ID      string        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// Client JSON-RPC client for the artwork canister
type Client struct {
	url         string
	accessToken string
	httpClient  *http.Client
}

// NewClientNode create canister RPC client
func NewClientNode(url, accessToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:         url,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BasicAuth build a basic auth token from username and password
func BasicAuth(username, password string) string {
	if username == "" && password == "" {
		return ""
	}
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

// Call issue an RPC call and return the result field.
// A populated error field in the response becomes a *RemoteError carrying the
// canister-supplied reason verbatim.
func (c *Client) Call(method string, params []interface{}) (*gjson.Result, error) {
	if params == nil {
		params = []interface{}{}
	}

	request := RPCRequest{
		Jsonrpc: "1.0",
		ID:      method,
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rpc request: %w", err)
	}

	req, err := http.NewRequest("POST", c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Basic "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("canister unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rpc response: %w", err)
	}

	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("invalid rpc response: status %d", resp.StatusCode)
	}

	parsed := gjson.ParseBytes(raw)
	if errField := parsed.Get("error"); errField.Exists() && errField.Type != gjson.Null {
		return nil, &RemoteError{
			Code:   int(errField.Get("code").Int()),
			Reason: errField.Get("message").String(),
		}
	}

	// No error field: any non-2xx status (auth failure, proxy error page) is
	// still a failed call, never an empty success
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("rpc call failed: status %d", resp.StatusCode)
	}

	result := parsed.Get("result")
	return &result, nil
}
