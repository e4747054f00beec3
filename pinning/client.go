package pinning

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"art-critique-service/conf"

	"github.com/imroc/req"
	"github.com/tidwall/gjson"
)

// Client content pinning service client. Submits binary files and receives
// the content identifier they are addressed by.
type Client struct {
	endpoint      string
	apiKey        string
	gatewayPrefix string
}

// NewClient create pinning client from global config
func NewClient() *Client {
	return &Client{
		endpoint:      conf.Cfg.Pinning.Endpoint,
		apiKey:        conf.Cfg.Pinning.ApiKey,
		gatewayPrefix: conf.Cfg.Pinning.GatewayPrefix,
	}
}

// NewClientWithConfig create pinning client with explicit settings (tests, CLI)
func NewClientWithConfig(endpoint, apiKey, gatewayPrefix string) *Client {
	return &Client{
		endpoint:      endpoint,
		apiKey:        apiKey,
		gatewayPrefix: gatewayPrefix,
	}
}

// PinFile upload a file and return its content identifier.
// Metadata is attached as a JSON form field next to the multipart file part.
func (c *Client) PinFile(fileName string, content io.Reader, metadata map[string]string) (string, error) {
	header := req.Header{}
	if c.apiKey != "" {
		header["Authorization"] = "Bearer " + c.apiKey
	}

	upload := req.FileUpload{
		FieldName: "file",
		FileName:  fileName,
		File:      io.NopCloser(content),
	}

	param := req.Param{}
	if len(metadata) > 0 {
		metaJSON, err := json.Marshal(metadata)
		if err != nil {
			return "", fmt.Errorf("failed to marshal pin metadata: %w", err)
		}
		param["metadata"] = string(metaJSON)
	}

	resp, err := req.Post(c.endpoint, header, upload, param)
	if err != nil {
		return "", fmt.Errorf("pinning service unreachable: %w", err)
	}

	raw := resp.Bytes()
	status := resp.Response().StatusCode
	if status < 200 || status >= 300 {
		reason := gjson.GetBytes(raw, "error").String()
		if reason == "" {
			reason = fmt.Sprintf("status %d", status)
		}
		return "", fmt.Errorf("pinning service rejected upload: %s", reason)
	}

	cid := gjson.GetBytes(raw, "cid").String()
	if cid == "" {
		// Pinata-compatible services answer with IpfsHash
		cid = gjson.GetBytes(raw, "IpfsHash").String()
	}
	if cid == "" {
		return "", errors.New("pinning service returned no content identifier")
	}

	return cid, nil
}

// GatewayURL build the rendered asset URL: gateway prefix + content identifier
func (c *Client) GatewayURL(cid string) string {
	return c.gatewayPrefix + cid
}
