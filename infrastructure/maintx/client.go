// Package maintx is the HTTP client for the MaintainX REST API. It fetches a
// single part or location record and normalizes it into label content.
package maintx

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prasetyowira/mxlabel/constant"
	"github.com/prasetyowira/mxlabel/domain/label"
	appLogger "github.com/prasetyowira/mxlabel/infrastructure/logger"
)

// DefaultBaseURL is the production MaintainX API root.
const DefaultBaseURL = "https://api.getmaintainx.com/v1"

// DefaultTimeout bounds one upstream request end to end. Requests are never
// retried.
const DefaultTimeout = 15 * time.Second

// maxErrorBody caps how much of an unstructured upstream error body is
// carried into an UpstreamError message.
const maxErrorBody = 512

// Config carries the credentials and connection settings for the client.
type Config struct {
	BaseURL     string
	BearerToken string
	APIKey      string
	Timeout     time.Duration

	// CodeValueBase64 marks the upstream barcode field as base64 encoded;
	// the decoded bytes become the code value.
	CodeValueBase64 bool
}

// Client issues record lookups against the MaintainX API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a MaintainX client, filling in base URL and timeout
// defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// recordPayload is the subset of an upstream record a label needs.
type recordPayload struct {
	Name    string  `json:"name"`
	Barcode *string `json:"barcode"`
}

// errorPayload is the structured error body MaintainX returns on failures.
type errorPayload struct {
	Message string `json:"message"`
}

// FetchRecord GETs the record ref points at and returns its normalized label
// content. Network failures and non-2xx statuses surface as
// *label.UpstreamError; an unparseable success body wraps
// label.ErrMalformedResponse.
func (c *Client) FetchRecord(ctx context.Context, ref label.ResourceReference) (label.Record, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.cfg.BaseURL, "/"), ref.Kind.PathSegment(), ref.ID)

	appLogger.CtxDebug(ctx, "Fetching record", appLogger.LoggerInfo{
		ContextFunction: constant.CtxFetchRecord,
		Data: map[string]interface{}{
			constant.DataEndpoint:   endpoint,
			constant.DataKind:       string(ref.Kind),
			constant.DataResourceID: ref.ID,
		},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return label.Record{}, &label.UpstreamError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.BearerToken)
	req.Header.Set("X-Api-Key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		appLogger.CtxError(ctx, "Upstream request failed", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFetchRecord,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeMXRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeUpstream,
			},
			Data: map[string]interface{}{
				constant.DataEndpoint: endpoint,
			},
		})
		return label.Record{}, &label.UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return label.Record{}, &label.UpstreamError{StatusCode: resp.StatusCode, Message: "reading response body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := upstreamMessage(body)
		appLogger.CtxWarn(ctx, "Upstream returned error status", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFetchRecord,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeMXStatus,
				Message: msg,
				Type:    constant.ErrTypeUpstream,
			},
			Data: map[string]interface{}{
				constant.DataEndpoint:   endpoint,
				constant.DataStatusCode: resp.StatusCode,
			},
		})
		return label.Record{}, &label.UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}

	var envelope map[string]recordPayload
	if err := json.Unmarshal(body, &envelope); err != nil {
		appLogger.CtxError(ctx, "Failed to decode upstream response", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFetchRecord,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeMXDecode,
				Message: err.Error(),
				Type:    constant.ErrTypeUpstream,
			},
			Data: map[string]interface{}{
				constant.DataEndpoint: endpoint,
			},
		})
		return label.Record{}, fmt.Errorf("%w: %v", label.ErrMalformedResponse, err)
	}
	payload := envelope[ref.Kind.ResponseKey()]

	codeValue := ""
	if payload.Barcode != nil {
		codeValue = *payload.Barcode
	}
	if c.cfg.CodeValueBase64 && codeValue != "" {
		decoded, err := base64.StdEncoding.DecodeString(codeValue)
		if err != nil {
			return label.Record{}, fmt.Errorf("%w: barcode field is not valid base64: %v", label.ErrMalformedResponse, err)
		}
		codeValue = string(decoded)
	}

	record := label.NewRecord(ref, payload.Name, codeValue)

	appLogger.CtxInfo(ctx, "Record fetched", appLogger.LoggerInfo{
		ContextFunction: constant.CtxFetchRecord,
		Data: map[string]interface{}{
			constant.DataKind:       string(ref.Kind),
			constant.DataResourceID: ref.ID,
			constant.DataName:       record.Name,
		},
	})

	return record, nil
}

// upstreamMessage extracts the structured message from an error body, falling
// back to the raw text, truncated.
func upstreamMessage(body []byte) string {
	var ep errorPayload
	if err := json.Unmarshal(body, &ep); err == nil && ep.Message != "" {
		return ep.Message
	}

	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	return text
}
