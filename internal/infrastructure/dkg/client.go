package dkg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/CosmiCloud/othub-processor/internal/domain"
)

// Node-side retry knobs, passed through on every call the way the original
// publisher configured its DKG clients.
const (
	maxRetries  = 30
	frequency   = 2
	contentType = "all"
)

type HTTPNodeClient struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPNodeClient(hostname, port string, useSSL bool) *HTTPNodeClient {
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return &HTTPNodeClient{
		BaseURL: fmt.Sprintf("%s://%s:%s", scheme, hostname, port),
		Client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

type blockchainOptions struct {
	Name                string `json:"name"`
	PublicKey           string `json:"publicKey"`
	PrivateKey          string `json:"privateKey"`
	HandleNotMinedError bool   `json:"handleNotMinedError"`
}

type callOptions struct {
	Environment string            `json:"environment"`
	EpochsNum   int               `json:"epochsNum"`
	MaxRetries  int               `json:"maxNumberOfRetries"`
	Frequency   int               `json:"frequency"`
	ContentType string            `json:"contentType"`
	Keywords    string            `json:"keywords,omitempty"`
	Blockchain  blockchainOptions `json:"blockchain"`
}

type createRequest struct {
	Public  json.RawMessage `json:"public"`
	Options callOptions     `json:"options"`
}

type createResponse struct {
	UAL               string `json:"UAL"`
	PublicAssertionID string `json:"publicAssertionId"`
}

type transferRequest struct {
	UAL      string      `json:"ual"`
	Receiver string      `json:"receiver"`
	Options  callOptions `json:"options"`
}

type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (c *HTTPNodeClient) Create(ctx context.Context, payload string, opts domain.LedgerOptions) (*domain.CreateResult, error) {
	body := createRequest{
		Public:  json.RawMessage(payload),
		Options: toCallOptions(opts),
	}

	var result createResponse
	if err := c.post(ctx, "/assets/create", body, &result); err != nil {
		return nil, err
	}

	return &domain.CreateResult{
		UAL:   result.UAL,
		State: result.PublicAssertionID,
	}, nil
}

func (c *HTTPNodeClient) Transfer(ctx context.Context, ual, receiver string, opts domain.LedgerOptions) error {
	body := transferRequest{
		UAL:      ual,
		Receiver: receiver,
		Options:  toCallOptions(opts),
	}
	return c.post(ctx, "/assets/transfer", body, nil)
}

func (c *HTTPNodeClient) post(ctx context.Context, path string, body, out interface{}) error {
	requestBodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.Client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.Unmarshal(responseBodyBytes, out)
	}

	var nodeError errorResponse
	if err := json.Unmarshal(responseBodyBytes, &nodeError); err != nil || nodeError.Message == "" && nodeError.Name == "" {
		return &domain.LedgerError{Message: fmt.Sprintf("node returned status %d", response.StatusCode)}
	}
	return &domain.LedgerError{Name: nodeError.Name, Message: nodeError.Message}
}

func toCallOptions(opts domain.LedgerOptions) callOptions {
	return callOptions{
		Environment: string(opts.Environment),
		EpochsNum:   opts.Epochs,
		MaxRetries:  maxRetries,
		Frequency:   frequency,
		ContentType: contentType,
		Keywords:    opts.Keywords,
		Blockchain: blockchainOptions{
			Name:                opts.Blockchain.Name,
			PublicKey:           opts.Blockchain.PublicKey,
			PrivateKey:          opts.Blockchain.PrivateKey,
			HandleNotMinedError: true,
		},
	}
}
