package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.1:latest"
)

type Client struct {
	client  *api.Client
	model   string
	baseURL string
}

// CompleteOptions tune a single non-streaming chat request
type CompleteOptions struct {
	// JSON constrains the reply to a JSON value
	JSON bool

	// MaxTokens maps to the num_predict option; zero keeps the model default
	MaxTokens int
}

// NewClient creates a client for the Ollama server at baseURL. apiKey is
// sent as a bearer token when set (hosted Ollama); local servers need none.
func NewClient(baseURL, apiKey, model string) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid Ollama URL %q: scheme and host are required", baseURL)
	}

	httpClient := http.DefaultClient
	if apiKey != "" {
		httpClient = &http.Client{Transport: &bearerTransport{token: apiKey, base: http.DefaultTransport}}
	}

	return &Client{
		client:  api.NewClient(parsedURL, httpClient),
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Complete sends messages and returns the full reply content
func (c *Client) Complete(ctx context.Context, messages []api.Message, opts CompleteOptions) (string, error) {
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   func(b bool) *bool { return &b }(false),
	}
	if opts.JSON {
		req.Format = json.RawMessage(`"json"`)
	}
	if opts.MaxTokens > 0 {
		req.Options = map[string]any{"num_predict": opts.MaxTokens}
	}

	var content string
	respFunc := func(resp api.ChatResponse) error {
		// Non-streaming requests answer once, but be tolerant of chunks
		content += resp.Message.Content
		return nil
	}

	if err := c.client.Chat(ctx, req, respFunc); err != nil {
		return "", err
	}
	return content, nil
}

func (c *Client) GetModel() string {
	return c.model
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(req)
}
