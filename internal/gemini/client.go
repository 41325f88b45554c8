package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client talks to the Gemini generateContent REST endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

// NewClient creates a client authenticating with an API key.
func NewClient(model, apiKey string) *Client {
	return &Client{
		httpClient: http.DefaultClient,
		baseURL:    defaultBaseURL,
		model:      model,
		apiKey:     apiKey,
	}
}

// NewClientWithHTTP creates a client using a pre-authenticated HTTP client
// (OAuth2 token source); no API key is attached to requests.
func NewClientWithHTTP(httpClient *http.Client, model string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		model:      model,
	}
}

// SetBaseURL overrides the API base URL. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// Model returns the model name requests are issued against.
func (c *Client) Model() string {
	return c.model
}

type generateContentRequest struct {
	Contents []Content `json:"contents"`
	Tools    []Tool    `json:"tools,omitempty"`
}

type candidate struct {
	Content Content `json:"content"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

// GenerateContent sends the conversation history plus tool declarations and
// returns the first candidate's content. A response with no candidates
// returns (nil, nil); transport and API errors are returned as errors.
func (c *Client) GenerateContent(ctx context.Context, contents []Content, tools []Tool) (*Content, error) {
	payload, err := json.Marshal(generateContentRequest{Contents: contents, Tools: tools})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini API request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(body))
	}

	var out generateContentResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decoding gemini response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return nil, nil
	}
	return &out.Candidates[0].Content, nil
}
