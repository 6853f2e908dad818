package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	// Model is the model every review is requested from.
	Model = "claude-sonnet-4-5-20250929"
	// MaxTokens is the output token ceiling for every review.
	MaxTokens = 16000

	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "https://api.anthropic.com/"

	anthropicAPIVersion = "2023-06-01"
	messagesPath        = "v1/messages"
)

// Anthropic implements the Requester interface for Anthropic's Messages API.
type Anthropic struct {
	client anthropic.Client
}

// NewAnthropic creates a new Anthropic requester. baseURL and httpClient are
// optional; SDK retries are disabled so each review is exactly one call.
//
// The SDK also reads ANTHROPIC_BASE_URL and ANTHROPIC_AUTH_TOKEN from the
// process environment. Both are overridden here so the only credential sent
// is apiKey and the endpoint is the one passed in.
func NewAnthropic(apiKey, baseURL string, httpClient *http.Client) *Anthropic {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithHeader("anthropic-version", anthropicAPIVersion),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	opts = append(opts, option.WithHeaderDel("authorization"))
	return &Anthropic{client: anthropic.NewClient(opts...)}
}

// Request posts a single user message and extracts content[0].text from the
// reply. Every failure is a *ReviewGenerationError.
func (a *Anthropic) Request(ctx context.Context, prompt string) (Response, error) {
	body := anthropicRequest{
		Model:     Model,
		MaxTokens: MaxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, &ReviewGenerationError{Reason: "marshaling request", Err: err}
	}

	var captured []byte
	capture := func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		resp, err := next(req)
		if err != nil || resp == nil || resp.Body == nil {
			return resp, err
		}
		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("reading response: %w", readErr)
		}
		captured = data
		resp.Body = io.NopCloser(bytes.NewReader(data))
		return resp, nil
	}

	var raw []byte
	err = a.client.Post(ctx, messagesPath, json.RawMessage(payload), &raw, option.WithMiddleware(capture))
	if err != nil {
		genErr := &ReviewGenerationError{Reason: "sending request", Raw: captured, Err: err}
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			genErr.Reason = "API error"
			genErr.StatusCode = apiErr.StatusCode
		}
		return Response{}, genErr
	}
	if raw == nil {
		raw = captured
	}

	text, err := ExtractText(raw)
	if err != nil {
		return Response{}, err
	}
	return Response{Text: text, Raw: raw}, nil
}

// ExtractText returns content[0].text from a Messages API response body.
func ExtractText(raw []byte) (string, error) {
	var result anthropicResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", &ReviewGenerationError{Reason: "parsing response", Raw: raw, Err: err}
	}
	if result.Content == nil {
		return "", &ReviewGenerationError{Reason: `response has no "content" field`, Raw: raw}
	}
	if len(result.Content) == 0 {
		return "", &ReviewGenerationError{Reason: "response content is empty", Raw: raw}
	}
	text := result.Content[0].Text
	if text == nil {
		return "", &ReviewGenerationError{Reason: `first content block has no "text" field`, Raw: raw}
	}
	if *text == "" {
		return "", &ReviewGenerationError{Reason: "first content block text is empty", Raw: raw}
	}
	return *text, nil
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicBlock `json:"content"`
}

type anthropicBlock struct {
	Type string  `json:"type"`
	Text *string `json:"text"`
}
