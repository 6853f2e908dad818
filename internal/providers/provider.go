package providers

import "context"

// Response is the outcome of one review request.
type Response struct {
	// Text is the first content block's text.
	Text string
	// Raw is the response body exactly as the API returned it.
	Raw []byte
}

// Requester sends a rendered review prompt to a model and returns its reply.
type Requester interface {
	Request(ctx context.Context, prompt string) (Response, error)
}
