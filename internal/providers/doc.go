// Package providers sends review prompts to the Anthropic Messages API.
//
// The [Requester] interface is the "send review request" capability used by
// the orchestrator; [Anthropic] implements it on top of the official SDK with
// retries disabled, so each run makes exactly one outbound call. The raw
// response body is kept alongside the extracted text so that failures can be
// diagnosed from CI logs.
//
// Tests point the client at an httptest server through the base URL option.
package providers
