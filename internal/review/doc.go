// Package review runs the review pipeline for one pull-request event.
//
// [Orchestrator.Run] is a single linear sequence: optionally redact the diff,
// pick the full or incremental template, render the prompt, request a review
// from the model, and post the first content block's text as a comment.
// There is no retry; a failed request posts nothing.
//
// The model call and the comment post are injected as
// [providers.Requester] and [github.Commenter] so tests can run the pipeline
// against fakes.
package review
