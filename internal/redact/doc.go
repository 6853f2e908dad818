// Package redact provides regex-based secret scrubbing for diff text before it
// is sent to the model.
//
// [Count] replaces API keys, tokens, passwords, private-key headers, and
// similar credentials with "[REDACTED]". Redaction is opt-in (--redact); by
// default the diff is sent verbatim.
package redact
