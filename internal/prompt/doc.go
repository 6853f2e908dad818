// Package prompt renders the review prompts sent to the model.
//
// Two templates are embedded: a full review used on the first pass over a
// pull request (PR metadata, complete severity taxonomy, good points and an
// overall status) and an incremental review used on later pushes (new issues
// only, status line). [Select] chooses between them from the review context.
package prompt
