// Package github posts review text as a pull-request comment.
//
// [Commenter] is the "post comment" capability used by the orchestrator.
// [GH] shells out to the GitHub CLI, [API] talks to the REST API with a
// GITHUB_TOKEN, and [Dry] writes the comment to a writer instead of posting.
// Every failure is a [*CommentError].
package github
