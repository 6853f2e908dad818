// Prbot reviews a pull request diff with Claude and posts the review as a
// PR comment. It is meant to run as a CI step on pull request events.
//
// Usage:
//
//	prbot review                  # review $DIFF and comment on $PR_NUMBER
//	prbot review --dry-run        # print the review instead of posting it
//	prbot review --poster api     # post through the REST API with $GITHUB_TOKEN
//	prbot prompt                  # print the prompt without calling the API
//	prbot version
package main
