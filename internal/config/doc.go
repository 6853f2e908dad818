// Package config builds the review context for a prbot run.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (DIFF, ANTHROPIC_API_KEY, PR_NUMBER, PR_TITLE,
//     PR_AUTHOR, REPO, PRBOT_*)
//  3. Built-in defaults
//
// Use [Load] to obtain a validated [Config]. Missing required variables are
// reported as a single [*Error] listing every missing name.
package config
