package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gogithub "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

type issuesService interface {
	CreateComment(ctx context.Context, owner, repo string, number int, comment *gogithub.IssueComment) (*gogithub.IssueComment, *gogithub.Response, error)
}

// API posts comments through the GitHub REST API.
type API struct {
	owner  string
	repo   string
	issues issuesService
}

// NewAPI creates a REST commenter for the "owner/name" repository. apiURL
// is optional and points at a GitHub Enterprise API root.
func NewAPI(token, repoSlug, apiURL string) (*API, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return newAPI(oauth2.NewClient(context.Background(), ts), repoSlug, apiURL)
}

func newAPI(httpClient *http.Client, repoSlug, apiURL string) (*API, error) {
	owner, repo, err := SplitRepo(repoSlug)
	if err != nil {
		return nil, err
	}
	client := gogithub.NewClient(httpClient)
	if apiURL != "" {
		base, err := url.Parse(strings.TrimRight(apiURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing GitHub API URL: %w", err)
		}
		client.BaseURL = base
	}
	return &API{owner: owner, repo: repo, issues: client.Issues}, nil
}

func (a *API) Comment(ctx context.Context, prNumber int, body string) error {
	_, resp, err := a.issues.CreateComment(ctx, a.owner, a.repo, prNumber, &gogithub.IssueComment{
		Body: gogithub.Ptr(body),
	})
	if err != nil {
		cerr := &CommentError{PRNumber: prNumber, Poster: "api", Err: err}
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			cerr.Stderr = fmt.Sprintf("PR #%d not found in %s/%s", prNumber, a.owner, a.repo)
		}
		return cerr
	}
	return nil
}
