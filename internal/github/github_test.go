package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGH_Comment(t *testing.T) {
	var gotName, gotStdin string
	var gotArgs []string
	run := func(_ context.Context, stdin io.Reader, name string, args ...string) ([]byte, []byte, error) {
		gotName = name
		gotArgs = args
		data, err := io.ReadAll(stdin)
		if err != nil {
			t.Errorf("reading stdin: %v", err)
		}
		gotStdin = string(data)
		return []byte("https://github.com/doublet/snackbar/pull/42#issuecomment-1\n"), nil, nil
	}

	body := "## 🤖 Claude Code Review\n\n`quoted` $(not expanded)"
	if err := NewGH(run).Comment(context.Background(), 42, body); err != nil {
		t.Fatalf("Comment error: %v", err)
	}
	if gotName != "gh" {
		t.Errorf("command = %q, want gh", gotName)
	}
	want := []string{"pr", "comment", "42", "--body-file", "-"}
	if len(gotArgs) != len(want) {
		t.Fatalf("args = %q, want %q", gotArgs, want)
	}
	for i := range want {
		if gotArgs[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, gotArgs[i], want[i])
		}
	}
	if gotStdin != body {
		t.Errorf("stdin = %q, want %q", gotStdin, body)
	}
}

func TestGH_CommentLargeBody(t *testing.T) {
	body := strings.Repeat("가", 200*1024)
	var gotStdin int
	run := func(_ context.Context, stdin io.Reader, _ string, args ...string) ([]byte, []byte, error) {
		for _, a := range args {
			if len(a) > 1024 {
				t.Errorf("argument of %d bytes passed on the command line", len(a))
			}
		}
		n, _ := io.Copy(io.Discard, stdin)
		gotStdin = int(n)
		return nil, nil, nil
	}

	if err := NewGH(run).Comment(context.Background(), 1, body); err != nil {
		t.Fatalf("Comment error: %v", err)
	}
	if gotStdin != len(body) {
		t.Errorf("stdin carried %d bytes, want %d", gotStdin, len(body))
	}
}

func TestGH_CommentFailure(t *testing.T) {
	exitErr := errors.New("exit status 1")
	run := func(context.Context, io.Reader, string, ...string) ([]byte, []byte, error) {
		return nil, []byte("GraphQL: Could not resolve to a PullRequest\n"), exitErr
	}

	err := NewGH(run).Comment(context.Background(), 7, "body")
	var cerr *CommentError
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected *CommentError, got %v", err)
	}
	if cerr.PRNumber != 7 {
		t.Errorf("PRNumber = %d, want 7", cerr.PRNumber)
	}
	if !errors.Is(err, exitErr) {
		t.Error("CommentError should unwrap to the runner error")
	}
	if got := err.Error(); got != "posting comment to PR #7 via gh: exit status 1 - GraphQL: Could not resolve to a PullRequest" {
		t.Errorf("error = %q", got)
	}
}

func TestAPI_Comment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/repos/doublet/snackbar/issues/42/comments" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding body: %v", err)
			return
		}
		if payload["body"] != "review text" {
			t.Errorf("body = %q, want %q", payload["body"], "review text")
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1,"body":"review text"}`))
	}))
	defer server.Close()

	a, err := newAPI(server.Client(), "doublet/snackbar", server.URL)
	if err != nil {
		t.Fatalf("newAPI error: %v", err)
	}
	if err := a.Comment(context.Background(), 42, "review text"); err != nil {
		t.Fatalf("Comment error: %v", err)
	}
}

func TestAPI_CommentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	a, err := newAPI(server.Client(), "doublet/snackbar", server.URL+"/")
	if err != nil {
		t.Fatalf("newAPI error: %v", err)
	}
	err = a.Comment(context.Background(), 99, "x")
	var cerr *CommentError
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected *CommentError, got %v", err)
	}
	if !strings.Contains(cerr.Error(), "PR #99 not found in doublet/snackbar") {
		t.Errorf("error = %q", cerr.Error())
	}
}

func TestNewAPI_BadRepo(t *testing.T) {
	if _, err := NewAPI("token", "not-a-slug", ""); err == nil {
		t.Error("Expected error for malformed repo slug")
	}
}

func TestDry_Comment(t *testing.T) {
	var buf bytes.Buffer
	if err := (&Dry{W: &buf}).Comment(context.Background(), 1, "hello"); err != nil {
		t.Fatalf("Comment error: %v", err)
	}
	if buf.String() != "hello\n" {
		t.Errorf("output = %q, want %q", buf.String(), "hello\n")
	}
}

func TestSplitRepo(t *testing.T) {
	tests := []struct {
		slug      string
		owner     string
		repo      string
		expectErr bool
	}{
		{"doublet/snackbar", "doublet", "snackbar", false},
		{" doublet/snackbar-web.page ", "doublet", "snackbar-web.page", false},
		{"doublet/snackbar.git", "doublet", "snackbar", false},
		{"snackbar", "", "", true},
		{"a/b/c", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		owner, repo, err := SplitRepo(tt.slug)
		if tt.expectErr {
			if err == nil {
				t.Errorf("SplitRepo(%q) expected error", tt.slug)
			}
			continue
		}
		if err != nil {
			t.Errorf("SplitRepo(%q) error: %v", tt.slug, err)
			continue
		}
		if owner != tt.owner || repo != tt.repo {
			t.Errorf("SplitRepo(%q) = (%q, %q), want (%q, %q)", tt.slug, owner, repo, tt.owner, tt.repo)
		}
	}
}
