package prompt

import (
	"strings"
	"testing"

	"github.com/doublet/prbot/internal/config"
)

const sampleDiff = "diff --git a/src/app/page.tsx b/src/app/page.tsx\n" +
	"@@ -1,3 +1,4 @@\n" +
	"+const price = order.total * 1.1 // <b>&\"{{not a template}}\"\n" +
	" export default Page\n"

func fullConfig() config.Config {
	return config.Config{
		Diff:     sampleDiff,
		PRNumber: 3,
		PRTitle:  "주문 폼 추가",
		PRAuthor: "alice",
		Repo:     "doublet/snackbar",
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   Kind
	}{
		{"all metadata", func(*config.Config) {}, KindFull},
		{"missing title", func(c *config.Config) { c.PRTitle = "" }, KindIncremental},
		{"missing author", func(c *config.Config) { c.PRAuthor = "" }, KindIncremental},
		{"missing repo", func(c *config.Config) { c.Repo = "" }, KindIncremental},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fullConfig()
			tt.mutate(&cfg)
			if got := Select(cfg); got != tt.want {
				t.Errorf("Select() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild_Full(t *testing.T) {
	cfg := fullConfig()
	kind, text, err := Build(cfg, cfg.Diff)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if kind != KindFull {
		t.Errorf("kind = %q, want %q", kind, KindFull)
	}
	for _, want := range []string{
		"## PR 정보",
		"- 제목: 주문 폼 추가",
		"- 작성자: alice",
		"- 레포: doublet/snackbar",
		"#### 🔴 Critical",
		"#### 🟡 Warning",
		"#### 💡 Suggestion",
		"### ✅ Good Points",
		"Status: [✅ Approved | 🔴 Changes Requested]",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("full prompt missing %q", want)
		}
	}
	if !strings.Contains(text, "```diff\n"+sampleDiff+"\n```") {
		t.Error("full prompt should embed the diff verbatim inside a diff fence")
	}
	if !strings.HasPrefix(text, "당신은 코드 리뷰 전문가입니다.") {
		t.Errorf("full prompt starts with %q", text[:40])
	}
	if !strings.HasSuffix(text, "```") {
		t.Error("full prompt should end with the closing fence")
	}
}

func TestBuild_Incremental(t *testing.T) {
	cfg := fullConfig()
	cfg.PRAuthor = ""
	kind, text, err := Build(cfg, cfg.Diff)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if kind != KindIncremental {
		t.Errorf("kind = %q, want %q", kind, KindIncremental)
	}
	if !strings.Contains(text, "## 🔄 Incremental Review") {
		t.Error("incremental prompt missing heading")
	}
	if !strings.Contains(text, "이번 커밋에서 새로 추가된 이슈만 리뷰하세요.") {
		t.Error("incremental prompt should restrict review to the latest commit")
	}
	if !strings.Contains(text, "```diff\n"+sampleDiff+"\n```") {
		t.Error("incremental prompt should embed the diff verbatim")
	}
	for _, banned := range []string{"PR 정보", "Good Points", "주문 폼 추가"} {
		if strings.Contains(text, banned) {
			t.Errorf("incremental prompt should not contain %q", banned)
		}
	}
}

func TestBuild_UsesGivenDiff(t *testing.T) {
	cfg := fullConfig()
	_, text, err := Build(cfg, "redacted diff")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if strings.Contains(text, sampleDiff) {
		t.Error("Build should render the diff argument, not cfg.Diff")
	}
	if !strings.Contains(text, "```diff\nredacted diff\n```") {
		t.Error("Build should embed the diff argument")
	}
}

func TestRender_UnknownKind(t *testing.T) {
	if _, err := Render(Kind("haiku"), Data{}); err == nil {
		t.Error("Expected error for unknown template")
	}
}
