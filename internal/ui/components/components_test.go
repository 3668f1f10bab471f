// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/jiyuu-tui/internal/engine"
	"github.com/jeranaias/jiyuu-tui/internal/model"
	"github.com/jeranaias/jiyuu-tui/internal/ui/styles"
)

// =============================================================================
// FENCES
// =============================================================================

func TestSplitFences(t *testing.T) {
	text := "Here you go:\n```go\nfmt.Println(\"hi\")\n```\nDone."

	segs := SplitFences(text)
	require.Len(t, segs, 3)
	assert.Equal(t, Segment{Text: "Here you go:"}, segs[0])
	assert.Equal(t, Segment{Code: true, Language: "go", Text: "fmt.Println(\"hi\")"}, segs[1])
	assert.Equal(t, Segment{Text: "Done."}, segs[2])
}

func TestSplitFences_OpenFence(t *testing.T) {
	segs := SplitFences("Start\n```python\nprint(1)")
	require.Len(t, segs, 2)
	assert.True(t, segs[1].Code)
	assert.True(t, segs[1].Open)
	assert.Equal(t, "python", segs[1].Language)
	assert.Equal(t, "print(1)", segs[1].Text)
}

func TestSplitFences_PlainText(t *testing.T) {
	segs := SplitFences("just words")
	require.Len(t, segs, 1)
	assert.False(t, segs[0].Code)
	assert.Empty(t, SplitFences(""), "empty input has no prose")
}

func TestSplitFences_EmptyCodeBlock(t *testing.T) {
	segs := SplitFences("```\n```")
	require.Len(t, segs, 1)
	assert.True(t, segs[0].Code)
	assert.Equal(t, "", segs[0].Text)
}

func TestLastCodeBlock(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"none", "no code here", "", false},
		{"single", "```\na\n```", "a", true},
		{"last of two", "```go\nfirst\n```\ntext\n```sh\nsecond\nline\n```", "second\nline", true},
		{"unclosed", "```js\nlet x", "let x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LastCodeBlock(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// RENDERING
// =============================================================================

func stripped(s string) string {
	// Highlighting and borders vary by terminal; compare on visible words.
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestCodeBlock_Render(t *testing.T) {
	theme := styles.NewTheme()
	cb := NewCodeBlock("go", "package main\n\nfunc main() {}")
	cb.CopyHint = "ctrl+y Copy code"
	cb.LineNumbers = true

	out := stripped(cb.Render(theme))
	assert.Contains(t, out, "go")
	assert.Contains(t, out, "Copy code")
	assert.Contains(t, out, "func main")
	assert.Contains(t, out, "3")
}

func TestMarkdown_Render(t *testing.T) {
	md := NewMarkdown("notty")
	out := md.Render("# Title\n\nSome **bold** text.", 60)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
	assert.Equal(t, "", md.Render("  ", 60))
}

func TestRenderTurn(t *testing.T) {
	theme := styles.NewTheme()
	md := NewMarkdown("notty")

	t.Run("user is right aligned", func(t *testing.T) {
		tv := TurnView{Turn: model.Turn{Role: model.RoleUser, Content: "hi"}}
		out := RenderTurn(theme, md, tv, 80)
		for _, line := range strings.Split(out, "\n") {
			assert.Equal(t, 80, lipgloss.Width(line))
		}
		first := strings.Split(stripped(out), "\n")[0]
		assert.True(t, strings.HasPrefix(first, "      "), "user bubble should be pushed right: %q", first)
	})

	t.Run("assistant with code", func(t *testing.T) {
		tv := TurnView{
			Turn:     model.Turn{Role: model.RoleAssistant, Content: "Try:\n```sh\nls -la\n```"},
			Label:    "llama3.2:1b",
			CopyHint: "Copy code",
		}
		out := stripped(RenderTurn(theme, md, tv, 80))
		assert.Contains(t, out, "llama3.2:1b")
		assert.Contains(t, out, "Try")
		assert.Contains(t, out, "ls -la")
		assert.Contains(t, out, "Copy code")
	})

	t.Run("errored shows notice verbatim", func(t *testing.T) {
		notice := "There was an error generating the response. Please try again."
		tv := TurnView{Turn: model.Turn{Role: model.RoleAssistant, Content: notice, Errored: true}}
		out := stripped(RenderTurn(theme, md, tv, 100))
		assert.Contains(t, strings.Join(strings.Fields(out), " "), "There was an error generating")
	})

	t.Run("streaming shows cursor", func(t *testing.T) {
		tv := TurnView{Turn: model.Turn{Role: model.RoleAssistant}, Streaming: true}
		out := RenderTurn(theme, md, tv, 80)
		assert.Contains(t, out, styles.TypingCursor)
	})
}

func TestLoadPanel_View(t *testing.T) {
	theme := styles.NewTheme()
	lp := NewLoadPanel()

	out := stripped(lp.View(theme, engine.Progress{Fraction: 0.5, Elapsed: 65 * time.Second}, "Status: Fetching", "|", 80))
	assert.Contains(t, out, "Status: Fetching")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "1m05s")
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0s", FormatElapsed(200*time.Millisecond))
	assert.Equal(t, "42s", FormatElapsed(42*time.Second))
	assert.Equal(t, "3m07s", FormatElapsed(3*time.Minute+7*time.Second))
}

func TestRenderFailure(t *testing.T) {
	theme := styles.NewTheme()
	out := stripped(RenderFailure(theme, "Could not load", "Press ctrl+r to reload", 80))
	assert.Contains(t, out, "Could not load")
	assert.Contains(t, out, "ctrl+r")
}

func TestStatusBar_Render(t *testing.T) {
	theme := styles.NewTheme()
	bar := StatusBar{
		Status: StatusGenerating,
		Model:  "llama3.2:1b",
		Hints:  []Hint{{"esc", "stop"}, {"ctrl+l", "clear"}, {"f1", "info"}},
	}

	wide := bar.Render(theme, 120)
	assert.Equal(t, 120, lipgloss.Width(wide))
	assert.Contains(t, stripped(wide), "Generating")
	assert.Contains(t, stripped(wide), "info")

	narrow := bar.Render(theme, 44)
	assert.Equal(t, 44, lipgloss.Width(narrow))
	assert.NotContains(t, stripped(narrow), "info", "hints are dropped first")

	bar.Toast = "Copied!"
	assert.Contains(t, stripped(bar.Render(theme, 80)), "Copied!")
}

func TestWelcomeAndInfo(t *testing.T) {
	theme := styles.NewTheme()

	w := Welcome{Title: "jiyuu", Model: "llama3.2:1b", Message: "Runs locally.", Tips: []string{"enter send"}}
	out := stripped(w.Render(theme, 80))
	assert.Contains(t, out, "jiyuu")
	assert.Contains(t, out, "Runs locally.")

	p := InfoPanel{Title: "About", Rows: []InfoRow{{"Model", "llama3.2:1b"}}, Help: "esc stop"}
	out = stripped(p.Render(theme, 80))
	assert.Contains(t, out, "About")
	assert.Contains(t, out, "llama3.2:1b")
	assert.Contains(t, out, "esc stop")
}
