// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/jiyuu-tui/internal/ui/styles"
)

// =============================================================================
// FENCE SPLITTING
// =============================================================================

// Segment is a run of prose or one fenced code block.
type Segment struct {
	Code     bool
	Language string
	Text     string
	// Open marks a code block whose closing fence has not arrived yet.
	Open bool
}

// SplitFences cuts markdown into prose and ``` fenced code segments.
// Blank prose is dropped. A fence still open at the end (a reply
// mid-stream) becomes an Open code segment.
func SplitFences(text string) []Segment {
	var segs []Segment
	var buf []string
	inCode := false
	lang := ""

	flush := func(code, open bool) {
		body := strings.Join(buf, "\n")
		buf = nil
		if !code && strings.TrimSpace(body) == "" {
			return
		}
		segs = append(segs, Segment{Code: code, Language: lang, Text: body, Open: open})
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inCode {
				flush(true, false)
				lang = ""
				inCode = false
			} else {
				flush(false, false)
				lang = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
				inCode = true
			}
			continue
		}
		buf = append(buf, line)
	}
	if inCode {
		flush(true, true)
	} else {
		flush(false, false)
	}
	return segs
}

// LastCodeBlock returns the body of the last fenced code block in text.
// Unclosed blocks count.
func LastCodeBlock(text string) (string, bool) {
	segs := SplitFences(text)
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i].Code {
			return segs[i].Text, true
		}
	}
	return "", false
}

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// CodeBlock represents a code block ready to render.
type CodeBlock struct {
	Language string
	Code     string
	MaxWidth int
	// CopyHint is shown next to the language badge, e.g. "ctrl+y Copy code".
	CopyHint string
	// LineNumbers prefixes each line with its number.
	LineNumbers bool
}

// NewCodeBlock creates a new code block.
func NewCodeBlock(language, code string) CodeBlock {
	return CodeBlock{
		Language: language,
		Code:     code,
		MaxWidth: 80,
	}
}

// Render renders the code block with highlighting and a language badge.
func (c CodeBlock) Render(theme *styles.Theme) string {
	code := strings.TrimRight(c.Code, "\n")
	lines := strings.Split(highlightCode(code, c.Language), "\n")
	if c.LineNumbers {
		for i, line := range lines {
			lines[i] = theme.CodeLineNum.Render(strconv.Itoa(i+1)) + line
		}
	}

	var header []string
	if c.Language != "" {
		header = append(header, theme.CodeLangBadge.Render(c.Language))
	}
	if c.CopyHint != "" {
		header = append(header, theme.CodeCopyHint.Render(c.CopyHint))
	}

	body := strings.Join(lines, "\n")
	if len(header) > 0 {
		body = strings.Join(header, " ") + "\n" + body
	}

	maxWidth := c.MaxWidth
	if maxWidth < 20 {
		maxWidth = 20
	}
	return theme.CodeBlock.MaxWidth(maxWidth).Render(body)
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlightCode applies ANSI syntax highlighting. It returns the input
// unchanged when highlighting fails.
func highlightCode(code, language string) string {
	if code == "" {
		return code
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}
