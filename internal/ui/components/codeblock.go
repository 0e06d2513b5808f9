// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

// =============================================================================
// CODE BLOCK HIGHLIGHTING
// =============================================================================

// chromaStyleFor maps a markdown style to a chroma style.
func chromaStyleFor(markdownStyle string) string {
	if markdownStyle == "light" {
		return "github"
	}
	return "monokai"
}

// HighlightCodeBlocks returns text with the body of every ``` fenced block
// syntax highlighted. Fence lines are kept so the reply still reads as
// markdown. The "notty" style returns text unchanged.
func HighlightCodeBlocks(text, markdownStyle string) string {
	if markdownStyle == "notty" || !strings.Contains(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	var code []string
	var language string
	inBlock := false

	flush := func() {
		if len(code) > 0 {
			out = append(out, highlightCode(strings.Join(code, "\n"), language, chromaStyleFor(markdownStyle)))
		}
		code = nil
	}

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inBlock {
				flush()
				out = append(out, line)
				inBlock = false
				continue
			}
			language = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "```"))
			out = append(out, line)
			inBlock = true
			continue
		}
		if inBlock {
			code = append(code, line)
		} else {
			out = append(out, line)
		}
	}

	// Unclosed block
	if inBlock {
		flush()
	}
	return strings.Join(out, "\n")
}

// highlightCode highlights code with chroma's terminal256 formatter. Any
// failure returns code unchanged.
func highlightCode(code, language, styleName string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(styleName)
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
