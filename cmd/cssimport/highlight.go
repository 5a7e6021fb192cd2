package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownStyle is returned for a --highlight-style chroma does not know.
var ErrUnknownStyle = errors.New("unknown highlight style")

// highlightCSS writes content to w as 24-bit colored terminal output.
func highlightCSS(w io.Writer, content, styleName string) error {
	lexer := lexers.Get("css")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	if styleName == "" {
		styleName = defaultHighlightStyle
	}
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStyle, styleName)
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return fmt.Errorf("tokenizing: %w", err)
	}
	return formatters.TTY16m.Format(w, style, iterator)
}
