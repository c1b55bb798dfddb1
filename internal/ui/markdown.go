package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// wrapWidth is the column glamour wraps journal prose at.
const wrapWidth = 80

// IsStdoutTTY returns true when stdout is connected to a terminal.
func IsStdoutTTY() bool {
	return isTTY(os.Stdout)
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// MarkdownPrinter writes markdown to a terminal as styled output and to
// anything else as plain text.
type MarkdownPrinter struct {
	out    io.Writer
	render bool
}

// NewMarkdownPrinter returns a printer for out. Rendering happens only when
// out is a terminal, raw is false and NO_COLOR is unset.
func NewMarkdownPrinter(out io.Writer, raw bool) *MarkdownPrinter {
	return &MarkdownPrinter{
		out:    out,
		render: !raw && !NoColor() && isTTY(out),
	}
}

// Print writes md, rendered or verbatim. A trailing newline is ensured.
func (p *MarkdownPrinter) Print(md string) error {
	if p.render {
		rendered, err := renderMarkdown(md)
		if err == nil {
			_, err = fmt.Fprint(p.out, rendered)
			return err
		}
		fmt.Fprintln(os.Stderr, Muted.Render("  (markdown rendering failed, showing raw text)"))
	}
	if !strings.HasSuffix(md, "\n") {
		md += "\n"
	}
	_, err := io.WriteString(p.out, md)
	return err
}

// RenderMarkdown renders md for terminal output. It returns md unchanged
// on any error.
func RenderMarkdown(md string) string {
	out, err := renderMarkdown(md)
	if err != nil {
		return md
	}
	return out
}

func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
