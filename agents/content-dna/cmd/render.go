package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func getTerminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 80
	}

	if width > 10 {
		return width - 4
	}

	return width
}

// renderMarkdown renders markdown content with glamour
func renderMarkdown(content string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	renderedContent, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return renderedContent, nil
}

// printMarkdown renders content when the command writes to a terminal and
// prints it unchanged otherwise.
func printMarkdown(cmd *cobra.Command, content string) error {
	out := cmd.OutOrStdout()

	raw, _ := cmd.Flags().GetBool("raw")
	if f, ok := out.(*os.File); ok && !raw && term.IsTerminal(int(f.Fd())) {
		rendered, err := renderMarkdown(content, getTerminalWidth(f))
		if err != nil {
			return err
		}
		content = rendered
	}

	_, err := fmt.Fprint(out, content)
	return err
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
