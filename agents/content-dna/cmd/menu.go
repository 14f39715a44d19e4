package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd)
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

var menuOptions = []string{
	"Search & select videos",
	"Add video by URL",
	"Run niche analysis",
	"Generate titles",
	"Thumbnail guidance",
	"List stored videos",
	"Remove a stored video",
	"Optimize a script",
	"Exit",
}

type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{
		scanner: bufio.NewScanner(cmd.InOrStdin()),
		out:     cmd.OutOrStdout(),
	}
}

// ask prints label and reads one line. ok is false once input is exhausted.
func (p *prompter) ask(label string) (string, bool) {
	fmt.Fprint(p.out, label)
	if !p.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.scanner.Text()), true
}

func runMenu(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	p := newPrompter(cmd)

	fmt.Fprintf(out, "%s\n%s\n", agent.Name(), strings.Repeat("=", len(agent.Name())))

	for {
		fmt.Fprintln(out)
		for i, option := range menuOptions {
			fmt.Fprintf(out, "%d. %s\n", i+1, option)
		}

		choice, ok := p.ask(fmt.Sprintf("\nChoose an option (1-%d): ", len(menuOptions)))
		if !ok {
			fmt.Fprintln(out)
			break
		}

		var err error
		switch strings.ToLower(choice) {
		case "1":
			err = menuSearch(cmd, p)
		case "2":
			err = menuAdd(cmd, p)
		case "3":
			err = withNiche(p, func(niche string) error { return showAnalysis(cmd, niche, false) })
		case "4":
			err = menuTitles(cmd, p)
		case "5":
			err = withNiche(p, func(niche string) error { return showThumbnails(cmd, niche) })
		case "6":
			err = menuRecords(cmd, p)
		case "7":
			err = menuRemove(cmd, p)
		case "8":
			err = menuOptimize(cmd, p)
		case "9", "q", "quit", "exit":
			fmt.Fprintln(out, agent.Monitor().GetStatusSummary())
			return nil
		default:
			fmt.Fprintf(out, "Invalid choice %q\n", choice)
			continue
		}

		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		if cmd.Context().Err() != nil {
			break
		}
	}

	fmt.Fprintln(out, agent.Monitor().GetStatusSummary())
	return nil
}

// pickNiche lists the store's niches by number. Blank input cancels.
func pickNiche(p *prompter) (string, bool, error) {
	niches := agent.Niches()
	fmt.Fprintln(p.out, "\nNiches:")
	for i, niche := range niches {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, niche)
	}

	answer, ok := p.ask(fmt.Sprintf("Select a niche (1-%d): ", len(niches)))
	if !ok || answer == "" {
		return "", false, nil
	}

	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(niches) {
			return "", false, fmt.Errorf("niche %d is out of range (1-%d)", n, len(niches))
		}
		return niches[n-1], true, nil
	}

	// Names are accepted too; unknown ones are reported by the action.
	return answer, true, nil
}

func withNiche(p *prompter, fn func(niche string) error) error {
	niche, ok, err := pickNiche(p)
	if err != nil || !ok {
		return err
	}
	return fn(niche)
}

func menuSearch(cmd *cobra.Command, p *prompter) error {
	return withNiche(p, func(niche string) error {
		query, ok := p.ask(fmt.Sprintf("Search query (blank for %q): ", cfg.SearchTerm(niche)))
		if !ok {
			return nil
		}
		return searchAndSelect(cmd, niche, query, 0, "", p.ask)
	})
}

func menuAdd(cmd *cobra.Command, p *prompter) error {
	return withNiche(p, func(niche string) error {
		input, ok := p.ask("YouTube URL or video ID: ")
		if !ok || input == "" {
			return nil
		}
		return addVideo(cmd, niche, input)
	})
}

func menuTitles(cmd *cobra.Command, p *prompter) error {
	return withNiche(p, func(niche string) error {
		if cfg.ValidateAI() == nil {
			topic, ok := p.ask("Video topic for Gemini (blank for built-in examples): ")
			if ok && topic != "" {
				return showTitles(cmd, niche, nil, topic, true, false)
			}
		}
		return showTitles(cmd, niche, nil, "", false, false)
	})
}

func menuRecords(cmd *cobra.Command, p *prompter) error {
	fmt.Fprintln(p.out, "\nShow stored videos for which niche? (blank for all)")
	niche, _, err := pickNiche(p)
	if err != nil {
		return err
	}
	return showRecords(cmd, niche)
}

func menuRemove(cmd *cobra.Command, p *prompter) error {
	id, ok := p.ask("Video ID or URL to remove: ")
	if !ok || id == "" {
		return nil
	}
	return removeVideo(cmd, id)
}

func menuOptimize(cmd *cobra.Command, p *prompter) error {
	return withNiche(p, func(niche string) error {
		path, ok := p.ask("Script file: ")
		if !ok || path == "" {
			return nil
		}
		title, ok := p.ask("Video title (blank for the best title draft): ")
		if !ok {
			return nil
		}
		script, err := readScript(cmd, path)
		if err != nil {
			return err
		}
		return showOptimize(cmd, niche, title, script, false)
	})
}
