package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	contentdna "content-dna/agents/content-dna"
	"content-dna/internal/models"
	"content-dna/shared/monitoring"
	"content-dna/shared/recommend"

	"github.com/spf13/cobra"
)

// Every action runs through the monitor so that each one is logged with its
// duration and the menu can report a session summary.

func searchAndSelect(cmd *cobra.Command, niche, query string, maxResults int64, selection string, ask func(string) (string, bool)) error {
	out := cmd.OutOrStdout()

	var candidates []*models.VideoRecord
	err := agent.Monitor().Track(cmd.Context(), "search "+niche, func(ctx context.Context) (monitoring.Metrics, error) {
		found, metrics, err := agent.FindCandidates(ctx, niche, query, maxResults)
		if err != nil {
			return nil, err
		}
		candidates = found
		fmt.Fprintf(out, "Searched %q: %s\n\n", metrics.Query, metrics.GetSummary())
		return metrics, nil
	})
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		fmt.Fprintln(out, "No new videos to select.")
		return nil
	}

	printCandidates(out, candidates)

	if selection == "" {
		answer, ok := ask("\nSelect videos to store (e.g. 1,3 or 2-4 or all, blank to cancel): ")
		if !ok || strings.TrimSpace(answer) == "" {
			fmt.Fprintln(out, "Nothing stored.")
			return nil
		}
		selection = answer
	}

	indexes, err := contentdna.ParseSelection(selection, len(candidates))
	if err != nil {
		return err
	}

	return agent.Monitor().Track(cmd.Context(), "store "+niche, func(ctx context.Context) (monitoring.Metrics, error) {
		metrics, err := agent.StoreSelected(niche, candidates, indexes)
		if err != nil {
			return metrics, err
		}
		fmt.Fprintf(out, "Stored %d videos under %s", metrics.Stored, niche)
		if metrics.Skipped > 0 {
			fmt.Fprintf(out, " (%d already stored)", metrics.Skipped)
		}
		fmt.Fprintln(out)
		return metrics, nil
	})
}

func addVideo(cmd *cobra.Command, niche, input string) error {
	return agent.Monitor().Track(cmd.Context(), "add "+niche, func(ctx context.Context) (monitoring.Metrics, error) {
		record, err := agent.AddByURL(ctx, niche, input)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %q (%s views) under %s\n", record.Title, formatViews(record.ViewCount), niche)
		return contentdna.Summary("stored " + record.ID), nil
	})
}

func showAnalysis(cmd *cobra.Command, niche string, asJSON bool) error {
	return agent.Monitor().Track(cmd.Context(), "analyze "+niche, func(ctx context.Context) (monitoring.Metrics, error) {
		rec, err := agent.Analyze(niche)
		if err != nil {
			return nil, err
		}

		if asJSON {
			if err := printJSON(cmd.OutOrStdout(), rec); err != nil {
				return nil, err
			}
		} else {
			md, err := recommend.Markdown(rec)
			if err != nil {
				return nil, err
			}
			if err := printMarkdown(cmd, md); err != nil {
				return nil, err
			}
		}

		return contentdna.Summary(fmt.Sprintf("%d patterns over %d stored videos", len(rec.Titles), rec.RecordCount)), nil
	})
}

func showTitles(cmd *cobra.Command, niche string, values map[string]string, topic string, useAI, asJSON bool) error {
	return agent.Monitor().Track(cmd.Context(), "titles "+niche, func(ctx context.Context) (monitoring.Metrics, error) {
		var drafts []models.TitleDraft
		var err error
		if useAI {
			drafts, err = agent.AITitles(ctx, niche, topic)
		} else {
			drafts, err = agent.Titles(niche, values)
		}
		if err != nil {
			return nil, err
		}

		if asJSON {
			if err := printJSON(cmd.OutOrStdout(), drafts); err != nil {
				return nil, err
			}
		} else {
			md, err := recommend.TitlesMarkdown(niche, drafts)
			if err != nil {
				return nil, err
			}
			if err := printMarkdown(cmd, md); err != nil {
				return nil, err
			}
		}

		return contentdna.Summary(fmt.Sprintf("drafted %d titles", len(drafts))), nil
	})
}

func showThumbnails(cmd *cobra.Command, niche string) error {
	return agent.Monitor().Track(cmd.Context(), "thumbnails "+niche, func(ctx context.Context) (monitoring.Metrics, error) {
		thumb, err := agent.Thumbnails(niche)
		if err != nil {
			return nil, err
		}
		md, err := recommend.ThumbnailMarkdown(niche, thumb)
		if err != nil {
			return nil, err
		}
		if err := printMarkdown(cmd, md); err != nil {
			return nil, err
		}
		return contentdna.Summary(fmt.Sprintf("%d thumbnail items", len(thumb.Items))), nil
	})
}

func showOptimize(cmd *cobra.Command, niche, title, script string, asJSON bool) error {
	return agent.Monitor().Track(cmd.Context(), "optimize "+niche, func(ctx context.Context) (monitoring.Metrics, error) {
		report, err := agent.Optimize(niche, title, script)
		if err != nil {
			return nil, err
		}

		if asJSON {
			if err := printJSON(cmd.OutOrStdout(), report); err != nil {
				return nil, err
			}
		} else {
			md, err := recommend.OptimizeMarkdown(report)
			if err != nil {
				return nil, err
			}
			if err := printMarkdown(cmd, md); err != nil {
				return nil, err
			}
		}

		return contentdna.Summary(fmt.Sprintf("%d words, %d advice items", report.Analysis.WordCount, len(report.Analysis.Advice))), nil
	})
}

func showRecords(cmd *cobra.Command, niche string) error {
	return agent.Monitor().Track(cmd.Context(), "records", func(ctx context.Context) (monitoring.Metrics, error) {
		records, err := agent.Records(niche)
		if err != nil {
			return nil, err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			if niche == "" {
				fmt.Fprintln(out, "No stored videos.")
			} else {
				fmt.Fprintf(out, "No stored videos for %s.\n", niche)
			}
			return contentdna.Summary("0 records"), nil
		}

		printRecords(out, records)
		return contentdna.Summary(fmt.Sprintf("%d records", len(records))), nil
	})
}

func removeVideo(cmd *cobra.Command, id string) error {
	return agent.Monitor().Track(cmd.Context(), "remove", func(ctx context.Context) (monitoring.Metrics, error) {
		if err := agent.Remove(id); err != nil {
			return nil, err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", strings.TrimSpace(id))
		return contentdna.Summary("removed " + id), nil
	})
}

func printCandidates(w io.Writer, candidates []*models.VideoRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTITLE\tCHANNEL\tVIEWS\tLIKES %")
	for i, v := range candidates {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\n", i+1, truncate(v.Title, 60), truncate(v.ChannelTitle, 24), formatViews(v.ViewCount), v.LikeRatio())
	}
	tw.Flush()
}

func printRecords(w io.Writer, records []*models.VideoRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNICHE\tTITLE\tVIEWS\tADDED")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Niche, truncate(r.Title, 60), formatViews(r.ViewCount), r.AddedAt.Local().Format("2006-01-02"))
	}
	tw.Flush()
}

func formatViews(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

func truncate(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}
	return string(r[:maxLength-3]) + "..."
}

// parseValues turns repeated key=value flags into placeholder values.
func parseValues(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.Trim(strings.TrimSpace(key), "{}")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set value %q, expected placeholder=value", pair)
		}
		values[key] = strings.TrimSpace(value)
	}
	return values, nil
}
