package recommend

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"content-dna/internal/models"
)

//go:embed report.md.tmpl
var reportTemplate string

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"cell":     func(s string) string { return strings.ReplaceAll(s, "|", `\|`) },
	"score":    func(f float64) string { return fmt.Sprintf("%.2f", f) },
	"pct":      func(f float64) string { return fmt.Sprintf("%.2f%%", f) },
	"views":    formatCount,
	"inc":      func(i int) int { return i + 1 },
	"join":     strings.Join,
	"humanize": humanize,
}).Parse(reportTemplate))

// Markdown renders the full niche analysis.
func Markdown(rec *models.Recommendation) (string, error) {
	return render("analysis", rec)
}

// TitlesMarkdown renders filled title drafts for a niche.
func TitlesMarkdown(niche string, drafts []models.TitleDraft) (string, error) {
	return render("drafts", struct {
		Niche  string
		Drafts []models.TitleDraft
	}{niche, drafts})
}

func ThumbnailMarkdown(niche string, thumb models.ThumbnailSuggestion) (string, error) {
	return render("thumbnails", struct {
		Niche     string
		Thumbnail models.ThumbnailSuggestion
	}{niche, thumb})
}

// OptimizeMarkdown renders a script analysis with its description and upload settings.
func OptimizeMarkdown(report *models.ScriptReport) (string, error) {
	return render("optimize", report)
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := reportTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s report: %w", name, err)
	}
	return buf.String(), nil
}

// formatCount writes n with thousands separators.
func formatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
