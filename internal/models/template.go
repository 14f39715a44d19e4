package models

import (
	"fmt"
	"regexp"
	"strings"
)

type TokenKind int

const (
	TokenLiteral TokenKind = iota
	TokenPlaceholder
)

// TemplateToken is either a literal run of text or the name of a placeholder.
type TemplateToken struct {
	Kind  TokenKind
	Value string
}

// TitleTemplate is a title pattern such as "How I {action} to {positive_outcome}"
// split into literal and placeholder tokens.
type TitleTemplate struct {
	Tokens []TemplateToken

	// matcher is compiled once by ParseTitleTemplate.
	matcher *regexp.Regexp
}

// ParseTitleTemplate tokenizes a title pattern. Placeholders are delimited by
// braces; nested, unbalanced or empty placeholders are rejected.
func ParseTitleTemplate(pattern string) (TitleTemplate, error) {
	if strings.TrimSpace(pattern) == "" {
		return TitleTemplate{}, fmt.Errorf("title pattern is empty")
	}

	var tokens []TemplateToken
	var buf strings.Builder
	inside := false

	for i, r := range pattern {
		switch r {
		case '{':
			if inside {
				return TitleTemplate{}, fmt.Errorf("nested '{' at offset %d in %q", i, pattern)
			}
			if buf.Len() > 0 {
				tokens = append(tokens, TemplateToken{Kind: TokenLiteral, Value: buf.String()})
				buf.Reset()
			}
			inside = true
		case '}':
			if !inside {
				return TitleTemplate{}, fmt.Errorf("unmatched '}' at offset %d in %q", i, pattern)
			}
			name := buf.String()
			if strings.TrimSpace(name) == "" {
				return TitleTemplate{}, fmt.Errorf("empty placeholder at offset %d in %q", i, pattern)
			}
			tokens = append(tokens, TemplateToken{Kind: TokenPlaceholder, Value: name})
			buf.Reset()
			inside = false
		default:
			buf.WriteRune(r)
		}
	}

	if inside {
		return TitleTemplate{}, fmt.Errorf("unclosed placeholder in %q", pattern)
	}
	if buf.Len() > 0 {
		tokens = append(tokens, TemplateToken{Kind: TokenLiteral, Value: buf.String()})
	}

	tmpl := TitleTemplate{Tokens: tokens}
	tmpl.matcher = tmpl.compile()
	return tmpl, nil
}

// String reassembles the original pattern text.
func (t TitleTemplate) String() string {
	var sb strings.Builder
	for _, tok := range t.Tokens {
		if tok.Kind == TokenPlaceholder {
			sb.WriteString("{" + tok.Value + "}")
			continue
		}
		sb.WriteString(tok.Value)
	}
	return sb.String()
}

// Placeholders returns the placeholder names in order of first appearance.
func (t TitleTemplate) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	for _, tok := range t.Tokens {
		if tok.Kind == TokenPlaceholder && !seen[tok.Value] {
			seen[tok.Value] = true
			names = append(names, tok.Value)
		}
	}
	return names
}

// Fill substitutes placeholder values. Placeholders without a non-empty value
// are left in braces and reported in missing.
func (t TitleTemplate) Fill(values map[string]string) (string, []string) {
	var sb strings.Builder
	var missing []string
	reported := make(map[string]bool)

	for _, tok := range t.Tokens {
		if tok.Kind == TokenLiteral {
			sb.WriteString(tok.Value)
			continue
		}
		if v := strings.TrimSpace(values[tok.Value]); v != "" {
			sb.WriteString(v)
			continue
		}
		sb.WriteString("{" + tok.Value + "}")
		if !reported[tok.Value] {
			reported[tok.Value] = true
			missing = append(missing, tok.Value)
		}
	}

	return sb.String(), missing
}

// Matches reports whether a concrete title fits the template: literal segments
// must appear in order (case-insensitive) and every placeholder must cover at
// least one character.
func (t TitleTemplate) Matches(title string) bool {
	title = strings.TrimSpace(title)
	if title == "" || len(t.Tokens) == 0 {
		return false
	}
	re := t.matcher
	if re == nil {
		re = t.compile()
	}
	return re.MatchString(title)
}

func (t TitleTemplate) compile() *regexp.Regexp {
	var sb strings.Builder
	sb.WriteString(`(?is)^`)
	for _, tok := range t.Tokens {
		if tok.Kind == TokenPlaceholder {
			sb.WriteString(`(.+?)`)
			continue
		}
		sb.WriteString(regexp.QuoteMeta(tok.Value))
	}
	sb.WriteString(`$`)
	return regexp.MustCompile(sb.String())
}

func (t TitleTemplate) Clone() TitleTemplate {
	return TitleTemplate{Tokens: append([]TemplateToken(nil), t.Tokens...), matcher: t.matcher}
}
