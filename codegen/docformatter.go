package codegen

import (
	"regexp"
	"strings"
)

const wrapColumn = 117

// DocFormatter turns an HTML documentation fragment from a service
// definition into a plain-text doc comment body plus the ordered list
// of links it referenced (spec.md §4.3, component C3). Grounded on the
// teacher's common.FormatComment/FormatBlock word-wrapping, generalized
// to first strip HTML per the spec's five-step contract.
type DocFormatter struct{}

func NewDocFormatter() *DocFormatter { return &DocFormatter{} }

// Link is one extracted <a href="URL">LABEL</a> reference.
type Link struct {
	URL   string
	Label string
}

var anchorRe = regexp.MustCompile(`<a\s+href="([^"]*)">(.*?)</a>`)

// Format implements the five-step contract. multiLine selects §4.3
// step 6: hard-wrap at 117 columns and append "@see URL" lines; when
// false, only the primary-description extraction (steps 1-5) runs.
func (f *DocFormatter) Format(html string, multiLine bool) (string, []Link, error) {
	s := strings.ReplaceAll(html, "> <", "><")

	var links []Link
	s = anchorRe.ReplaceAllStringFunc(s, func(match string) string {
		groups := anchorRe.FindStringSubmatch(match)
		links = append(links, Link{URL: groups[1], Label: groups[2]})
		return groups[2]
	})

	s = strings.ReplaceAll(s, "<p>", "")
	s = strings.ReplaceAll(s, "</p>", "\n")

	s = strings.ReplaceAll(s, "<code>", "`")
	s = strings.ReplaceAll(s, "</code>", "`")
	s = strings.ReplaceAll(s, "<i>", "*")
	s = strings.ReplaceAll(s, "</i>", "*")
	s = strings.ReplaceAll(s, "<b>", "**")
	s = strings.ReplaceAll(s, "</b>", "**")
	s = strings.ReplaceAll(s, "<a>", "")
	s = strings.ReplaceAll(s, "</a>", "")

	if strings.Contains(s, "<") {
		return "", nil, &UnsupportedDocumentationError{Source: html}
	}

	if !multiLine {
		return firstNonEmptyLine(s), links, nil
	}

	body := wrapText(strings.TrimSpace(s), wrapColumn)
	for _, l := range links {
		body += "\n@see " + l.URL
	}
	return body, links, nil
}

func firstNonEmptyLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// wrapText hard-wraps src at maxcol columns, breaking on spaces,
// mirroring common.FormatBlock's greedy word-wrap loop.
func wrapText(src string, maxcol int) string {
	var out []string
	for _, paragraph := range strings.Split(src, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > maxcol {
				out = append(out, line)
				line = w
			} else {
				line = line + " " + w
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
