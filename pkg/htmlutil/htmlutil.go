// Package htmlutil provides HTML processing utilities for the meet-results
// site's legacy markup.
//
// Profile pages there are not structured documents: a single <td> holds the
// whole profile, sections are separated by runs of <br> tags, and field
// values frequently sit as loose text between tags. The helpers here
// normalize that soup into blocks a parser can walk.
package htmlutil

import (
	"html"
	"regexp"
	"strings"
)

var (
	brPattern        = regexp.MustCompile(`(?i)<br\s*/?>`)
	looseTextPattern = regexp.MustCompile(`[a-zA-Z0-9\s&;:#',./-]+<br/>`)
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
)

// Normalize canonicalizes break tags to "<br/>", removes newlines, and
// joins adjacent tags that the site sometimes separates with a stray
// space. Every other helper expects normalized input.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = brPattern.ReplaceAllString(s, "<br/>")
	s = strings.ReplaceAll(s, "> <", "><")
	return s
}

// WrapLooseText wraps bare text runs that end at a break tag in <div>
// elements so that field values become addressable nodes. "Jane Doe<br/>"
// becomes "<div>Jane Doe</div><br/>".
func WrapLooseText(s string) string {
	result := s
	seen := make(map[string]bool)
	for _, match := range looseTextPattern.FindAllString(s, -1) {
		trimmed := strings.TrimSpace(strings.TrimSuffix(match, "<br/>"))
		trimmed = strings.ReplaceAll(trimmed, "&nbsp;", "")
		if trimmed == "" || seen[match] {
			continue
		}
		seen[match] = true
		result = strings.ReplaceAll(result, match, "<div>"+trimmed+"</div><br/>")
	}
	return result
}

// SplitBlocks cuts a normalized profile body into section blocks. Major
// sections are separated by four consecutive breaks; the personal-info
// section further splits on double breaks, and the statistics section
// splits per closing table tag so each table lands in its own block.
func SplitBlocks(s string) []string {
	var blocks []string
	for _, big := range strings.Split(s, "<br/><br/><br/><br/>") {
		blocks = append(blocks, breakDown(big)...)
	}
	return blocks
}

func breakDown(s string) []string {
	switch {
	case strings.Contains(s, "DiveMeets #"):
		return strings.Split(s, "<br/><br/>")
	case strings.Contains(s, "Dive Statistics") && strings.Count(s, "</table>") > 1:
		var comps []string
		for _, c := range strings.Split(s, "</table>") {
			if c == "" {
				continue
			}
			comps = append(comps, c+"</table>")
		}
		return comps
	default:
		return []string{s}
	}
}

// Text strips all tags from an HTML fragment and unescapes entities.
func Text(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
