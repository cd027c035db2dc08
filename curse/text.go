package curse

import (
	"slices"
	"strings"
)

// plainText renders an HTML fragment as plain text: tags are dropped, block
// boundaries become line breaks and lines are word-wrapped to maxLineLength.
// This is deliberately minimal; it is not an HTML sanitizer.
func plainText(html string, maxLineLength int) string {
	text := stripTags(html)

	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, wrap(strings.TrimSpace(line), maxLineLength)...)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

var blockTags = []string{"p", "br", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6"}

func stripTags(html string) string {
	var b strings.Builder
	b.Grow(len(html))

	for {
		open := strings.IndexByte(html, '<')
		if open < 0 {
			b.WriteString(html)
			break
		}
		end := strings.IndexByte(html[open:], '>')
		if end < 0 {
			b.WriteString(html)
			break
		}
		b.WriteString(html[:open])
		tag := strings.ToLower(strings.Trim(html[open+1:open+end], "/ "))
		if name, _, _ := strings.Cut(tag, " "); slices.Contains(blockTags, name) {
			// Adjacent block tags mark a single break.
			if s := b.String(); s != "" && s[len(s)-1] != '\n' {
				b.WriteByte('\n')
			}
		}
		html = html[open+end+1:]
	}

	text := b.String()
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&quot;", "\"")
	text = strings.ReplaceAll(text, "&amp;", "&")
	return text
}

// wrap splits line into pieces no longer than width, breaking at spaces where
// possible. Words longer than width are kept whole on their own line.
func wrap(line string, width int) []string {
	if line == "" {
		return []string{""}
	}

	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(line) {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}
		if current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			continue
		}
		current.WriteByte(' ')
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
