// Package parsing turns uploaded resume files into structured candidate data
// ready for the import pipeline.
package parsing

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var multiSpace = regexp.MustCompile(`\s+`)
var excessBlankLines = regexp.MustCompile(`\n\n\n+`)

// ExtractText produces plain resume text from an uploaded file. HTML resumes
// are stripped to their visible text; .txt and .md are taken as-is. Binary
// formats are rejected here rather than fed to the extractor.
func ExtractText(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return extractHTMLText(string(data))
	case ".txt", ".md", "":
		return CleanText(string(data)), nil
	default:
		return "", &ParseError{Message: fmt.Sprintf("unsupported resume format %q: use .txt, .md or .html", filepath.Ext(filename))}
	}
}

func extractHTMLText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", &ParseError{Message: "failed to parse HTML resume", Cause: err}
	}

	doc.Find("script, style, noscript").Remove()

	// block elements would otherwise run together in Text()
	doc.Find("p, h1, h2, h3, h4, h5, h6, li, tr, div, br").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		// fragments without a <body> still carry text at the document level
		text = doc.Text()
	}

	return CleanText(text), nil
}

// CleanText normalizes line endings, collapses runs of spaces inside lines and
// reduces runs of blank lines, without discarding line structure the extractor
// relies on (section headings, one bullet per line).
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			line = multiSpace.ReplaceAllString(line, " ")
		}
		cleaned = append(cleaned, line)
	}

	result := strings.Join(cleaned, "\n")
	result = excessBlankLines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
