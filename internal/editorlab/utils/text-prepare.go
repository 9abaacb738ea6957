package utils

import (
	"html"
	"strings"

	policy "github.com/aisa-it/editorlab/internal/editorlab/redactor-policy"
)

// PreviewLength длина превью экспорта в рунах.
const PreviewLength = 140

// Preview возвращает текст без разметки, блоки разделены переводом строки.
func Preview(body string) string {
	return Substr(PlainText(body), 0, PreviewLength)
}

func PlainText(body string) string {
	res := body
	for _, tag := range []string{"<p>", "<li>", "<h1>", "<h2>", "<h3>", "<h4>", "<h5>", "<h6>"} {
		res = strings.ReplaceAll(res, tag, "\n"+tag)
	}
	res = policy.StripTagsPolicy.Sanitize(res)
	// bluemonday escapes text
	res = html.UnescapeString(res)
	return strings.TrimSpace(res)
}

func Substr(input string, start int, length int) string {
	asRunes := []rune(input)

	if start >= len(asRunes) {
		return ""
	}

	if start+length > len(asRunes) {
		length = len(asRunes) - start
	}

	return string(asRunes[start : start+length])
}
