// Политики санитайзинга HTML, который выдает экспортер.
//
// Основные возможности:
//   - ExportPolicy пропускает только теги экспортера и цвет текста в span.
//   - StripTagsPolicy удаляет всю разметку, используется для превью.
package policy

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var StripTagsPolicy *bluemonday.Policy = bluemonday.StrictPolicy()
var ExportPolicy *bluemonday.Policy = bluemonday.NewPolicy()

var colorRegexp = regexp.MustCompile(`^(#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|rgba?\(\s*\d+\s*,\s*\d+\s*,\s*\d+\s*(,\s*[\d.]+\s*)?\)|[a-zA-Z]+)$`)

func init() {
	ExportPolicy.AllowElements("p", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li", "strong", "em", "u", "span")
	ExportPolicy.AllowStyles("color").Matching(colorRegexp).OnElements("span")
}

// Sanitize прогоняет разметку экспортера через ExportPolicy.
func Sanitize(html string) string {
	return ExportPolicy.Sanitize(html)
}
