// Package sanitize очищает пользовательский HTML, оставляя только базовое форматирование.
package sanitize

import "github.com/microcosm-cc/bluemonday"

// AllowedTags - теги, которые переживают очистку. Атрибуты не допускаются.
var AllowedTags = []string{"b", "i", "strong", "em", "p", "br"}

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(AllowedTags...)
	return p
}

// Content возвращает html без тегов и атрибутов вне AllowedTags.
// Содержимое script и style удаляется целиком.
func Content(html string) string {
	return policy.Sanitize(html)
}
