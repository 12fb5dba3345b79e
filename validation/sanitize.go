package validation

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Política de sanitização: apenas tags estruturais básicas, sem atributos.
var sanitizePolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br",
		"b", "strong", "i", "em", "u",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li",
		"blockquote",
	)
	return p
}()

// SanitizeText remove toda marcação fora da lista de tags permitidas
// e todos os atributos. Entrada vazia volta vazia.
func SanitizeText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(sanitizePolicy.Sanitize(s))
}
