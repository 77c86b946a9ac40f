// Package tmpl provides the placeholder templates used to reconstruct
// interpolated string literals. The stored text of an f-string replaces
// each "{expr}" interpolation with an indexed placeholder; printing
// substitutes independently rendered expressions back into the template.
package tmpl

import (
	"fmt"
	"strings"
)

const placeholderFormat = "{__pyrite_fstring_val_%d__}"

// Placeholder returns the template marker for the i-th interpolated value.
func Placeholder(i int) string {
	return fmt.Sprintf(placeholderFormat, i)
}

// Replace substitutes values into the template's placeholders by ordinal
// position. The template is split on all placeholder occurrences before
// any substitution happens, so a value containing placeholder-like text
// can never be re-matched by a later substitution.
func Replace(template string, values []string) string {
	var sb strings.Builder
	rest := template
	for i, val := range values {
		marker := Placeholder(i)
		idx := strings.Index(rest, marker)
		if idx < 0 {
			// No slot for this value; keep the remaining template as-is.
			break
		}
		sb.WriteString(rest[:idx])
		sb.WriteString(val)
		rest = rest[idx+len(marker):]
	}
	sb.WriteString(rest)
	return sb.String()
}
