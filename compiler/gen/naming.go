package gen

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Add common initialisms from OData/HTTP land.
	for _, w := range []string{"API", "HTTP", "ID", "JSON", "REST", "SKU", "TOS", "UI", "URI", "URL", "UUID", "XML"} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// pluralize returns the plural form of the given word.
func pluralize(s string) string {
	return rules.Pluralize(s)
}

// singularize returns the singular form of the given word.
func singularize(s string) string {
	return rules.Singularize(s)
}

// pascal converts the given name into a PascalCase identifier.
func pascal(s string) string {
	words := splitName(s)
	var b strings.Builder
	for _, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			b.WriteString(upper)
			continue
		}
		b.WriteString(rules.Capitalize(w))
	}
	return b.String()
}

// camel converts the given name into a camelCase identifier.
func camel(s string) string {
	words := splitName(s)
	if len(words) == 0 {
		return s
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			b.WriteString(upper)
			continue
		}
		b.WriteString(rules.Capitalize(w))
	}
	return b.String()
}

// snake converts the given name into a snake_case identifier.
func snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Put a underscore if the current letter is uppercase and the
		// previous one is lowercase, or the next one is lowercase while
		// we are inside an uppercase run (end of an acronym).
		if i > 0 && unicode.IsUpper(r) {
			switch {
			case unicode.IsLower(rune(s[i-1])), unicode.IsDigit(rune(s[i-1])):
				b.WriteByte('_')
				j = i
			case i+1 < len(s) && unicode.IsLower(rune(s[i+1])) && j != i-1:
				b.WriteByte('_')
				j = i
			}
		}
		if r == '.' || r == '-' || r == ' ' {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// splitName breaks an identifier into its words: on separators and on
// lower-to-upper case boundaries.
func splitName(s string) []string {
	var (
		words []string
		start int
	)
	flush := func(end int) {
		if end > start {
			words = append(words, s[start:end])
		}
		start = end
	}
	for i := 0; i < len(s); i++ {
		switch r := rune(s[i]); {
		case r == '_' || r == '.' || r == '-' || r == ' ':
			flush(i)
			start = i + 1
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(rune(s[i-1])):
			flush(i)
		case unicode.IsUpper(r) && i+1 < len(s) && unicode.IsLower(rune(s[i+1])) && i > start:
			flush(i)
		}
	}
	flush(len(s))
	return words
}
