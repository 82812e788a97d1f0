package world

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.English)

// Words that start with a vowel letter but take "a".
var articleExceptions = []string{"unicorn"}

// WithIndefiniteArticle prefixes s with "a" or "an".
func WithIndefiniteArticle(s string, capitalized bool) string {
	article := "a"
	if s != "" && strings.ContainsRune("aeiou", rune(strings.ToLower(s)[0])) {
		article = "an"
		lower := strings.ToLower(s)
		for _, ex := range articleExceptions {
			if strings.HasPrefix(lower, ex) {
				article = "a"
				break
			}
		}
	}
	if capitalized {
		article = Capitalize(article)
	}
	return article + " " + s
}

// Capitalize upper-cases the first letter only.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return upper.String(string(r)) + s[size:]
}

// CollectionString joins names as English prose: "a", "a and b", "a, b, and c".
func CollectionString(names []string, articles bool) string {
	parts := make([]string, len(names))
	for i, n := range names {
		if articles {
			parts[i] = WithIndefiniteArticle(n, false)
		} else {
			parts[i] = n
		}
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
	}
}
