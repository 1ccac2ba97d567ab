package domain

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// ExcerptLength is the number of runes kept in a derived excerpt.
	ExcerptLength = 160
	// NewsSlugMax caps slugs derived from news titles.
	NewsSlugMax = 100
	// SlugMax caps every other derived slug.
	SlugMax = 120

	ellipsis = "..."
)

// Slugify lowercases s, strips diacritics ("Peñablanca" becomes
// "penablanca"), drops anything that is not a letter, digit, space or
// hyphen, and joins the words with single hyphens. The result is cut to
// max runes (max <= 0 means no limit).
func Slugify(s string, max int) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	pendingHyphen := false
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingHyphen = true
		}
	}

	slug := b.String()
	if max > 0 && len(slug) > max {
		slug = strings.TrimRight(slug[:max], "-")
	}
	return slug
}

// PlainText extracts the text nodes of an HTML fragment and collapses whitespace.
func PlainText(fragment string) string {
	tokenizer := html.NewTokenizerFragment(strings.NewReader(fragment), "body")

	var b strings.Builder
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break // io.EOF, or a malformed tail: keep what was read
		}
		if tt == html.TextToken {
			b.Write(tokenizer.Text())
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Excerpt returns the first n runes of the plain text of fragment,
// followed by "..." when the text was longer.
func Excerpt(fragment string, n int) string {
	text := PlainText(fragment)
	cut := Trunc(text, n)
	if len(cut) < len(text) {
		return cut + ellipsis
	}
	return cut
}

// Trunc cuts s to at most n runes.
func Trunc(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
