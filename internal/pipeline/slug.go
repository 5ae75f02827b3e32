package pipeline

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"unicode"

	"github.com/goliatone/go-slug"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const slugFallbackPrefix = "post-"

// slugCharMap transliterates Latin, Greek and Cyrillic letters and common
// symbols ("&" -> "and", "€" -> "euro").
var slugCharMap = loadSlugCharMap()

func loadSlugCharMap() map[string]string {
	m, err := slug.GetCharMap()
	if err != nil {
		return map[string]string{}
	}
	return m
}

// GenerateSlug turns a title into a URL-safe identifier: lowercase ASCII
// letters and digits joined by single hyphens. Titles that reduce to nothing
// get a stable "post-<hash>" slug. An empty title yields an empty slug.
func GenerateSlug(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}

	hyphenated := strings.Map(func(r rune) rune {
		if isSlugRune(r) {
			return r
		}
		return '-'
	}, strings.ToLower(transliterate(title)))

	s, err := slug.Normalize(hyphenated)
	if err != nil {
		sum := sha1.Sum([]byte(title))
		return slugFallbackPrefix + hex.EncodeToString(sum[:])[:8]
	}
	return s
}

// IsValidSlug reports whether s has the shape GenerateSlug produces.
func IsValidSlug(s string) bool {
	return s == strings.TrimSpace(s) && slug.IsValid(s)
}

// transliterate folds compatibility forms (ligatures, fullwidth letters),
// maps letters and symbols through the slug char map, turns non-ASCII
// decimal digits into ASCII ones and drops the remaining combining marks.
func transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFKC.String(s) {
		if v, ok := slugCharMap[string(r)]; ok {
			if unicode.IsLetter(r) {
				b.WriteString(v)
			} else {
				// symbols become words of their own
				b.WriteString(" " + v + " ")
			}
			continue
		}
		if d, ok := asciiDigit(r); ok {
			b.WriteRune(d)
			continue
		}
		b.WriteRune(r)
	}
	return stripDiacritics(b.String())
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// asciiDigit maps a decimal digit of any script to '0'..'9'. Unicode lays
// every Nd script out as a contiguous run starting at zero.
func asciiDigit(r rune) (rune, bool) {
	if r <= unicode.MaxASCII || !unicode.Is(unicode.Nd, r) {
		return 0, false
	}
	n := 0
	for unicode.Is(unicode.Nd, r-rune(n)-1) {
		n++
	}
	return '0' + rune(n%10), true
}

func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
