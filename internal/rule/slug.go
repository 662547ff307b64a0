package rule

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// SlugExistsFunc reports whether a candidate slug is already taken in the target table.
type SlugExistsFunc func(ctx context.Context, slug string) (bool, error)

// Slugify turns a display name into its URL-safe base slug.
// "Men's Shoes" becomes "mens-shoes"; accents are folded to ASCII.
func Slugify(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}

	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, folded)

	s := slugStrip.ReplaceAllString(strings.ToLower(ascii), "")
	s = slugCollapse.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "-_")
}

// UniqueSlug derives the base slug from name and appends -1, -2, ... until exists reports
// an unused candidate. One existence query is issued per candidate.
func UniqueSlug(ctx context.Context, name string, exists SlugExistsFunc) (string, error) {
	base := Slugify(name)
	if base == "" {
		return "", newError(UniquenessViolation, "slug", fmt.Sprintf("cannot derive a slug from name %q", name))
	}

	candidate := base
	for i := 1; ; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
