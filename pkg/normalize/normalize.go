// Package normalize turns free-text vehicle model names into the ordered list
// of search strings used to find comparable market listings.
package normalize

import (
	"regexp"
	"strings"
)

var (
	// seriesPrefix matches a leading "Serie 3", "Series 5", "Série 1" or a
	// platform code such as "G20" / "F30".
	seriesPrefix = regexp.MustCompile(`(?i)^(?:(?:seri(?:e|es)|s[ée]rie)\s+\d+|[efgu]\d{2})\s+`)
	versionToken = regexp.MustCompile(`(?i)\bM?\d{2,3}[a-z]+\b`)
)

// knownMakes are brands that may appear as the first word of a model text
// without being supplied separately.
var knownMakes = map[string]struct{}{
	"alfa": {}, "audi": {}, "bmw": {}, "citroen": {}, "cupra": {}, "dacia": {},
	"fiat": {}, "ford": {}, "honda": {}, "hyundai": {}, "jaguar": {}, "jeep": {},
	"kia": {}, "lexus": {}, "mazda": {}, "mercedes": {}, "mercedes-benz": {},
	"mini": {}, "mitsubishi": {}, "nissan": {}, "opel": {}, "peugeot": {},
	"porsche": {}, "renault": {}, "seat": {}, "skoda": {}, "tesla": {},
	"toyota": {}, "volkswagen": {}, "volvo": {}, "vw": {},
}

// Variants returns the candidate search strings for a model, most specific
// first. A blank model yields nil. The output order is the search priority:
//
//  1. the whitespace-collapsed model as given;
//  2. the model with leading brand words removed;
//  3. that text without a leading series or platform code, brand-prefixed
//     and then bare;
//  4. brand-prefixed forms of every variant above that lacks the prefix.
//
// Duplicates are dropped case-insensitively, keeping the first spelling.
func Variants(model, brand string) []string {
	base := collapse(model)
	if base == "" {
		return nil
	}

	brands := brandCandidates(base, collapse(brand))
	out := newOrderedSet()
	out.add(base)

	stripped := stripBrands(base, brands)
	out.add(stripped)

	if bare := stripSeries(stripped); bare != "" && !strings.EqualFold(bare, stripped) {
		for _, b := range brands {
			out.add(withBrand(bare, b))
		}
		out.add(bare)
	}

	for _, v := range out.items() {
		for _, b := range brands {
			out.add(withBrand(v, b))
		}
	}

	return out.items()
}

// VersionTokens extracts engine/trim badges such as "320d" or "M135i" from
// the given variants, in first-seen order without duplicates.
func VersionTokens(variants []string) []string {
	out := newOrderedSet()
	for _, v := range variants {
		for _, tok := range versionToken.FindAllString(v, -1) {
			out.add(tok)
		}
	}
	return out.items()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// brandCandidates returns the explicit brand followed by a make inferred from
// the first word of the model text.
func brandCandidates(model, brand string) []string {
	var out []string
	if brand != "" {
		out = append(out, brand)
	}

	first, _, _ := strings.Cut(model, " ")
	if _, ok := knownMakes[strings.ToLower(first)]; ok && !strings.EqualFold(first, brand) {
		out = append(out, first)
	}
	return out
}

func stripBrands(s string, brands []string) string {
	for {
		changed := false
		for _, b := range brands {
			if hasBrandPrefix(s, b) {
				s = strings.TrimSpace(s[len(b):])
				changed = true
			}
		}
		if !changed || s == "" {
			return s
		}
	}
}

func stripSeries(s string) string {
	for {
		next := seriesPrefix.ReplaceAllString(s, "")
		if next == s {
			return s
		}
		s = next
	}
}

func hasBrandPrefix(s, brand string) bool {
	if len(s) <= len(brand) || !strings.EqualFold(s[:len(brand)], brand) {
		return false
	}
	return s[len(brand)] == ' '
}

func withBrand(s, brand string) string {
	if s == "" || strings.EqualFold(s, brand) || hasBrandPrefix(s, brand) {
		return s
	}
	return brand + " " + s
}

// orderedSet keeps insertion order and ignores case when checking membership.
type orderedSet struct {
	seen map[string]struct{}
	list []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (o *orderedSet) add(s string) {
	if s == "" {
		return
	}
	key := strings.ToLower(s)
	if _, ok := o.seen[key]; ok {
		return
	}
	o.seen[key] = struct{}{}
	o.list = append(o.list, s)
}

func (o *orderedSet) items() []string {
	return append([]string(nil), o.list...)
}
