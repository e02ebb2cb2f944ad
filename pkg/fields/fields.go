// Package fields converts the heterogeneous price, mileage and year text found
// in scraped listings into numbers.
//
// Prices and kilometres are deliberately asymmetric: an unparsable price is 0
// and callers must treat 0 as "no price", while an unparsable mileage is
// reported as absent because 0 km is a real value.
package fields

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

var (
	priceNoise = strings.NewReplacer(
		"€", "", "$", "", "£", "",
		"EUR", "", "eur", "", "Eur", "",
		".", "",
		" ", "", "\u00a0", "", "\t", "",
	)
	kmSuffix    = regexp.MustCompile(`(?i)\s*kms?\.?\s*$`)
	kmNoise     = strings.NewReplacer(".", "", ",", "", " ", "", "\u00a0", "", "\t", "")
	isoDateYear = regexp.MustCompile(`^(\d{4})-\d{1,2}-\d{1,2}`)
	slashYear   = regexp.MustCompile(`^\d{1,2}\s*/\s*\d{1,2}\s*/\s*(\d{4})$`)
)

// ParsePrice returns the numeric value of a price. Numbers pass through;
// strings are read in Spanish notation ("21.700,50 €"): currency markers,
// whitespace and dot thousands separators are removed and the decimal comma
// becomes a point. Anything unparsable, negative or non-finite yields 0.
func ParsePrice(v any) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0
	case string:
		s := priceNoise.Replace(strings.TrimSpace(n))
		s = strings.Replace(s, ",", ".", 1)
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case *string:
		if n == nil {
			return 0
		}
		return ParsePrice(*n)
	default:
		num, ok := toFloat(v)
		if !ok {
			return 0
		}
		f = num
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// ParseKilometers returns the mileage held in v. Numbers pass through
// (truncated to whole kilometres); strings lose a trailing "km", thousands
// separators and whitespace before integer parsing. ok is false when the
// value is missing or unparsable.
func ParseKilometers(v any) (km int, ok bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case string:
		s := kmSuffix.ReplaceAllString(strings.TrimSpace(n), "")
		s = kmNoise.Replace(s)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 0 {
			return 0, false
		}
		return parsed, true
	case *string:
		if n == nil {
			return 0, false
		}
		return ParseKilometers(*n)
	case *int:
		if n == nil || *n < 0 {
			return 0, false
		}
		return *n, true
	default:
		f, isNum := toFloat(v)
		if !isNum || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return 0, false
		}
		return int(f), true
	}
}

// ParseYear extracts a calendar year from a number, "2022", an ISO date
// ("2022-05-01") or a slash date ("14 / 04 / 2022").
func ParseYear(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, n > 0
	case int64:
		return int(n), n > 0
	case float64:
		if math.IsNaN(n) || n <= 0 {
			return 0, false
		}
		return int(n), true
	case string:
		s := strings.TrimSpace(n)
		if m := isoDateYear.FindStringSubmatch(s); m != nil {
			return atoiPositive(m[1])
		}
		if m := slashYear.FindStringSubmatch(s); m != nil {
			return atoiPositive(m[1])
		}
		return atoiPositive(s)
	default:
		return 0, false
	}
}

// Normalize fills the parsed Price and Mileage of a listing from its raw text.
func Normalize(l *domain.CompetitorListing) {
	l.Price = ParsePrice(l.PriceRaw)
	if km, ok := ParseKilometers(l.MileageRaw); ok {
		l.Mileage = &km
	} else {
		l.Mileage = nil
	}
}

// NormalizeAll applies Normalize to every listing in place.
func NormalizeAll(listings []domain.CompetitorListing) {
	for i := range listings {
		Normalize(&listings[i])
	}
}

func atoiPositive(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case *float64:
		if n == nil {
			return 0, false
		}
		return *n, true
	default:
		return 0, false
	}
}
