// Package warranty computes the extended warranty a dealer must contract so
// that every vehicle it sells is covered for a fixed period after sale.
package warranty

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

// Coverage windows, in months.
const (
	FactoryMonths  = 36
	SafetyMargin   = 6
	CoverageMonths = 24
)

// Premium models (engine badge 30 and above) carry a surcharge.
const (
	PremiumThreshold = 30
	PremiumSurcharge = 1.10
)

// Detail strings for quotes that carry no cost.
const (
	DetailNoRegistration = "no registration date"
	DetailFactoryCovers  = "factory covers everything"
)

const daysPerMonth = 30

var badgePattern = regexp.MustCompile(`(?i)(\d{2,})[a-z]`)

// tier maps an upper bound of contracted months to its base cost.
type tier struct {
	maxMonths int
	cost      float64
}

var tiers = []tier{
	{maxMonths: 12, cost: 600},
	{maxMonths: 18, cost: 900},
	{maxMonths: CoverageMonths, cost: 1200},
}

// Calculate returns the warranty quote for a vehicle registered on
// registration, sold on today. The factory warranty is assumed to run
// FactoryMonths from registration; we stop relying on it SafetyMargin months
// early and must cover the buyer for CoverageMonths from today.
//
// Months to contract are counted in 30-day blocks from the later of the
// margin-adjusted factory end and today, so the result never exceeds
// CoverageMonths. Counting from the factory end alone would report more than
// CoverageMonths once that date has passed, months the buyer can never use.
// The cost is unaffected because the top tier already spans everything above
// 18 months, so Months and Detail only differ for those older cars, where
// they report the cover actually bought.
func Calculate(registration *time.Time, today time.Time, model string) domain.WarrantyQuote {
	if registration == nil || registration.IsZero() {
		return domain.WarrantyQuote{Detail: DetailNoRegistration}
	}

	reg := dateOnly(*registration)
	now := dateOnly(today)

	factoryEnd := reg.AddDate(0, FactoryMonths, 0).AddDate(0, -SafetyMargin, 0)
	ourEnd := now.AddDate(0, CoverageMonths, 0)

	if !ourEnd.After(factoryEnd) {
		return domain.WarrantyQuote{Detail: DetailFactoryCovers}
	}

	start := factoryEnd
	if now.After(start) {
		start = now
	}

	days := int(math.Round(ourEnd.Sub(start).Hours() / 24))
	months := min((days+daysPerMonth-1)/daysPerMonth, CoverageMonths)

	cost := tierCost(months)
	premium := IsPremium(model)
	detail := fmt.Sprintf("%dm", months)
	if premium {
		cost = math.Round(cost * PremiumSurcharge)
		detail += " +10%"
	}

	return domain.WarrantyQuote{
		Months:  months,
		Cost:    cost,
		Premium: premium,
		Detail:  detail,
	}
}

// IsPremium reports whether the first engine badge in the model text (digits
// followed by a letter, e.g. "530d" or "M340i") has a numeric part of at
// least PremiumThreshold.
func IsPremium(model string) bool {
	m := badgePattern.FindStringSubmatch(model)
	if m == nil {
		return false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}
	return n >= PremiumThreshold
}

func tierCost(months int) float64 {
	for _, t := range tiers {
		if months <= t.maxMonths {
			return t.cost
		}
	}
	return tiers[len(tiers)-1].cost
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
