package store

import (
	"fmt"
	"strings"
)

const (
	defaultListingLimit = 200
	maxListingLimit     = 1000

	defaultVehicleLimit = 1000
	maxVehicleLimit     = 10000
)

const baseListingsSelect = `SELECT id, COALESCE(source, ''), model, COALESCE(brand, ''),
	COALESCE(price, ''), COALESCE(km, ''), model_year, first_registration,
	status, first_detected_at, price_drops, price_drop_total,
	COALESCE(advertiser, ''), COALESCE(url, '')
FROM competitor_listings`

// listingYearExpr prefers the advertised model year and falls back to the
// year of first registration.
const listingYearExpr = "COALESCE(model_year, EXTRACT(YEAR FROM first_registration)::int)"

// listingKmExpr reads the digits out of the free-text km column.
const listingKmExpr = "NULLIF(regexp_replace(km, '[^0-9]', '', 'g'), '')::bigint"

const baseVehiclesSelect = `SELECT id, COALESCE(license_plate, ''), COALESCE(brand, ''), model,
	COALESCE(series, ''), registration_date, mileage,
	net_source_price, damage_cost, new_price,
	COALESCE(tax_regime, ''), COALESCE(lot, '')
FROM vehicles`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ToSQL builds the listing query and its positional parameters.
func (q *ListingQuery) ToSQL() (string, []any) {
	var (
		conditions []string
		args       []any
	)
	param := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if term := strings.TrimSpace(q.ModelContains); term != "" {
		conditions = append(conditions, "model ILIKE "+param("%"+likeEscaper.Replace(term)+"%"))
	}

	if len(q.Statuses) > 0 {
		placeholders := make([]string, len(q.Statuses))
		for i, s := range q.Statuses {
			placeholders[i] = param(string(s))
		}
		conditions = append(conditions, fmt.Sprintf(
			"status IN (%s)", strings.Join(placeholders, ", "),
		))
	}

	if q.Years != nil {
		conditions = append(conditions, fmt.Sprintf(
			"%s BETWEEN %s AND %s", listingYearExpr, param(q.Years.Min), param(q.Years.Max),
		))
	}

	if q.Km != nil {
		conditions = append(conditions, fmt.Sprintf(
			"%s BETWEEN %s AND %s", listingKmExpr, param(q.Km.Min), param(q.Km.Max),
		))
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := clampLimit(q.Limit, defaultListingLimit, maxListingLimit)

	return fmt.Sprintf(
		"%s%s ORDER BY first_detected_at DESC NULLS LAST, id LIMIT %d",
		baseListingsSelect, whereClause, limit,
	), args
}

// ToSQL builds the vehicle query and its positional parameters.
func (q *VehicleQuery) ToSQL() (string, []any) {
	var (
		conditions []string
		args       []any
	)

	if q.Lot != nil {
		args = append(args, *q.Lot)
		conditions = append(conditions, fmt.Sprintf("lot = $%d", len(args)))
	}
	if q.Brand != nil {
		args = append(args, *q.Brand)
		conditions = append(conditions, fmt.Sprintf("brand ILIKE $%d", len(args)))
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := clampLimit(q.Limit, defaultVehicleLimit, maxVehicleLimit)

	return fmt.Sprintf("%s%s ORDER BY id LIMIT %d", baseVehiclesSelect, whereClause, limit), args
}

func clampLimit(limit, def, maxLimit int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, maxLimit)
}
