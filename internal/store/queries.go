package store

// SQL query constants organized by entity.
// Listing and vehicle list queries are built by ToSQL; everything else
// lives here.

// Vehicle queries.
const (
	queryGetVehicle = baseVehiclesSelect + ` WHERE id = $1`

	queryUpsertVehicle = `
		INSERT INTO vehicles (
			id, license_plate, brand, model, series,
			registration_date, mileage,
			net_source_price, damage_cost, new_price,
			tax_regime, lot, updated_at
		) VALUES (
			@id, @license_plate, @brand, @model, @series,
			@registration_date, @mileage,
			@net_source_price, @damage_cost, @new_price,
			@tax_regime, @lot, now()
		)
		ON CONFLICT (id) DO UPDATE SET
			license_plate = EXCLUDED.license_plate,
			brand = EXCLUDED.brand,
			model = EXCLUDED.model,
			series = EXCLUDED.series,
			registration_date = EXCLUDED.registration_date,
			mileage = EXCLUDED.mileage,
			net_source_price = EXCLUDED.net_source_price,
			damage_cost = EXCLUDED.damage_cost,
			new_price = EXCLUDED.new_price,
			tax_regime = EXCLUDED.tax_regime,
			lot = EXCLUDED.lot,
			updated_at = now()`
)

// Competitor listing queries.
const (
	queryInsertListing = `
		INSERT INTO competitor_listings (
			source, model, brand, price, km, model_year, first_registration,
			status, first_detected_at, price_drops, price_drop_total,
			advertiser, url
		) VALUES (
			@source, @model, @brand, @price, @km, @model_year, @first_registration,
			@status, @first_detected_at, @price_drops, @price_drop_total,
			@advertiser, @url
		)
		RETURNING id`
)

// Stock queries.
const (
	queryListAvailableStock = `
		SELECT model, COALESCE(brand, ''), recommended_sale_price
		FROM stock
		WHERE state IN ($1, $2)
		ORDER BY model`

	queryInsertStock = `
		INSERT INTO stock (license_plate, model, brand, state, recommended_sale_price)
		VALUES (@license_plate, @model, @brand, @state, @recommended_sale_price)`
)
