package search

import (
	"strconv"
	"strings"
)

const (
	DefaultRadiusKm = 10.0
	PageSize        = 20
	earthRadiusKm   = 6371.0
)

// Filters are the options of a dorm search. Geo ranking is active only
// when both Lat and Lng are set. PriceMin 0 means no lower bound and a nil
// PriceMax means no upper bound.
type Filters struct {
	Lat               *float64 `json:"lat"`
	Lng               *float64 `json:"lng"`
	RadiusKm          float64  `json:"radius"`
	PriceMin          float64  `json:"priceMin"`
	PriceMax          *float64 `json:"priceMax"`
	HasAvailableRooms bool     `json:"hasAvailableRooms"`
}

// Normalize fills in defaults.
func (f Filters) Normalize() Filters {
	if f.RadiusKm <= 0 {
		f.RadiusKm = DefaultRadiusKm
	}
	if f.PriceMin < 0 {
		f.PriceMin = 0
	}
	return f
}

func (f Filters) geo() bool {
	return f.Lat != nil && f.Lng != nil
}

// Query is a parameterized statement. Placeholders are '?' and Args are in
// placeholder order.
type Query struct {
	SQL  string
	Args []interface{}
}

type predicate struct {
	sql  string
	args []interface{}
}

func where(preds []predicate) (string, []interface{}) {
	if len(preds) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(preds))
	var args []interface{}
	for _, p := range preds {
		parts = append(parts, p.sql)
		args = append(args, p.args...)
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// distanceColumn is the haversine distance from the search point to the
// dorm in km. The cosine is clamped to [-1, 1] so rounding never pushes
// acos out of its domain. Bound as lat, lng, lat.
const distanceColumn = `6371 * acos(LEAST(1.0, GREATEST(-1.0,
			cos(radians(?)) * cos(radians(d.lat)) *
			cos(radians(d.long) - radians(?)) +
			sin(radians(?)) * sin(radians(d.lat))
		))) AS distance_km`

const summaryColumns = `
		d.dorm_id,
		d.dorm_name,
		d.address,
		d.prov,
		d.dist,
		d.subdist,
		d.avg_score,
		d.likes,
		d.medias,
		d.lat,
		d.long,
		MIN(rt.rent_per_month) AS min_price,
		COUNT(DISTINCT r.room_id) AS available_rooms_count`

const summaryJoins = `
	FROM dorms d
	LEFT JOIN room_types rt ON d.dorm_id = rt.dorm_id
	LEFT JOIN rooms r ON rt.room_type_id = r.room_type_id AND r.status = 'available'`

// Build assembles the search statement for f. Price bounds narrow the room
// types before aggregation; availability and radius filter the aggregated
// rows.
func Build(f Filters) Query {
	f = f.Normalize()

	var (
		sb   strings.Builder
		args []interface{}
	)

	sb.WriteString("SELECT * FROM (\n\tSELECT")
	sb.WriteString(summaryColumns)
	if f.geo() {
		sb.WriteString(",\n\t\t")
		sb.WriteString(distanceColumn)
		args = append(args, *f.Lat, *f.Lng, *f.Lat)
	}
	sb.WriteString(summaryJoins)

	var inner []predicate
	if f.PriceMin > 0 {
		inner = append(inner, predicate{"rt.rent_per_month >= ?", []interface{}{f.PriceMin}})
	}
	if f.PriceMax != nil {
		inner = append(inner, predicate{"rt.rent_per_month <= ?", []interface{}{*f.PriceMax}})
	}
	clause, clauseArgs := where(inner)
	sb.WriteString(clause)
	args = append(args, clauseArgs...)
	sb.WriteString("\n\tGROUP BY d.dorm_id\n) AS dorms_with_details")

	var outer []predicate
	if f.HasAvailableRooms {
		outer = append(outer, predicate{sql: "available_rooms_count > 0"})
	}
	if f.geo() {
		outer = append(outer, predicate{"distance_km <= ?", []interface{}{f.RadiusKm}})
	}
	clause, clauseArgs = where(outer)
	sb.WriteString(clause)
	args = append(args, clauseArgs...)

	if f.geo() {
		sb.WriteString(" ORDER BY distance_km ASC, dorm_id ASC")
	} else {
		sb.WriteString(" ORDER BY avg_score DESC, likes DESC, dorm_id ASC")
	}
	sb.WriteString(" LIMIT " + strconv.Itoa(PageSize))

	return Query{SQL: sb.String(), Args: args}
}
