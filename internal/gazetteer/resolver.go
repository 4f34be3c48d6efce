package gazetteer

import (
	"math"
	"regexp"
	"strings"
)

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// Resolver matches free-text queries and coordinate pairs against a
// gazetteer. It holds no state beyond the injected table.
type Resolver struct {
	gaz *Gazetteer
}

// NewResolver creates a resolver over the given gazetteer.
func NewResolver(g *Gazetteer) *Resolver {
	return &Resolver{gaz: g}
}

// Resolve finds the best gazetteer match for a query, or nil.
//
// Six-digit queries resolve by pincode only. Everything else is tried in
// order: exact name match, name substring, then region/country substring.
// The first matching record in document order wins.
func (r *Resolver) Resolve(query string) *LocationRecord {
	records := r.gaz.Records()

	if pincodePattern.MatchString(query) {
		for i := range records {
			if records[i].Pincode == query {
				return &records[i]
			}
		}
		return nil
	}

	q := strings.ToLower(query)

	for i := range records {
		if strings.ToLower(records[i].Name) == q {
			return &records[i]
		}
	}
	for i := range records {
		if strings.Contains(strings.ToLower(records[i].Name), q) {
			return &records[i]
		}
	}
	for i := range records {
		if strings.Contains(strings.ToLower(records[i].Region), q) ||
			strings.Contains(strings.ToLower(records[i].Country), q) {
			return &records[i]
		}
	}

	return nil
}

// ResolveByCoordinates returns the record closest to (lat, lon) by Euclidean
// distance in degree space. Records without coordinates are skipped; ties go
// to the earlier record. Returns nil only when no record has coordinates.
func (r *Resolver) ResolveByCoordinates(lat, lon float64) *LocationRecord {
	records := r.gaz.Records()

	var closest *LocationRecord
	minDist := math.Inf(1)

	for i := range records {
		rec := &records[i]
		if rec.Lat == nil || rec.Lon == nil {
			continue
		}
		d := math.Sqrt(math.Pow(lat-*rec.Lat, 2) + math.Pow(lon-*rec.Lon, 2))
		if d < minDist {
			minDist = d
			closest = rec
		}
	}

	return closest
}

// FilterByCountry returns all records for a country, in document order.
func (r *Resolver) FilterByCountry(country string) []LocationRecord {
	var out []LocationRecord
	for _, rec := range r.gaz.Records() {
		if rec.Country == country {
			out = append(out, rec)
		}
	}
	return out
}
