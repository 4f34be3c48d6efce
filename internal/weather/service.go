package weather

import (
	"context"
	"errors"
	"log"

	"github.com/mausamlabs/mausam/internal/gazetteer"
	"github.com/mausamlabs/mausam/internal/provider"
)

// Source is the upstream weather boundary the pipeline fetches through.
type Source interface {
	Fetch(ctx context.Context, loc *gazetteer.LocationRecord, query string) (provider.Payload, error)
}

// Service runs the resolution and normalization pipeline: resolve the query
// locally, fetch raw data (or fall back to synthetic generation), normalize
// into the canonical record. Recoverable provider failures never reach the
// caller; the user always gets a fully-formed record or ErrLocationNotFound.
type Service struct {
	resolver *gazetteer.Resolver
	source   Source
	norm     *Normalizer
	gen      *Generator
}

func NewService(gaz *gazetteer.Gazetteer, source Source, gen *Generator) *Service {
	return &Service{
		resolver: gazetteer.NewResolver(gaz),
		source:   source,
		norm:     NewNormalizer(),
		gen:      gen,
	}
}

// Search resolves a free-text query (city, partial name, region, or 6-digit
// pincode) and produces the canonical record for it.
func (s *Service) Search(ctx context.Context, query string) (Record, error) {
	matched := s.resolver.Resolve(query)

	payload, err := s.source.Fetch(ctx, matched, query)
	if err != nil {
		switch {
		case errors.Is(err, provider.ErrNotFound):
			// Free-text rejected upstream: surface it, no silent substitute.
			return Record{}, ErrLocationNotFound
		case errors.Is(err, provider.ErrConfigMissing):
			// Expected in unconfigured deployments; not worth logging per query.
		case errors.Is(err, provider.ErrAuthRejected):
			log.Printf("weather: provider rejected credential; serving synthetic data")
		default:
			log.Printf("weather: provider fetch failed: %v; serving synthetic data", err)
		}
		return s.synthetic(query, matched), nil
	}

	return s.assemble(payload, matched), nil
}

// SearchByCoordinates produces the canonical record for a coordinate pair,
// typically a geolocation callback. The provider is queried with the exact
// coordinates; the gazetteer match contributes naming and the synthetic
// baseline when the provider is unavailable.
func (s *Service) SearchByCoordinates(ctx context.Context, lat, lon float64) (Record, error) {
	matched := s.resolver.ResolveByCoordinates(lat, lon)

	probe := &gazetteer.LocationRecord{Lat: &lat, Lon: &lon}
	if matched != nil {
		probe.Name = matched.Name
	}

	payload, err := s.source.Fetch(ctx, probe, "")
	if err != nil {
		if !errors.Is(err, provider.ErrConfigMissing) {
			log.Printf("weather: provider fetch failed for (%f, %f): %v; serving synthetic data", lat, lon, err)
		}
		if matched != nil {
			return s.gen.Generate(matched), nil
		}
		return s.gen.GenerateAt(lat, lon), nil
	}

	return s.assemble(payload, matched), nil
}

// Resolve exposes local gazetteer resolution to callers that only need the
// record, e.g. the favorites API.
func (s *Service) Resolve(query string) *gazetteer.LocationRecord {
	return s.resolver.Resolve(query)
}

func (s *Service) assemble(payload provider.Payload, matched *gazetteer.LocationRecord) Record {
	rec := s.norm.Normalize(payload, matched)
	if payload.ForecastMissing || len(rec.Forecast.Forecastday) == 0 {
		// Real current conditions, synthesized forecast.
		rec.Forecast = s.gen.ForecastFromCurrent(rec.Location, rec.Current)
	}
	return rec
}

// synthetic picks the generation path for a text query. An unmatched query
// falls back to a pseudo-random Indian location rather than erroring: the
// provider was unreachable, so there is nothing authoritative to contradict.
func (s *Service) synthetic(query string, matched *gazetteer.LocationRecord) Record {
	if matched == nil {
		matched = s.gen.RandomLocation(s.resolver, "India")
	}
	if matched == nil {
		// Empty gazetteer; generate for an anonymous inland point.
		return s.gen.GenerateAt(20.59, 78.96)
	}
	return s.gen.Generate(matched)
}
