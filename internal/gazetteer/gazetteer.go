package gazetteer

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SettlementType classifies a gazetteer entry.
type SettlementType string

const (
	TypeCity     SettlementType = "city"
	TypeTown     SettlementType = "town"
	TypeVillage  SettlementType = "village"
	TypeDistrict SettlementType = "district"
)

// LocationRecord is a single static gazetteer entry. Records are read-only
// after load. Names are not unique; region/country disambiguate.
type LocationRecord struct {
	Name    string         `yaml:"name" json:"name"`
	Region  string         `yaml:"region" json:"region"`
	Country string         `yaml:"country" json:"country"`
	Pincode string         `yaml:"pincode,omitempty" json:"pincode,omitempty"`
	Type    SettlementType `yaml:"type" json:"type"`
	Lat     *float64       `yaml:"lat,omitempty" json:"lat,omitempty"`
	Lon     *float64       `yaml:"lon,omitempty" json:"lon,omitempty"`
}

//go:embed locations.yaml
var locationsYAML []byte

// Gazetteer holds the ordered, immutable location table. It is loaded once at
// startup and passed into consumers; iteration order is document order.
type Gazetteer struct {
	records []LocationRecord
}

// New builds a gazetteer from an explicit record list (used by tests).
func New(records []LocationRecord) *Gazetteer {
	return &Gazetteer{records: records}
}

// Load parses the embedded location table.
func Load() (*Gazetteer, error) {
	var doc struct {
		Locations []LocationRecord `yaml:"locations"`
	}
	if err := yaml.Unmarshal(locationsYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse embedded gazetteer: %w", err)
	}
	return &Gazetteer{records: doc.Locations}, nil
}

// Records returns the full ordered record list. Callers must not mutate it.
func (g *Gazetteer) Records() []LocationRecord {
	return g.records
}

// Len returns the number of records.
func (g *Gazetteer) Len() int {
	return len(g.records)
}
