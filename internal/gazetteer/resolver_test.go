package gazetteer

import "testing"

func f(v float64) *float64 { return &v }

func testGazetteer() *Gazetteer {
	return New([]LocationRecord{
		{Name: "Mumbai", Region: "Maharashtra", Country: "India", Pincode: "400001", Type: TypeCity, Lat: f(19.0760), Lon: f(72.8777)},
		{Name: "Delhi", Region: "Delhi", Country: "India", Pincode: "110001", Type: TypeCity, Lat: f(28.7041), Lon: f(77.1025)},
		{Name: "Manali", Region: "Himachal Pradesh", Country: "India", Pincode: "175131", Type: TypeTown, Lat: f(32.2396), Lon: f(77.1887)},
		{Name: "Navi Mumbai", Region: "Maharashtra", Country: "India", Pincode: "400614", Type: TypeCity, Lat: f(19.0330), Lon: f(73.0297)},
		{Name: "London", Region: "England", Country: "United Kingdom", Type: TypeCity, Lat: f(51.5074), Lon: f(-0.1278)},
		{Name: "Nowhere", Region: "Nomansland", Country: "Atlantis", Type: TypeVillage},
	})
}

func TestResolveByPincode(t *testing.T) {
	r := NewResolver(testGazetteer())

	rec := r.Resolve("400001")
	if rec == nil || rec.Name != "Mumbai" {
		t.Fatalf("expected Mumbai for pincode 400001, got %+v", rec)
	}

	// A six-digit query must never fall through to name/region matching.
	if rec := r.Resolve("999999"); rec != nil {
		t.Fatalf("expected no match for unknown pincode, got %+v", rec)
	}
}

func TestResolveNameMatching(t *testing.T) {
	r := NewResolver(testGazetteer())

	tests := []struct {
		query string
		want  string
	}{
		{"Mumbai", "Mumbai"},         // exact beats substring (Navi Mumbai)
		{"mumbai", "Mumbai"},         // case-insensitive
		{"navi", "Navi Mumbai"},      // name substring
		{"himachal", "Manali"},       // region substring
		{"united kingdom", "London"}, // country substring
	}
	for _, tt := range tests {
		rec := r.Resolve(tt.query)
		if rec == nil || rec.Name != tt.want {
			t.Errorf("Resolve(%q) = %+v, want %s", tt.query, rec, tt.want)
		}
	}

	if rec := r.Resolve("Shangri-La"); rec != nil {
		t.Errorf("expected no match for unknown place, got %+v", rec)
	}
}

func TestNonNumericQueryNeverMatchesPincode(t *testing.T) {
	r := NewResolver(testGazetteer())

	// "40000" is five digits: it must go through name/region matching and
	// find nothing, not match Mumbai's pincode as a prefix.
	if rec := r.Resolve("40000"); rec != nil {
		t.Fatalf("expected no match for partial pincode, got %+v", rec)
	}
}

func TestResolveByCoordinates(t *testing.T) {
	r := NewResolver(testGazetteer())

	rec := r.ResolveByCoordinates(19.08, 72.88)
	if rec == nil || rec.Name != "Mumbai" {
		t.Fatalf("expected Mumbai nearest to (19.08, 72.88), got %+v", rec)
	}

	rec = r.ResolveByCoordinates(32.24, 77.19)
	if rec == nil || rec.Name != "Manali" {
		t.Fatalf("expected Manali nearest to (32.24, 77.19), got %+v", rec)
	}
}

func TestResolveByCoordinatesSkipsRecordsWithoutCoords(t *testing.T) {
	r := NewResolver(New([]LocationRecord{
		{Name: "Nowhere", Region: "Nomansland", Country: "Atlantis"},
	}))
	if rec := r.ResolveByCoordinates(0, 0); rec != nil {
		t.Fatalf("expected nil with no coordinate-bearing records, got %+v", rec)
	}
}

func TestEmptyGazetteer(t *testing.T) {
	r := NewResolver(New(nil))
	if rec := r.Resolve("Mumbai"); rec != nil {
		t.Fatalf("expected nil from empty gazetteer, got %+v", rec)
	}
	if rec := r.ResolveByCoordinates(19, 72); rec != nil {
		t.Fatalf("expected nil from empty gazetteer, got %+v", rec)
	}
}

func TestLoadEmbeddedTable(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() == 0 {
		t.Fatal("embedded gazetteer is empty")
	}

	r := NewResolver(g)
	rec := r.Resolve("400001")
	if rec == nil || rec.Name != "Mumbai" {
		t.Fatalf("expected Mumbai from embedded table, got %+v", rec)
	}
}
