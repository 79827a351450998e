package pricing

import (
	"errors"
	"testing"
)

func testTables() *Tables {
	return &Tables{
		Currency: "USD",
		ProjectTypes: []ProjectType{
			{ID: "marketing-site", Name: "Marketing Website", Base: CostRange{Low: 4000, High: 8000}},
			{ID: "web-app", Name: "Web Application", Base: CostRange{Low: 15000, High: 40000}},
		},
		Features: []Feature{
			{ID: "cms", Name: "Content Management", Cost: CostRange{Low: 1500, High: 3000}},
			{ID: "ecommerce", Name: "E-commerce", Cost: CostRange{Low: 3000, High: 7000}},
			{ID: "seo", Name: "SEO Package", Cost: CostRange{Low: 500, High: 1500}},
		},
		ScaleTiers: []Multiplier{
			{ID: "small", Name: "Up to 10 pages", Factor: 1.0},
			{ID: "large", Name: "30+ pages", Factor: 1.5},
		},
		Timelines: []Multiplier{
			{ID: "standard", Name: "Standard", Factor: 1.0},
			{ID: "rush", Name: "Rush (under 4 weeks)", Factor: 1.25},
		},
		Ongoing: []OngoingService{
			{ID: "hosting", Name: "Managed Hosting", Monthly: 75},
			{ID: "maintenance", Name: "Maintenance Retainer", Monthly: 400},
		},
	}
}

func TestEstimateBaseOnly(t *testing.T) {
	tables := testTables()

	est, err := tables.Estimate(Selection{ProjectType: "marketing-site"})
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	if est.OneOffLow != 4000 || est.OneOffHigh != 8000 {
		t.Errorf("Expected 4000-8000, got %d-%d", est.OneOffLow, est.OneOffHigh)
	}
	if est.Monthly != 0 {
		t.Errorf("Expected no monthly cost, got %d", est.Monthly)
	}
	if est.Multiplier != 1.0 {
		t.Errorf("Expected multiplier 1.0, got %v", est.Multiplier)
	}
}

func TestEstimateFeaturesAndMultipliers(t *testing.T) {
	tables := testTables()

	est, err := tables.Estimate(Selection{
		ProjectType: "marketing-site",
		Features:    []string{"cms", "seo"},
		ScaleTier:   "large",
		Timeline:    "rush",
		Ongoing:     []string{"hosting", "maintenance"},
	})
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	// (4000+1500+500) * 1.5 * 1.25 = 11250
	if est.OneOffLow != 11250 {
		t.Errorf("Expected one-off low 11250, got %d", est.OneOffLow)
	}
	// (8000+3000+1500) * 1.5 * 1.25 = 23437.5 -> 23438
	if est.OneOffHigh != 23438 {
		t.Errorf("Expected one-off high 23438, got %d", est.OneOffHigh)
	}
	if est.Monthly != 475 {
		t.Errorf("Expected monthly 475, got %d", est.Monthly)
	}
	if est.Multiplier != 1.875 {
		t.Errorf("Expected multiplier 1.875, got %v", est.Multiplier)
	}
}

func TestEstimateMonthlyNotMultiplied(t *testing.T) {
	tables := testTables()

	est, err := tables.Estimate(Selection{
		ProjectType: "web-app",
		Timeline:    "rush",
		Ongoing:     []string{"maintenance"},
	})
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	if est.Monthly != 400 {
		t.Errorf("Monthly cost must not be scaled by multipliers: got %d", est.Monthly)
	}
}

func TestEstimateUnknownIDs(t *testing.T) {
	tables := testTables()

	cases := []struct {
		name string
		sel  Selection
		id   string
	}{
		{"project type", Selection{ProjectType: "mobile-app"}, "mobile-app"},
		{"feature", Selection{ProjectType: "web-app", Features: []string{"blockchain"}}, "blockchain"},
		{"scale tier", Selection{ProjectType: "web-app", ScaleTier: "galactic"}, "galactic"},
		{"timeline", Selection{ProjectType: "web-app", Timeline: "yesterday"}, "yesterday"},
		{"ongoing", Selection{ProjectType: "web-app", Ongoing: []string{"concierge"}}, "concierge"},
	}

	for _, c := range cases {
		_, err := tables.Estimate(c.sel)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %v", c.name, err)
			continue
		}
		if verr.ID != c.id {
			t.Errorf("%s: expected offending id %q, got %q", c.name, c.id, verr.ID)
		}
	}
}

func TestTablesValidate(t *testing.T) {
	tables := testTables()
	if err := tables.Validate(); err != nil {
		t.Fatalf("valid tables rejected: %v", err)
	}

	bad := testTables()
	bad.Features = append(bad.Features, Feature{ID: "cms", Name: "Duplicate"})
	if err := bad.Validate(); err == nil {
		t.Error("duplicate feature id not caught")
	}

	bad = testTables()
	bad.Timelines[1].Factor = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero multiplier factor not caught")
	}

	bad = testTables()
	bad.ProjectTypes[0].Base = CostRange{Low: 5000, High: 4000}
	if err := bad.Validate(); err == nil {
		t.Error("inverted cost range not caught")
	}
}
