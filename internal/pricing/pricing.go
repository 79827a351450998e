// Package pricing implements the project cost estimator behind the
// pricing page. Estimates are computed from static configuration tables:
// fixed cost ranges summed per selection, then scaled by multipliers.
package pricing

import (
	"fmt"
	"math"
)

// CostRange is a low/high cost band in whole currency units.
type CostRange struct {
	Low  int `yaml:"low" json:"low"`
	High int `yaml:"high" json:"high"`
}

// ProjectType is a base engagement kind (marketing site, web app, ...).
type ProjectType struct {
	ID   string    `yaml:"id" json:"id"`
	Name string    `yaml:"name" json:"name"`
	Base CostRange `yaml:"base" json:"base"`
}

// Feature is an optional add-on with its own cost band.
type Feature struct {
	ID   string    `yaml:"id" json:"id"`
	Name string    `yaml:"name" json:"name"`
	Cost CostRange `yaml:"cost" json:"cost"`
}

// Multiplier scales the one-off subtotal (scale tier, timeline pressure).
type Multiplier struct {
	ID     string  `yaml:"id" json:"id"`
	Name   string  `yaml:"name" json:"name"`
	Factor float64 `yaml:"factor" json:"factor"`
}

// OngoingService is a recurring line item, priced monthly and never
// scaled by multipliers.
type OngoingService struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Monthly int    `yaml:"monthly" json:"monthly"`
}

// Tables holds the full pricing configuration.
type Tables struct {
	Currency     string           `yaml:"currency" json:"currency"`
	ProjectTypes []ProjectType    `yaml:"project_types" json:"project_types"`
	Features     []Feature        `yaml:"features" json:"features"`
	ScaleTiers   []Multiplier     `yaml:"scale_tiers" json:"scale_tiers"`
	Timelines    []Multiplier     `yaml:"timelines" json:"timelines"`
	Ongoing      []OngoingService `yaml:"ongoing" json:"ongoing"`
}

// Selection is what the visitor picked on the pricing page.
type Selection struct {
	ProjectType string   `json:"project_type"`
	Features    []string `json:"features"`
	ScaleTier   string   `json:"scale_tier,omitempty"`
	Timeline    string   `json:"timeline,omitempty"`
	Ongoing     []string `json:"ongoing,omitempty"`
}

// Estimate is the computed quote for a selection.
type Estimate struct {
	Currency   string  `json:"currency"`
	OneOffLow  int     `json:"one_off_low"`
	OneOffHigh int     `json:"one_off_high"`
	Monthly    int     `json:"monthly"`
	Multiplier float64 `json:"multiplier"`
}

// ValidationError reports a selection referencing an unknown table entry.
type ValidationError struct {
	Field string
	ID    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Field, e.ID)
}

// Validate checks that the tables themselves are sane: unique IDs,
// non-negative costs, positive multiplier factors. Run at startup so a
// bad content edit fails the deploy, not a visitor's estimate.
func (t *Tables) Validate() error {
	seen := map[string]bool{}
	for _, pt := range t.ProjectTypes {
		if pt.ID == "" {
			return fmt.Errorf("project type with empty id")
		}
		if seen["pt:"+pt.ID] {
			return fmt.Errorf("duplicate project type id %q", pt.ID)
		}
		seen["pt:"+pt.ID] = true
		if pt.Base.Low < 0 || pt.Base.High < pt.Base.Low {
			return fmt.Errorf("project type %q has an invalid base range", pt.ID)
		}
	}
	for _, f := range t.Features {
		if seen["f:"+f.ID] {
			return fmt.Errorf("duplicate feature id %q", f.ID)
		}
		seen["f:"+f.ID] = true
		if f.Cost.Low < 0 || f.Cost.High < f.Cost.Low {
			return fmt.Errorf("feature %q has an invalid cost range", f.ID)
		}
	}
	for _, m := range append(append([]Multiplier{}, t.ScaleTiers...), t.Timelines...) {
		if m.Factor <= 0 {
			return fmt.Errorf("multiplier %q has non-positive factor %v", m.ID, m.Factor)
		}
	}
	for _, o := range t.Ongoing {
		if o.Monthly < 0 {
			return fmt.Errorf("ongoing service %q has negative monthly cost", o.ID)
		}
	}
	if len(t.ProjectTypes) == 0 {
		return fmt.Errorf("no project types configured")
	}
	return nil
}

// Estimate computes the quote for a selection. The one-off subtotal is the
// base range plus each selected feature range, scaled by the product of the
// selected scale tier and timeline factors, rounded to whole currency
// units. Monthly services are summed separately and never multiplied.
func (t *Tables) Estimate(sel Selection) (Estimate, error) {
	pt, ok := t.projectType(sel.ProjectType)
	if !ok {
		return Estimate{}, &ValidationError{Field: "project type", ID: sel.ProjectType}
	}

	low, high := pt.Base.Low, pt.Base.High
	for _, id := range sel.Features {
		f, ok := t.feature(id)
		if !ok {
			return Estimate{}, &ValidationError{Field: "feature", ID: id}
		}
		low += f.Cost.Low
		high += f.Cost.High
	}

	factor := 1.0
	if sel.ScaleTier != "" {
		m, ok := findMultiplier(t.ScaleTiers, sel.ScaleTier)
		if !ok {
			return Estimate{}, &ValidationError{Field: "scale tier", ID: sel.ScaleTier}
		}
		factor *= m.Factor
	}
	if sel.Timeline != "" {
		m, ok := findMultiplier(t.Timelines, sel.Timeline)
		if !ok {
			return Estimate{}, &ValidationError{Field: "timeline", ID: sel.Timeline}
		}
		factor *= m.Factor
	}

	monthly := 0
	for _, id := range sel.Ongoing {
		o, ok := t.ongoing(id)
		if !ok {
			return Estimate{}, &ValidationError{Field: "ongoing service", ID: id}
		}
		monthly += o.Monthly
	}

	return Estimate{
		Currency:   t.Currency,
		OneOffLow:  roundCurrency(float64(low) * factor),
		OneOffHigh: roundCurrency(float64(high) * factor),
		Monthly:    monthly,
		Multiplier: factor,
	}, nil
}

func (t *Tables) projectType(id string) (ProjectType, bool) {
	for _, pt := range t.ProjectTypes {
		if pt.ID == id {
			return pt, true
		}
	}
	return ProjectType{}, false
}

func (t *Tables) feature(id string) (Feature, bool) {
	for _, f := range t.Features {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}

func (t *Tables) ongoing(id string) (OngoingService, bool) {
	for _, o := range t.Ongoing {
		if o.ID == id {
			return o, true
		}
	}
	return OngoingService{}, false
}

func findMultiplier(ms []Multiplier, id string) (Multiplier, bool) {
	for _, m := range ms {
		if m.ID == id {
			return m, true
		}
	}
	return Multiplier{}, false
}

func roundCurrency(v float64) int {
	return int(math.Round(v))
}
