// Package testutil provides shared test infrastructure for the simulation
// packages: the golden dataset of formula cases and assertion helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one product and company state with the derived values
// expected for it.
type GoldenTestCase struct {
	Name string `json:"name"`

	// Software inputs
	Customers                     uint32 `json:"customers"`
	CapacityPercentageActiveUsers int    `json:"capacity_percentage_active_users"`
	ComplexityOfCode              int    `json:"complexity_of_code"`
	Components                    uint16 `json:"components"`
	Services                      uint16 `json:"services"`
	EaseOfUse                     int    `json:"ease_of_use"`
	FeatureRichness               int    `json:"feature_richness"`
	TechnicalDebt                 int    `json:"technical_debt"`
	Reliability                   int    `json:"reliability"`
	Releases                      int    `json:"releases"`
	LastRelease                   string `json:"last_release"`
	Current                       string `json:"current"`

	// Company inputs: skill of each developer
	DeveloperSkills []int `json:"developer_skills"`

	Expected GoldenMetrics `json:"expected"`
}

// GoldenMetrics holds the expected derived values of a golden test case.
type GoldenMetrics struct {
	// Exact match metrics (integers)
	Quality          int  `json:"quality"`
	UsabilityFactor  uint `json:"usability_factor"`
	MarketPopularity uint `json:"market_popularity"`

	// Floating-point metrics
	DevelopmentCapacity float64 `json:"development_capacity"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("Golden dataset has no tests")
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
