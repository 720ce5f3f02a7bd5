// Package market loads and serves the market dataset: regions, products,
// holiday periods, quarters, scoring weights and business parameters. The
// dataset is parsed once, validated eagerly and read-only afterwards, so
// concurrent scoring calls can share it without synchronization.
package market

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/kola-market/market-cli/internal/model"
)

// Dataset is the on-disk document shape. Regions, products and holidays are
// lists so the file order is preserved; that order is the tie-breaker for
// equal scores.
type Dataset struct {
	HolidayPeriods     []model.HolidayPeriod        `yaml:"holiday_periods"`
	Regions            []model.Region               `yaml:"regions"`
	Products           []model.Product              `yaml:"products"`
	ScoringWeights     *model.ScoringWeights        `yaml:"scoring_weights"`
	BusinessParameters *model.BusinessParameters    `yaml:"business_parameters"`
	Quarters           map[string]model.QuarterData `yaml:"quarters"`
	EconomicFactors    *model.EconomicFactors       `yaml:"economic_factors"`
}

// LoadFile reads a dataset document from a YAML file and returns a validated
// store.
func LoadFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "market: read dataset %s", path)
	}
	return Parse(raw)
}

// Parse decodes a YAML dataset document and returns a validated store.
func Parse(raw []byte) (*Store, error) {
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, eris.Wrap(err, "market: parse dataset")
	}
	return NewStore(ds)
}

// NewStore validates a dataset and builds the read-only store. Optional
// sections (quarters, economic factors) fall back to the built-in defaults.
func NewStore(ds Dataset) (*Store, error) {
	if len(ds.HolidayPeriods) == 0 {
		return nil, eris.New("market: missing required section: holiday_periods")
	}
	if len(ds.Regions) == 0 {
		return nil, eris.New("market: missing required section: regions")
	}
	if len(ds.Products) == 0 {
		return nil, eris.New("market: missing required section: products")
	}
	if ds.ScoringWeights == nil {
		return nil, eris.New("market: missing required section: scoring_weights")
	}
	if ds.BusinessParameters == nil {
		return nil, eris.New("market: missing required section: business_parameters")
	}

	if ds.Quarters == nil {
		ds.Quarters = defaultQuarters()
	}
	if ds.EconomicFactors == nil {
		ds.EconomicFactors = defaultEconomicFactors()
	}
	if ds.BusinessParameters.QuarterlyDemandNormalization == 0 {
		ds.BusinessParameters.QuarterlyDemandNormalization = defaultQuarterlyDemandNormalization
	}

	for i := range ds.Products {
		ds.Products[i].Ordinal = i
	}

	if err := validate(&ds); err != nil {
		return nil, err
	}

	s := &Store{
		holidays: ds.HolidayPeriods,
		regions:  make(map[string]*model.Region, len(ds.Regions)),
		products: ds.Products,
		byID:     make(map[string]*model.Product, len(ds.Products)),
		weights:  *ds.ScoringWeights,
		params:   *ds.BusinessParameters,
		quarters: ds.Quarters,
		economic: *ds.EconomicFactors,
	}
	for i := range ds.Regions {
		s.regionNames = append(s.regionNames, ds.Regions[i].Name)
		s.regions[ds.Regions[i].Name] = &ds.Regions[i]
	}
	for i := range s.products {
		s.byID[s.products[i].ID] = &s.products[i]
	}
	return s, nil
}
