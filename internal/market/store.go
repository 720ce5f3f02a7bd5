package market

import (
	"sort"

	"github.com/kola-market/market-cli/internal/model"
)

// Store holds the validated dataset. All accessors return shared pointers
// into read-only data; callers must not mutate them.
type Store struct {
	holidays    []model.HolidayPeriod
	regionNames []string
	regions     map[string]*model.Region
	products    []model.Product
	byID        map[string]*model.Product
	weights     model.ScoringWeights
	params      model.BusinessParameters
	quarters    map[string]model.QuarterData
	economic    model.EconomicFactors
}

// Region returns the region with the given name, or nil when unknown.
func (s *Store) Region(name string) *model.Region {
	return s.regions[name]
}

// RegionNames returns region names in dataset order.
func (s *Store) RegionNames() []string {
	out := make([]string, len(s.regionNames))
	copy(out, s.regionNames)
	return out
}

// Regions returns all regions in dataset order.
func (s *Store) Regions() []*model.Region {
	out := make([]*model.Region, 0, len(s.regionNames))
	for _, name := range s.regionNames {
		out = append(out, s.regions[name])
	}
	return out
}

// RegionsByType returns all regions of the given type, in dataset order.
func (s *Store) RegionsByType(regionType string) []*model.Region {
	var out []*model.Region
	for _, name := range s.regionNames {
		if r := s.regions[name]; r.Type == regionType {
			out = append(out, r)
		}
	}
	return out
}

// Product returns the product with the given ID, or nil when unknown.
func (s *Store) Product(id string) *model.Product {
	return s.byID[id]
}

// Products returns all products in dataset order.
func (s *Store) Products() []*model.Product {
	out := make([]*model.Product, len(s.products))
	for i := range s.products {
		out[i] = &s.products[i]
	}
	return out
}

// ProductsByCategory returns all products in the given category.
func (s *Store) ProductsByCategory(category string) []*model.Product {
	var out []*model.Product
	for i := range s.products {
		if s.products[i].Category == category {
			out = append(out, &s.products[i])
		}
	}
	return out
}

// ProductsByQuarterPerformance returns products whose quarterly demand for
// the given quarter meets the threshold, strongest first.
func (s *Store) ProductsByQuarterPerformance(quarter string, threshold float64) []*model.Product {
	var out []*model.Product
	for i := range s.products {
		if s.products[i].QuarterlyDemandFor(quarter) >= threshold {
			out = append(out, &s.products[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].QuarterlyDemandFor(quarter) > out[j].QuarterlyDemandFor(quarter)
	})
	return out
}

// ImportedProducts returns all import-dependent products.
func (s *Store) ImportedProducts() []*model.Product {
	var out []*model.Product
	for i := range s.products {
		if s.products[i].ImportDependent {
			out = append(out, &s.products[i])
		}
	}
	return out
}

// LocalProducts returns all locally-sourced products.
func (s *Store) LocalProducts() []*model.Product {
	var out []*model.Product
	for i := range s.products {
		if !s.products[i].ImportDependent {
			out = append(out, &s.products[i])
		}
	}
	return out
}

// Holidays returns all configured holiday periods.
func (s *Store) Holidays() []model.HolidayPeriod {
	out := make([]model.HolidayPeriod, len(s.holidays))
	copy(out, s.holidays)
	return out
}

// Quarters returns the quarter table.
func (s *Store) Quarters() map[string]model.QuarterData {
	out := make(map[string]model.QuarterData, len(s.quarters))
	for k, v := range s.quarters {
		out[k] = v
	}
	return out
}

// Quarter returns the data for one quarter key.
func (s *Store) Quarter(key string) (model.QuarterData, bool) {
	q, ok := s.quarters[key]
	return q, ok
}

// Weights returns the scoring weights.
func (s *Store) Weights() model.ScoringWeights {
	return s.weights
}

// Params returns the business parameters.
func (s *Store) Params() model.BusinessParameters {
	return s.params
}

// Economic returns the configured macro-economic factors.
func (s *Store) Economic() model.EconomicFactors {
	return s.economic
}
