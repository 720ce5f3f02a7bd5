// Package recommender orchestrates scoring across the product catalogue:
// batch fan-out, ranking, quarterly optimization, cross-region comparison
// and report generation.
package recommender

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kola-market/market-cli/internal/market"
	"github.com/kola-market/market-cli/internal/model"
	"github.com/kola-market/market-cli/internal/scorer"
)

// ErrInvalidInput marks caller errors: unknown regions, out-of-range months,
// non-positive limits. Distinguish with IsInvalidInput.
var ErrInvalidInput = errors.New("invalid input")

// IsInvalidInput reports whether err stems from invalid caller input rather
// than an internal failure.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

const (
	// DefaultLimit is the recommendation count when the caller does not
	// specify one.
	DefaultLimit = 5

	defaultWorkers = 4
)

// representativeMonth maps each quarter to the month used for its analysis.
var representativeMonth = map[string]int{
	"Q1": 2,
	"Q2": 5,
	"Q3": 8,
	"Q4": 11,
}

// Config configures a Recommender.
type Config struct {
	Store *market.Store

	// Workers bounds the scoring fan-out. Defaults to 4.
	Workers int
}

// Recommender generates ranked product recommendations. Safe for concurrent
// use; all state is read-only after construction.
type Recommender struct {
	store   *market.Store
	flat    *scorer.Calculator
	season  *scorer.Calculator
	workers int
}

// New builds a recommender over a validated store. Two calculator views are
// constructed: the flat model for plain monthly recommendations, and the
// economic model for the quarterly operations.
func New(cfg Config) *Recommender {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	economic := cfg.Store.Economic()
	return &Recommender{
		store: cfg.Store,
		flat: scorer.New(scorer.Config{
			Holidays: cfg.Store.Holidays(),
			Weights:  cfg.Store.Weights(),
			Params:   cfg.Store.Params(),
			Quarters: cfg.Store.Quarters(),
		}),
		season: scorer.New(scorer.Config{
			Holidays: cfg.Store.Holidays(),
			Weights:  cfg.Store.Weights(),
			Params:   cfg.Store.Params(),
			Quarters: cfg.Store.Quarters(),
			Economic: &economic,
		}),
		workers: workers,
	}
}

// Score computes the score and analysis for a single product in a region.
func (r *Recommender) Score(productID, regionName string, month int) (float64, model.BusinessAnalysis, error) {
	region := r.store.Region(regionName)
	if region == nil {
		return 0, model.BusinessAnalysis{}, eris.Wrapf(ErrInvalidInput,
			"recommender: unknown region %q (available: %s)",
			regionName, strings.Join(r.store.RegionNames(), ", "))
	}
	product := r.store.Product(productID)
	if product == nil {
		return 0, model.BusinessAnalysis{}, eris.Wrapf(ErrInvalidInput, "recommender: unknown product %q", productID)
	}
	if month < 1 || month > 12 {
		return 0, model.BusinessAnalysis{}, eris.Wrapf(ErrInvalidInput, "recommender: month %d out of range 1-12", month)
	}
	return r.flat.Score(product, region, month)
}

// Recommend returns the top products for a region and month, sorted by
// score descending. Per-product scoring failures are logged and skipped;
// the result may be shorter than the limit.
func (r *Recommender) Recommend(ctx context.Context, regionName string, month, limit int) ([]model.Recommendation, error) {
	return r.recommend(ctx, r.flat, regionName, month, limit)
}

// RecommendQuarter returns recommendations optimized for one quarter using
// the economic score model. Products with strong quarterly demand receive an
// extra 10% boost before the final ranking.
func (r *Recommender) RecommendQuarter(ctx context.Context, regionName, quarter string, limit int) ([]model.Recommendation, error) {
	month, ok := representativeMonth[quarter]
	if !ok {
		return nil, eris.Wrapf(ErrInvalidInput, "recommender: unknown quarter %q", quarter)
	}

	recs, err := r.recommend(ctx, r.season, regionName, month, limit*2)
	if err != nil {
		return nil, err
	}

	for i := range recs {
		product := r.store.Product(recs[i].ProductID)
		if product != nil && product.QuarterlyDemandFor(quarter) > 1.1 {
			recs[i].BusinessScore = round2(recs[i].BusinessScore * 1.1)
		}
	}
	sortRecommendations(recs)

	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (r *Recommender) recommend(ctx context.Context, calc *scorer.Calculator, regionName string, month, limit int) ([]model.Recommendation, error) {
	region := r.store.Region(regionName)
	if region == nil {
		return nil, eris.Wrapf(ErrInvalidInput,
			"recommender: unknown region %q (available: %s)",
			regionName, strings.Join(r.store.RegionNames(), ", "))
	}
	if month < 1 || month > 12 {
		return nil, eris.Wrapf(ErrInvalidInput, "recommender: month %d out of range 1-12", month)
	}
	if limit <= 0 {
		return nil, eris.Wrapf(ErrInvalidInput, "recommender: limit must be positive, got %d", limit)
	}

	products := r.store.Products()
	results := make([]*model.Recommendation, len(products))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, product := range products {
		i, product := i, product
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := r.scoreOne(calc, product, region, month)
			if err != nil {
				// One malformed product must not fail the batch.
				zap.L().Warn("skipping product in batch scoring",
					zap.String("product", product.ID),
					zap.String("region", regionName),
					zap.Error(err),
				)
				return nil
			}
			results[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "recommender: batch scoring")
	}

	recs := make([]model.Recommendation, 0, len(results))
	for _, rec := range results {
		if rec != nil {
			recs = append(recs, *rec)
		}
	}
	sortRecommendations(recs)

	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// scoreOne wraps a single calculator call with panic recovery so a
// malformed product cannot take down the whole batch.
func (r *Recommender) scoreOne(calc *scorer.Calculator, product *model.Product, region *model.Region, month int) (rec *model.Recommendation, err error) {
	defer func() {
		if p := recover(); p != nil {
			rec = nil
			err = eris.Errorf("recommender: panic scoring %s: %v", product.ID, p)
		}
	}()

	score, analysis, err := calc.Score(product, region, month)
	if err != nil {
		return nil, err
	}

	return &model.Recommendation{
		ProductID:     product.ID,
		Product:       product.Name,
		Category:      model.DisplayName(product.Category),
		BusinessScore: round2(score),
		Analysis:      analysis,
		Ordinal:       product.Ordinal,
	}, nil
}

// sortRecommendations orders by score descending with the product's dataset
// ordinal as tie-breaker, so equal scores rank reproducibly.
func sortRecommendations(recs []model.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].BusinessScore != recs[j].BusinessScore {
			return recs[i].BusinessScore > recs[j].BusinessScore
		}
		return recs[i].Ordinal < recs[j].Ordinal
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
