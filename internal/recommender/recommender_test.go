package recommender

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kola-market/market-cli/internal/market"
	"github.com/kola-market/market-cli/internal/model"
)

func testRecommender(t *testing.T) *Recommender {
	t.Helper()
	return New(Config{Store: market.Default()})
}

// twoProductDataset trims the bundled dataset down to one region and two
// products for truncation tests.
func twoProductDataset() market.Dataset {
	full := market.Default()

	regions := []model.Region{*full.Region("Accra")}
	products := []model.Product{*full.Product("rice_imported"), *full.Product("palm_oil_local")}
	weights := full.Weights()
	params := full.Params()
	economic := full.Economic()

	return market.Dataset{
		HolidayPeriods:     full.Holidays(),
		Regions:            regions,
		Products:           products,
		ScoringWeights:     &weights,
		BusinessParameters: &params,
		Quarters:           full.Quarters(),
		EconomicFactors:    &economic,
	}
}

func TestScoreSingleProduct(t *testing.T) {
	rec := testRecommender(t)

	score, analysis, err := rec.Score("rice_imported", "Accra", 12)
	require.NoError(t, err)

	assert.Greater(t, score, 0.0)
	assert.LessOrEqual(t, score, 10.0)
	assert.NotEmpty(t, analysis.Reasoning)
	assert.Equal(t, 12.0, analysis.Financial.SellingPrice)
}

func TestScoreRejectsUnknownInputs(t *testing.T) {
	rec := testRecommender(t)

	_, _, err := rec.Score("rice_imported", "Atlantis", 6)
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
	assert.Contains(t, err.Error(), "Atlantis")
	assert.Contains(t, err.Error(), "Accra") // lists available regions

	_, _, err = rec.Score("unobtainium", "Accra", 6)
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))

	_, _, err = rec.Score("rice_imported", "Accra", 13)
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
}

func TestRecommendRanksDescending(t *testing.T) {
	rec := testRecommender(t)

	recs, err := rec.Recommend(context.Background(), "Accra", 12, 8)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].BusinessScore, recs[i].BusinessScore,
			"recommendations must be sorted by score descending")
	}
	for _, r := range recs {
		assert.NotEmpty(t, r.ProductID)
		assert.NotEmpty(t, r.Analysis.Reasoning)
	}
}

func TestRecommendRespectsLimit(t *testing.T) {
	rec := testRecommender(t)

	recs, err := rec.Recommend(context.Background(), "Kumasi", 6, 3)
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	// Asking for more than the catalogue holds returns everything scorable.
	recs, err = rec.Recommend(context.Background(), "Kumasi", 6, 50)
	require.NoError(t, err)
	assert.Len(t, recs, 8)
}

func TestRecommendReturnsFewerThanLimitWhenCatalogueIsSmall(t *testing.T) {
	ds := twoProductDataset()
	store, err := market.NewStore(ds)
	require.NoError(t, err)
	rec := New(Config{Store: store})

	recs, err := rec.Recommend(context.Background(), "Accra", 6, 3)
	require.NoError(t, err)
	assert.Len(t, recs, 2, "three requested, two in the catalogue")
}

func TestRecommendUnknownRegionFailsLoudly(t *testing.T) {
	rec := testRecommender(t)

	recs, err := rec.Recommend(context.Background(), "Atlantis", 6, 5)
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
	assert.Nil(t, recs, "an unknown region must error, never return an empty ranking")
}

func TestRecommendRejectsBadLimitAndMonth(t *testing.T) {
	rec := testRecommender(t)

	_, err := rec.Recommend(context.Background(), "Accra", 0, 5)
	assert.True(t, IsInvalidInput(err))

	_, err = rec.Recommend(context.Background(), "Accra", 6, 0)
	assert.True(t, IsInvalidInput(err))

	_, err = rec.Recommend(context.Background(), "Accra", 6, -1)
	assert.True(t, IsInvalidInput(err))
}

func TestRecommendIsDeterministic(t *testing.T) {
	rec := testRecommender(t)

	first, err := rec.Recommend(context.Background(), "Tamale", 9, 8)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := rec.Recommend(context.Background(), "Tamale", 9, 8)
		require.NoError(t, err)
		assert.Equal(t, first, again, "repeated runs must produce identical rankings")
	}
}

func TestRecommendHonorsCancelledContext(t *testing.T) {
	rec := testRecommender(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rec.Recommend(ctx, "Accra", 6, 5)
	assert.Error(t, err)
}

func TestRecommendQuarter(t *testing.T) {
	rec := testRecommender(t)

	recs, err := rec.RecommendQuarter(context.Background(), "Accra", "Q4", 5)
	require.NoError(t, err)
	require.Len(t, recs, 5)

	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].BusinessScore, recs[i].BusinessScore)
	}

	_, err = rec.RecommendQuarter(context.Background(), "Accra", "Q5", 5)
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
}

func TestRecommendQuarterBoostsSeasonalWinners(t *testing.T) {
	rec := testRecommender(t)
	ctx := context.Background()

	// Kente accessories carry Q4 demand 1.8 and Q3 demand 0.7. The quarterly
	// ranking should treat them very differently across those quarters.
	q4, err := rec.RecommendQuarter(ctx, "Kumasi", "Q4", 8)
	require.NoError(t, err)
	q3, err := rec.RecommendQuarter(ctx, "Kumasi", "Q3", 8)
	require.NoError(t, err)

	q4Rank, q3Rank := -1, -1
	for i, r := range q4 {
		if r.ProductID == "kente_accessories" {
			q4Rank = i
		}
	}
	for i, r := range q3 {
		if r.ProductID == "kente_accessories" {
			q3Rank = i
		}
	}
	require.GreaterOrEqual(t, q4Rank, 0)
	require.GreaterOrEqual(t, q3Rank, 0)
	assert.Less(t, q4Rank, q3Rank, "kente should rank higher in Q4 than in Q3")
}

func TestSortRecommendationsTieBreaksOnOrdinal(t *testing.T) {
	recs := []model.Recommendation{
		{ProductID: "b", BusinessScore: 7.5, Ordinal: 3},
		{ProductID: "a", BusinessScore: 7.5, Ordinal: 1},
		{ProductID: "c", BusinessScore: 9.0, Ordinal: 5},
	}

	sortRecommendations(recs)

	assert.Equal(t, "c", recs[0].ProductID)
	assert.Equal(t, "a", recs[1].ProductID, "equal scores fall back to dataset order")
	assert.Equal(t, "b", recs[2].ProductID)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 7.13, round2(7.125))
	assert.Equal(t, 7.12, round2(7.1249))
	assert.Equal(t, 0.0, round2(0))
}
