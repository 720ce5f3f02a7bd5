package scorer

import "github.com/kola-market/market-cli/internal/model"

// costBasis is the per-call view of a product's cost figures. The economic
// model adjusts these for currency movement and inflation; the flat model
// passes the configured prices through. Either way the shared product
// record is never written.
type costBasis struct {
	costPrice     float64
	margin        float64
	profitPerUnit float64
	velocity      float64
}

// currencyQuarterAdjust holds the quarter-indexed adjustment applied to the
// configured USD/GHS rate before converting import costs.
var currencyQuarterAdjust = map[string]float64{
	"Q1": 1.02,
	"Q2": 0.99,
	"Q3": 1.03,
	"Q4": 0.98,
}

// localInflationDampening reflects that locally produced goods track
// inflation less tightly than imports.
const localInflationDampening = 0.7

// fallbackInflationDampening applies when a product has no base cost
// configured at all.
const fallbackInflationDampening = 0.5

func (c *Calculator) costBasisFor(product *model.Product, quarter string) costBasis {
	cost := product.CostPrice
	if c.economic != nil {
		cost = c.adjustedCost(product, quarter)
	}

	return costBasis{
		costPrice:     cost,
		margin:        (product.SellingPrice - cost) / cost,
		profitPerUnit: product.SellingPrice - cost,
		velocity:      product.SaleVelocityPerMonth(),
	}
}

func (c *Calculator) adjustedCost(product *model.Product, quarter string) float64 {
	inflation := c.economic.InflationFor(quarter)

	switch {
	case product.ImportDependent && product.BaseCostUSD != nil:
		rate := c.economic.USDToCedisRate
		if adj, ok := currencyQuarterAdjust[quarter]; ok {
			rate *= adj
		}
		return *product.BaseCostUSD * rate * (1 + inflation)

	case product.BaseCostCedis != nil:
		return *product.BaseCostCedis * (1 + inflation*localInflationDampening)

	default:
		return product.CostPrice * (1 + inflation*fallbackInflationDampening)
	}
}
