package landedcost_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/landed/internal/landedcost"
)

func TestSummarize(t *testing.T) {
	items := []landedcost.Item{
		{TotalPrice: 50, FreightCost: 20, DutyAmount: 7, TaxAmount: 7.7, TotalLandedCost: 84.7},
		{TotalPrice: 10, FreightCost: 2, DutyAmount: 1, TaxAmount: 0.5, OtherCharges: 3, TotalLandedCost: 16.5},
	}

	got := landedcost.Summarize(items)

	assert.Equal(t, 2, got.Rows)
	assert.InDelta(t, 60, got.GoodsValue, delta)
	assert.InDelta(t, 22, got.Freight, delta)
	assert.InDelta(t, 16.2, got.DutiesAndTaxes, delta)
	assert.InDelta(t, 3, got.OtherCharges, delta)
	assert.InDelta(t, 101.2, got.LandedCost, delta)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, landedcost.Summary{}, landedcost.Summarize(nil))
}
