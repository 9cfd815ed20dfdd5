package landedcost

// Summary aggregates every accumulated worksheet row, across all runs.
type Summary struct {
	Rows           int
	GoodsValue     float64
	Freight        float64
	DutiesAndTaxes float64
	OtherCharges   float64
	LandedCost     float64
}

func Summarize(items []Item) Summary {
	s := Summary{Rows: len(items)}

	for _, it := range items {
		s.GoodsValue += it.TotalPrice
		s.Freight += it.FreightCost
		s.DutiesAndTaxes += it.DutyAmount + it.TaxAmount
		s.OtherCharges += it.OtherCharges
		s.LandedCost += it.TotalLandedCost
	}

	return s
}
