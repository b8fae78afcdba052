package aggregate

// Result collects every aggregate a run produced. A nil table means the
// analysis was not computable for this dataset (logged by the orchestrator);
// callers must check rather than assume presence.
type Result struct {
	TopQuantity *TopTable
	TopSales    *TopTable
	ABC         *ABCTable
	Daily       *DailyTable
	Monthly     *MonthlyTable
	Territory   *TerritoryTable
	Prices      *PriceDist

	// Lines maps product_code to its product_line label for chart and log
	// labeling.
	Lines map[string]string
}
