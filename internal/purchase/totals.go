package purchase

// taxRatePercent is the fixed consumption tax rate applied to the
// aggregate tax-exclusive total.
const taxRatePercent = 10

// withTax applies the tax rate to the aggregate, rounding half up. Tax is
// rounded once on the final total, never per line.
func withTax(exTax int64) int64 {
	return (exTax*(100+taxRatePercent) + 50) / 100
}
