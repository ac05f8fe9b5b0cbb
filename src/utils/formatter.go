package utils

import "math"

type Formatter struct {
}

func (m *Formatter) Round(num float64) int {
	return int(num + math.Copysign(0.5, num))
}

func (m *Formatter) ToFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return float64(m.Round(num*output)) / output
}

// Stock leg prices carry two decimals.
func (m *Formatter) FormatPrice(price float64) float64 {
	return m.ToFixed(price, 2)
}

// Crypto hedge quantities carry three decimals.
func (m *Formatter) FormatHedgeQuantity(quantity float64) float64 {
	return m.ToFixed(quantity, 3)
}
