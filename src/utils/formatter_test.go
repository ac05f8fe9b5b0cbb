package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assertion := assert.New(t)

	formatter := Formatter{}

	assertion.Equal(44.91, formatter.FormatPrice(44.910000000000004))
	assertion.Equal(45.11, formatter.FormatPrice(45.1096))
	assertion.Equal(135.00, formatter.FormatPrice(135.0))
}

func TestFormatHedgeQuantity(t *testing.T) {
	assertion := assert.New(t)

	formatter := Formatter{}

	assertion.Equal(0.004, formatter.FormatHedgeQuantity(0.0039388))
	assertion.Equal(0.03, formatter.FormatHedgeQuantity(0.001*30))
	assertion.Equal(0.01, formatter.FormatHedgeQuantity(0.009847))
}

func TestToFixed(t *testing.T) {
	assertion := assert.New(t)

	formatter := Formatter{}

	assertion.Equal(6.5975, formatter.ToFixed(6.59749, 4))
	assertion.Equal(45.0, formatter.ToFixed(45.0001, 2))
}
