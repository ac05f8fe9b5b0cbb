package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validAlgoParameters() AlgoParameters {
	return AlgoParameters{
		Broker:          "935",
		Account:         "84855",
		Symbol:          "BITH11",
		Side:            "BUY",
		Quantity:        200,
		SpreadThreshold: 0.002,
	}
}

func TestValidParametersPassValidation(t *testing.T) {
	assertion := assert.New(t)

	assertion.Nil(validAlgoParameters().Validate())
}

func TestEveryRequiredParameterIsValidated(t *testing.T) {
	assertion := assert.New(t)

	testCases := []struct {
		field  string
		mutate func(p *AlgoParameters)
	}{
		{"broker", func(p *AlgoParameters) { p.Broker = "" }},
		{"account", func(p *AlgoParameters) { p.Account = "" }},
		{"symbol", func(p *AlgoParameters) { p.Symbol = "" }},
		{"side", func(p *AlgoParameters) { p.Side = "" }},
		{"quantity", func(p *AlgoParameters) { p.Quantity = 0 }},
		{"spread_threshold", func(p *AlgoParameters) { p.SpreadThreshold = 0 }},
	}

	for _, testCase := range testCases {
		parameters := validAlgoParameters()
		testCase.mutate(&parameters)

		err := parameters.Validate()
		assertion.Error(err)

		validationError, ok := err.(ValidationError)
		assertion.True(ok)
		assertion.Equal(testCase.field, validationError.Field)
	}
}

func TestMissingFieldMessageNamesTheField(t *testing.T) {
	assertion := assert.New(t)

	parameters := validAlgoParameters()
	parameters.Broker = ""

	err := parameters.Validate()
	assertion.Equal("Missing required argument: 'broker'", err.Error())
}

func TestUnsupportedSymbolListsTradableOnes(t *testing.T) {
	assertion := assert.New(t)

	parameters := validAlgoParameters()
	parameters.Symbol = "GOLD11"

	err := parameters.Validate()
	assertion.Error(err)
	assertion.Contains(err.Error(), "BITH11")
	assertion.Contains(err.Error(), "ETHE11")
	assertion.Contains(err.Error(), "SOLH11")
}

func TestInvalidSideIsRejected(t *testing.T) {
	assertion := assert.New(t)

	parameters := validAlgoParameters()
	parameters.Side = "SHORT"

	err := parameters.Validate()
	assertion.Error(err)

	validationError, ok := err.(ValidationError)
	assertion.True(ok)
	assertion.Equal("side", validationError.Field)
}

func TestHedgeSideIsInverted(t *testing.T) {
	assertion := assert.New(t)

	parameters := validAlgoParameters()
	assertion.Equal("SELL", parameters.HedgeSide())

	parameters.Side = "SELL"
	assertion.Equal("BUY", parameters.HedgeSide())
}

func TestStockOrderRequestIsBrokeredDayLimit(t *testing.T) {
	assertion := assert.New(t)

	algo := Algo{
		Id:         "d290f1ee-6c54-4b01-90e6-d701748f0851",
		Name:       AlgoSpreadCryptoEtf,
		Parameters: validAlgoParameters(),
		Status:     AlgoStatusCreated,
	}

	request := algo.StockOrderRequest(45.12)
	assertion.Equal("BITH11", request.Symbol)
	assertion.Equal("BUY", request.Side)
	assertion.Equal(200.00, request.Quantity)
	assertion.Equal(45.12, request.Price)
	assertion.Equal("LIMIT", request.OrderType)
	assertion.Equal("DAY", request.TimeInForce)
	assertion.Equal("935", request.Broker)
	assertion.Equal("84855", request.Account)
}

func TestCryptoOrderRequestTargetsUnderlyingWithInvertedSide(t *testing.T) {
	assertion := assert.New(t)

	algo := Algo{
		Id:         "d290f1ee-6c54-4b01-90e6-d701748f0851",
		Name:       AlgoSpreadCryptoEtf,
		Parameters: validAlgoParameters(),
		Status:     AlgoStatusRunning,
	}

	request := algo.CryptoOrderRequest(0.03)
	assertion.Equal("BTCUSDT", request.Symbol)
	assertion.Equal("SELL", request.Side)
	assertion.Equal(0.03, request.Quantity)
	assertion.Equal("MARKET", request.OrderType)
	assertion.Equal("", request.TimeInForce)
}

func TestEtfTableCarriesCreationUnits(t *testing.T) {
	assertion := assert.New(t)

	assertion.Equal("ETHUSDT", EtfUnderlyingAssets["ETHE11"].Underlying)
	assertion.Equal(0.00161803, EtfUnderlyingAssets["ETHE11"].AmountPerShare)
	assertion.Equal("SOLUSDT", EtfUnderlyingAssets["SOLH11"].Underlying)
}
