package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// minorUnits lists ISO 4217 currencies whose minor unit is not 2.
var minorUnits = map[string]int32{
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
	"JPY": 0, "KRW": 0, "XAF": 0, "XOF": 0,
}

// CurrencyPlaces returns the number of decimals amounts in code are shown with.
func CurrencyPlaces(code string) int32 {
	if p, ok := minorUnits[strings.ToUpper(code)]; ok {
		return p
	}
	return 2
}

// Round rounds half away from zero to places decimals.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// FormatAmount renders v with exactly places decimals.
func FormatAmount(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
