package utils

import (
	"strconv"
	"strings"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// FormatPrice renders a price with its currency symbol, or the ISO code as
// suffix when no symbol is known: "$449", "€99.50", "1200 CHF".
func FormatPrice(price float64, currency string) string {
	amount := strconv.FormatFloat(price, 'f', -1, 64)
	if strings.Contains(amount, ".") {
		amount = strconv.FormatFloat(price, 'f', 2, 64)
	}
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = "USD"
	}
	if sym, ok := currencySymbols[code]; ok {
		return sym + amount
	}
	return amount + " " + code
}
