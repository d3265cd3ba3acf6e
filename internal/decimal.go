package internal

import "github.com/shopspring/decimal"

func init() {
	// Money fields travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}
