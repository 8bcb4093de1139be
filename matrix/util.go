package matrix

import "github.com/shopspring/decimal"

var oneDecimal = decimal.NewFromInt(1)
