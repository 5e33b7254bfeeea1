package fund

import "github.com/Rhymond/go-money"

// FormatCOP renders a whole-peso amount for user-facing messages,
// e.g. 75000 becomes "$75.000,00". Amounts are stored in whole COP;
// go-money counts centavos, hence the *100.
func FormatCOP(amount int64) string {
	return money.New(amount*100, money.COP).Display()
}
