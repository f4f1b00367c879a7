package model

import "fmt"

// Cents is an amount of money in US cents.  All prices and totals are
// kept as integer cents so that sums are exact; formatting to dollars
// only happens at presentation time.
type Cents int64

// Dollars converts a whole-dollar amount to Cents.
func Dollars(d int64) Cents { return Cents(d * 100) }

// String formats the amount as "$1234.56".
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, int64(c)/100, int64(c)%100)
}
