package domain

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	MotorAvailable = "AVAILABLE"
	MotorSold      = "SOLD"
)

type Motor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Brand  string `json:"brand"`
	Year   int    `json:"year"`
	Color  string `json:"color"`
	Price  Amount `json:"price"`
	Status string `json:"status"`
	Image  string `json:"gambar,omitempty"`
	UserID string `json:"userId,omitempty"`
	User   *User  `json:"user,omitempty"`
}

// Amount accepts a price sent either as a JSON number or as a numeric string.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

var idr = message.NewPrinter(language.Indonesian)

func (m Motor) Available() bool { return m.Status == MotorAvailable }

// PriceIDR formats the price the way the dealer reads it: 25000000 -> "25.000.000".
func (m Motor) PriceIDR() string {
	return idr.Sprintf("%d", int64(m.Price))
}

type MotorInput struct {
	Name   string
	Brand  string
	Year   int
	Color  string
	Price  int64
	Status string
}
