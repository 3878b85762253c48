package wallart

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidDiscount = errors.New("discount percentage must be within [0,100]")

// Price is the displayed price of one option after the site-wide discount.
type Price struct {
	Original        int     `json:"original"`
	Discounted      int     `json:"discounted"`
	Savings         int     `json:"savings"`
	DiscountPercent float64 `json:"discount_percent"`
}

// OnSale reports whether the discount actually lowered the price.
func (p Price) OnSale() bool {
	return p.Savings > 0
}

func ComputePrice(opt PrintOption, discountPercent float64) (Price, error) {
	if err := ValidateDiscount(discountPercent); err != nil {
		return Price{}, err
	}

	original := opt.BasePrice
	discounted := int(math.Round(float64(original) * (1 - discountPercent/100)))

	return Price{
		Original:        original,
		Discounted:      discounted,
		Savings:         original - discounted,
		DiscountPercent: discountPercent,
	}, nil
}

func ValidateDiscount(discountPercent float64) error {
	if math.IsNaN(discountPercent) || discountPercent < 0 || discountPercent > 100 {
		return fmt.Errorf("%w: got %v", ErrInvalidDiscount, discountPercent)
	}
	return nil
}
