package enums

import "fmt"

// ProductSize enumerates the garment sizes a product can be stocked in.
type ProductSize string

const (
	ProductSizeXS ProductSize = "XS"
	ProductSizeS  ProductSize = "S"
	ProductSizeM  ProductSize = "M"
	ProductSizeL  ProductSize = "L"
	ProductSizeXL ProductSize = "XL"
)

var validProductSizes = []ProductSize{
	ProductSizeXS,
	ProductSizeS,
	ProductSizeM,
	ProductSizeL,
	ProductSizeXL,
}

func (s ProductSize) String() string {
	return string(s)
}

func (s ProductSize) IsValid() bool {
	for _, candidate := range validProductSizes {
		if s == candidate {
			return true
		}
	}
	return false
}

func ParseProductSize(value string) (ProductSize, error) {
	size := ProductSize(value)
	if !size.IsValid() {
		return "", fmt.Errorf("invalid product size: %q", value)
	}
	return size, nil
}
