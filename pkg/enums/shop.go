package enums

import "fmt"

// ShopType classifies a shop for vehicle eligibility purposes.
// Shops without an explicit classification are treated as retail.
type ShopType string

const (
	ShopTypeRetail       ShopType = "retail"
	ShopTypeAgricultural ShopType = "agricultural"
	ShopTypeAll          ShopType = "all"
)

var validShopTypes = []ShopType{
	ShopTypeRetail,
	ShopTypeAgricultural,
	ShopTypeAll,
}

// String implements fmt.Stringer.
func (s ShopType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ShopType.
func (s ShopType) IsValid() bool {
	for _, candidate := range validShopTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShopType converts raw input into a ShopType.
func ParseShopType(value string) (ShopType, error) {
	for _, candidate := range validShopTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shop type %q", value)
}
