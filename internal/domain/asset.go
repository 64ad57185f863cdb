package domain

import "fmt"

// AssetType classifies the kind of financial instrument an asset is.
type AssetType string

// Supported asset classes.
const (
	AssetTypeStock     AssetType = "STOCK"
	AssetTypeCrypto    AssetType = "CRYPTO"
	AssetTypeForex     AssetType = "FOREX"
	AssetTypeCommodity AssetType = "COMMODITY"
)

// Valid reports whether the asset type is one of the supported classes.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeStock, AssetTypeCrypto, AssetTypeForex, AssetTypeCommodity:
		return true
	}
	return false
}

// Asset is a tradable instrument. Immutable after registration with the
// market simulator.
type Asset struct {
	Symbol     string    `json:"symbol"`
	Name       string    `json:"name"`
	Type       AssetType `json:"type"`
	Currency   string    `json:"currency"`
	Volatility float64   `json:"volatility"`
}

// NewAsset validates the required fields and returns an Asset.
// Volatility is expressed on a 0-1 scale.
func NewAsset(symbol, name string, typ AssetType, currency string, volatility float64) (Asset, error) {
	if symbol == "" {
		return Asset{}, fmt.Errorf("%w: asset symbol is required", ErrInvalidArgument)
	}
	if !typ.Valid() {
		return Asset{}, fmt.Errorf("%w: unknown asset type %q", ErrInvalidArgument, typ)
	}
	if volatility < 0 || volatility > 1 {
		return Asset{}, fmt.Errorf("%w: volatility %v outside [0,1]", ErrInvalidArgument, volatility)
	}
	return Asset{
		Symbol:     symbol,
		Name:       name,
		Type:       typ,
		Currency:   currency,
		Volatility: volatility,
	}, nil
}
