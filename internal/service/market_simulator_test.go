package service

import (
	"testing"

	"riskengine/internal/domain"
)

func mustAsset(t *testing.T, symbol string, typ domain.AssetType, volatility float64) domain.Asset {
	t.Helper()
	asset, err := domain.NewAsset(symbol, symbol, typ, "USD", volatility)
	if err != nil {
		t.Fatalf("NewAsset(%s) returned error: %v", symbol, err)
	}
	return asset
}

func TestRegisterAssetSeedsPrice(t *testing.T) {
	sim := NewMarketSimulator(0)
	if err := sim.RegisterAsset(mustAsset(t, "AAPL", domain.AssetTypeStock, 0.02)); err != nil {
		t.Fatalf("RegisterAsset returned error: %v", err)
	}

	price, err := sim.CurrentPrice("AAPL")
	if err != nil {
		t.Fatalf("CurrentPrice returned error: %v", err)
	}
	if price.Price < 10 || price.Price > 1000 {
		t.Errorf("stock initial price %.4f outside [10, 1000]", price.Price)
	}
	if price.NetPrice != price.Price*0.99 {
		t.Errorf("net price %.4f, want %.4f", price.NetPrice, price.Price*0.99)
	}
	if price.Low != price.Price*0.98 || price.High != price.Price*1.02 {
		t.Errorf("low/high %.4f/%.4f not seeded around price %.4f", price.Low, price.High, price.Price)
	}

	history, err := sim.PriceHistory("AAPL")
	if err != nil {
		t.Fatalf("PriceHistory returned error: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("history length %d, want 1", len(history))
	}
}

func TestRegisterAssetDuplicateRejected(t *testing.T) {
	sim := NewMarketSimulator(0)
	asset := mustAsset(t, "BTC-USD", domain.AssetTypeCrypto, 0.03)
	if err := sim.RegisterAsset(asset); err != nil {
		t.Fatalf("first RegisterAsset returned error: %v", err)
	}
	if err := sim.RegisterAsset(asset); err == nil {
		t.Fatal("duplicate RegisterAsset did not return an error")
	}
}

func TestInitialPriceRanges(t *testing.T) {
	sim := NewMarketSimulator(0)
	cases := []struct {
		asset    domain.Asset
		min, max float64
	}{
		{mustAsset(t, "BTC-USD", domain.AssetTypeCrypto, 0.03), 20000, 40000},
		{mustAsset(t, "ETH-USD", domain.AssetTypeCrypto, 0.04), 100, 5000},
		{mustAsset(t, "EUR-USD", domain.AssetTypeForex, 0.005), 0.5, 2.0},
		{mustAsset(t, "GOLD", domain.AssetTypeCommodity, 0.01), 50, 1000},
	}
	for _, tc := range cases {
		if err := sim.RegisterAsset(tc.asset); err != nil {
			t.Fatalf("RegisterAsset(%s) returned error: %v", tc.asset.Symbol, err)
		}
		price, err := sim.CurrentPrice(tc.asset.Symbol)
		if err != nil {
			t.Fatalf("CurrentPrice(%s) returned error: %v", tc.asset.Symbol, err)
		}
		if price.Price < tc.min || price.Price > tc.max {
			t.Errorf("%s initial price %.4f outside [%.2f, %.2f]", tc.asset.Symbol, price.Price, tc.min, tc.max)
		}
	}
}

func TestCurrentPriceUnknownSymbol(t *testing.T) {
	sim := NewMarketSimulator(0)
	if _, err := sim.CurrentPrice("NOPE"); err == nil {
		t.Fatal("CurrentPrice for unknown symbol did not return an error")
	}
}

func TestAdvancePricesZeroVolatilityIsStable(t *testing.T) {
	sim := NewMarketSimulator(0)
	if err := sim.RegisterAsset(mustAsset(t, "FLAT", domain.AssetTypeStock, 0)); err != nil {
		t.Fatalf("RegisterAsset returned error: %v", err)
	}

	before, _ := sim.CurrentPrice("FLAT")
	for i := 0; i < 50; i++ {
		sim.AdvancePrices()
	}
	after, _ := sim.CurrentPrice("FLAT")

	if after.Price != before.Price {
		t.Errorf("price moved from %.4f to %.4f with zero volatility", before.Price, after.Price)
	}
}

func TestAdvancePricesFloorAndBounds(t *testing.T) {
	sim := NewMarketSimulator(0)
	if err := sim.RegisterAsset(mustAsset(t, "WILD", domain.AssetTypeCrypto, 1.0)); err != nil {
		t.Fatalf("RegisterAsset returned error: %v", err)
	}

	for i := 0; i < 500; i++ {
		sim.AdvancePrices()
		price, _ := sim.CurrentPrice("WILD")
		if price.Price < 0.01 {
			t.Fatalf("price %.6f fell below floor on step %d", price.Price, i)
		}
		if price.Low > price.Price || price.High < price.Price {
			t.Fatalf("price %.4f outside [low=%.4f, high=%.4f] on step %d", price.Price, price.Low, price.High, i)
		}
	}
}

func TestAdvancePricesHighLowOnlyWiden(t *testing.T) {
	sim := NewMarketSimulator(0)
	if err := sim.RegisterAsset(mustAsset(t, "AMZN", domain.AssetTypeStock, 0.05)); err != nil {
		t.Fatalf("RegisterAsset returned error: %v", err)
	}

	prev, _ := sim.CurrentPrice("AMZN")
	for i := 0; i < 100; i++ {
		sim.AdvancePrices()
		next, _ := sim.CurrentPrice("AMZN")
		if next.Low > prev.Low {
			t.Fatalf("low rose from %.4f to %.4f on step %d", prev.Low, next.Low, i)
		}
		if next.High < prev.High {
			t.Fatalf("high dropped from %.4f to %.4f on step %d", prev.High, next.High, i)
		}
		prev = next
	}
}

func TestPriceHistoryCapFIFO(t *testing.T) {
	const limit = 10
	sim := NewMarketSimulator(limit)
	if err := sim.RegisterAsset(mustAsset(t, "MSFT", domain.AssetTypeStock, 0.02)); err != nil {
		t.Fatalf("RegisterAsset returned error: %v", err)
	}

	for i := 0; i < 25; i++ {
		sim.AdvancePrices()
	}

	history, err := sim.PriceHistory("MSFT")
	if err != nil {
		t.Fatalf("PriceHistory returned error: %v", err)
	}
	if len(history) != limit {
		t.Fatalf("history length %d, want %d", len(history), limit)
	}

	current, _ := sim.CurrentPrice("MSFT")
	last := history[len(history)-1]
	if last.Price != current.Price {
		t.Errorf("newest history entry %.4f does not match current price %.4f", last.Price, current.Price)
	}
	for i := 1; i < len(history); i++ {
		if history[i].Timestamp.Before(history[i-1].Timestamp) {
			t.Fatalf("history not ordered oldest first at index %d", i)
		}
	}
}

func TestPriceHistoryReturnsCopy(t *testing.T) {
	sim := NewMarketSimulator(0)
	if err := sim.RegisterAsset(mustAsset(t, "AAPL", domain.AssetTypeStock, 0.02)); err != nil {
		t.Fatalf("RegisterAsset returned error: %v", err)
	}

	history, _ := sim.PriceHistory("AAPL")
	history[0].Price = -1

	fresh, _ := sim.PriceHistory("AAPL")
	if fresh[0].Price == -1 {
		t.Error("mutating a returned history slice changed simulator state")
	}
}

func TestAllPricesSnapshotIsolated(t *testing.T) {
	sim := NewMarketSimulator(0)
	if err := sim.RegisterAsset(mustAsset(t, "GOOGL", domain.AssetTypeStock, 0.02)); err != nil {
		t.Fatalf("RegisterAsset returned error: %v", err)
	}

	snapshot := sim.AllPrices()
	snapshot["GOOGL"] = domain.AssetPrice{Symbol: "GOOGL", Price: -1}

	current, _ := sim.CurrentPrice("GOOGL")
	if current.Price == -1 {
		t.Error("mutating AllPrices snapshot changed simulator state")
	}
}
