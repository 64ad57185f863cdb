package service

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"riskengine/internal/domain"
)

// DefaultHistoryLimit caps the retained price history per symbol.
const DefaultHistoryLimit = 1000

// MarketSimulator owns per-asset price state and evolves it with synthetic
// movements. A single RWMutex guards the maps: prices are value snapshots, so
// readers always observe a whole pre- or post-advance AssetPrice, never a
// torn mix of fields.
type MarketSimulator struct {
	mu           sync.RWMutex
	assets       map[string]domain.Asset
	current      map[string]domain.AssetPrice
	history      map[string][]domain.AssetPrice
	historyLimit int
	rng          *rand.Rand
}

// NewMarketSimulator creates an empty market. historyLimit <= 0 falls back to
// DefaultHistoryLimit.
func NewMarketSimulator(historyLimit int) *MarketSimulator {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &MarketSimulator{
		assets:       make(map[string]domain.Asset),
		current:      make(map[string]domain.AssetPrice),
		history:      make(map[string][]domain.AssetPrice),
		historyLimit: historyLimit,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// RegisterAsset adds an asset to the market and seeds its initial price.
// Registering the same symbol twice is an error; assets are immutable once
// registered.
func (s *MarketSimulator) RegisterAsset(asset domain.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.assets[asset.Symbol]; exists {
		return fmt.Errorf("%w: asset %s already registered", domain.ErrInvalidArgument, asset.Symbol)
	}

	initial := s.initialPrice(asset)
	price := domain.AssetPrice{
		Symbol:    asset.Symbol,
		Price:     initial,
		NetPrice:  initial * 0.99,
		Low:       initial * 0.98,
		High:      initial * 1.02,
		Volume:    s.rng.Float64() * 1_000_000,
		Timestamp: time.Now(),
	}

	s.assets[asset.Symbol] = asset
	s.current[asset.Symbol] = price
	s.history[asset.Symbol] = []domain.AssetPrice{price}

	log.Printf("Asset %s initialized at price %.4f", asset.Symbol, initial)
	return nil
}

// initialPrice seeds a class-dependent starting price. Callers hold s.mu.
func (s *MarketSimulator) initialPrice(asset domain.Asset) float64 {
	switch asset.Type {
	case domain.AssetTypeStock:
		return 10 + s.rng.Float64()*990
	case domain.AssetTypeCrypto:
		if strings.Contains(asset.Symbol, "BTC") {
			return 20000 + s.rng.Float64()*20000
		}
		return 100 + s.rng.Float64()*4900
	case domain.AssetTypeForex:
		return 0.5 + s.rng.Float64()*1.5
	case domain.AssetTypeCommodity:
		return 50 + s.rng.Float64()*950
	default:
		return 100
	}
}

// Assets returns a snapshot of all registered assets.
func (s *MarketSimulator) Assets() []domain.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Asset, 0, len(s.assets))
	for _, a := range s.assets {
		out = append(out, a)
	}
	return out
}

// CurrentPrice returns the latest price snapshot for a symbol.
func (s *MarketSimulator) CurrentPrice(symbol string) (domain.AssetPrice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	price, ok := s.current[symbol]
	if !ok {
		return domain.AssetPrice{}, fmt.Errorf("%w: asset %s", domain.ErrNotFound, symbol)
	}
	return price, nil
}

// AllPrices returns a point-in-time copy of every current price.
func (s *MarketSimulator) AllPrices() map[string]domain.AssetPrice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.AssetPrice, len(s.current))
	for sym, price := range s.current {
		out[sym] = price
	}
	return out
}

// PriceHistory returns a copy of the retained history for a symbol, oldest
// first.
func (s *MarketSimulator) PriceHistory(symbol string) ([]domain.AssetPrice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history, ok := s.history[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: asset %s", domain.ErrNotFound, symbol)
	}
	out := make([]domain.AssetPrice, len(history))
	copy(out, history)
	return out, nil
}

// AdvancePrices moves every registered symbol one simulation step: the price
// shifts by price * volatility * marketFactor * gaussian noise, floored at
// 0.01 so it never goes non-positive. High and low only widen, volume drifts
// by a uniform 0.8-1.2 factor, and the new snapshot is appended to history
// with FIFO eviction beyond the limit.
func (s *MarketSimulator) AdvancePrices() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for symbol, asset := range s.assets {
		current := s.current[symbol]

		marketFactor := 0.8 + s.rng.Float64()*0.4
		movement := current.Price * asset.Volatility * marketFactor * s.rng.NormFloat64()
		newPrice := math.Max(0.01, current.Price+movement)

		next := domain.AssetPrice{
			Symbol:    symbol,
			Price:     newPrice,
			NetPrice:  newPrice * 0.99,
			Low:       math.Min(current.Low, newPrice),
			High:      math.Max(current.High, newPrice),
			Volume:    current.Volume * (0.8 + s.rng.Float64()*0.4),
			Timestamp: now,
		}

		s.current[symbol] = next

		history := append(s.history[symbol], next)
		if len(history) > s.historyLimit {
			history = history[1:]
		}
		s.history[symbol] = history
	}
}
