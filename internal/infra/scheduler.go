package infra

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// MarketAdvancer evolves all asset prices one simulation step.
type MarketAdvancer interface {
	AdvancePrices()
}

// Sweeper re-evaluates open limit orders against current prices.
type Sweeper interface {
	SweepLimitOrders(ctx context.Context)
}

// Scheduler drives the market tick: advance prices, then sweep limit
// orders, on a fixed interval.
type Scheduler struct {
	cron        *cron.Cron
	market      MarketAdvancer
	trading     Sweeper
	tickSeconds int
}

// NewScheduler creates a scheduler firing every tickSeconds seconds.
// tickSeconds <= 0 defaults to 5.
func NewScheduler(market MarketAdvancer, trading Sweeper, tickSeconds int) *Scheduler {
	if tickSeconds <= 0 {
		tickSeconds = 5
	}
	return &Scheduler{
		cron:        cron.New(cron.WithSeconds()),
		market:      market,
		trading:     trading,
		tickSeconds: tickSeconds,
	}
}

// Start registers the tick job and starts the cron loop.
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("*/%d * * * * *", s.tickSeconds)
	_, err := s.cron.AddFunc(spec, s.RunNow)
	if err != nil {
		return fmt.Errorf("failed to add market tick job: %w", err)
	}

	s.cron.Start()
	log.Printf("[OK] Market scheduler started (tick every %ds)", s.tickSeconds)
	return nil
}

// RunNow executes one tick immediately: advance all prices, then match open
// limit orders against them.
func (s *Scheduler) RunNow() {
	s.market.AdvancePrices()
	s.trading.SweepLimitOrders(context.Background())
}

// Stop halts the cron loop. Running jobs finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[OK] Market scheduler stopped")
}
