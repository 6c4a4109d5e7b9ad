package timer

import "time"

// Ticker is a recurring tick source owned by the Engine.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a Ticker firing every interval.
type TickerFactory func(interval time.Duration) Ticker

type systemTicker struct {
	ticker *time.Ticker
}

// NewSystemTicker wraps time.Ticker.
func NewSystemTicker(interval time.Duration) Ticker {
	return &systemTicker{ticker: time.NewTicker(interval)}
}

func (source *systemTicker) C() <-chan time.Time {
	return source.ticker.C
}

func (source *systemTicker) Stop() {
	source.ticker.Stop()
}

// tickHandle is the single live subscription to a Ticker.
type tickHandle struct {
	ticker Ticker
	stopCh chan struct{}
}

func newTickHandle(ticker Ticker) *tickHandle {
	return &tickHandle{
		ticker: ticker,
		stopCh: make(chan struct{}),
	}
}

func (handle *tickHandle) release() {
	handle.ticker.Stop()
	close(handle.stopCh)
}
