package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"slices"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	"github.com/rickgao/woo-sync/internal/cursor"
	"github.com/rickgao/woo-sync/internal/model"
	"github.com/rickgao/woo-sync/internal/woo"
)

// OrderSource fetches raw orders created after a watermark, oldest first.
type OrderSource interface {
	GetOrdersAfter(ctx context.Context, after string) ([]woo.APIOrder, error)
}

// OrderHandler acts on a normalized order. Returning true marks the order
// done and lets the cursor advance past it.
type OrderHandler interface {
	HandleOrder(ctx context.Context, order model.Order) (bool, error)
}

// HandlerFunc is a function adapter for OrderHandler.
type HandlerFunc func(context.Context, model.Order) (bool, error)

func (f HandlerFunc) HandleOrder(ctx context.Context, o model.Order) (bool, error) {
	return f(ctx, o)
}

// ActionError wraps an error returned by the OrderHandler.
type ActionError struct {
	OrderID int64
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("handle order %d: %v", e.OrderID, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// Config holds poller configuration.
type Config struct {
	Interval               time.Duration // Pause between iterations (default: 20s)
	Statuses               []string      // Allowed order statuses (default: on-hold, completed)
	CursorKey              string        // Store key for the watermark (default: last_order_time)
	MaxConsecutiveFailures int           // Attempts per iteration before giving up (default: 5)
	RetryInitialInterval   time.Duration // First retry delay (default: 1s)
	RetryMaxInterval       time.Duration // Retry delay cap (default: 1m)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:               20 * time.Second,
		Statuses:               []string{"on-hold", "completed"},
		CursorKey:              cursor.KeyLastOrderTime,
		MaxConsecutiveFailures: 5,
		RetryInitialInterval:   time.Second,
		RetryMaxInterval:       time.Minute,
	}
}

// Option configures a Poller.
type Option func(*Poller)

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(p *Poller) {
		if r != nil {
			p.recorder = r
		}
	}
}

// Poller runs the fetch, filter, act and advance loop.
type Poller struct {
	cfg      Config
	source   OrderSource
	store    cursor.Store
	handler  OrderHandler
	logger   *slog.Logger
	recorder Recorder

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	done    chan struct{}
	started bool

	mu  sync.Mutex
	err error
}

// New creates a new Poller. Zero config fields take their defaults.
func New(cfg Config, source OrderSource, store cursor.Store, handler OrderHandler, logger *slog.Logger, opts ...Option) *Poller {
	if logger == nil {
		logger = slog.Default()
	}

	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if len(cfg.Statuses) == 0 {
		cfg.Statuses = def.Statuses
	}
	if cfg.CursorKey == "" {
		cfg.CursorKey = def.CursorKey
	}
	if cfg.MaxConsecutiveFailures <= 0 {
		cfg.MaxConsecutiveFailures = def.MaxConsecutiveFailures
	}
	if cfg.RetryInitialInterval <= 0 {
		cfg.RetryInitialInterval = def.RetryInitialInterval
	}
	if cfg.RetryMaxInterval <= 0 {
		cfg.RetryMaxInterval = def.RetryMaxInterval
	}

	p := &Poller{
		cfg:      cfg,
		source:   source,
		store:    store,
		handler:  handler,
		logger:   logger,
		recorder: nopRecorder{},
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ErrAlreadyStarted is returned by Start on a poller that was started before.
var ErrAlreadyStarted = errors.New("poller already started")

// Start launches the polling loop in the background. A Poller can be started
// once.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	p.started = true
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer close(p.done)

		if err := p.Run(ctx); err != nil {
			p.mu.Lock()
			p.err = err
			p.mu.Unlock()
		}
	}()

	return nil
}

// Stop cancels the loop and waits for it to exit. An iteration already in
// progress runs to completion.
func (p *Poller) Stop(ctx context.Context) error {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("order poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when a loop started with Start exits.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Err returns the error that stopped the loop, or nil after a clean stop.
func (p *Poller) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Run polls until ctx is cancelled or an iteration fails for good. The first
// iteration starts immediately; each following one starts Interval after the
// previous one finished. Cancellation returns nil.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("order poller started",
		"interval", p.cfg.Interval,
		"statuses", p.cfg.Statuses,
		"max_failures", p.cfg.MaxConsecutiveFailures,
	)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		if err := p.iterate(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Error("order poller giving up", "err", err)
			return err
		}

		timer.Reset(p.cfg.Interval)
	}
}

// iterate runs pollOnce with retries. Each attempt runs on a context that
// ignores cancellation so an attempt is never cut short; cancellation only
// interrupts the wait between attempts.
func (p *Poller) iterate(ctx context.Context) error {
	logger := p.logger.With("run_id", uuid.NewString())
	attemptCtx := context.WithoutCancel(ctx)

	operation := func() (pollStats, error) {
		start := time.Now()
		stats, err := p.pollOnce(attemptCtx, logger)
		p.recorder.ObservePoll(time.Since(start), err)
		if err != nil && !isRetryable(err) {
			return stats, backoff.Permanent(err)
		}
		return stats, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.cfg.RetryInitialInterval
	b.MaxInterval = p.cfg.RetryMaxInterval

	stats, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(p.cfg.MaxConsecutiveFailures)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Warn("poll failed, retrying", "err", err, "backoff", next)
		}),
	)
	if err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Unwrap()
		}
		return err
	}

	logger.Info("poll complete",
		"cursor", stats.cursor,
		"fetched", stats.fetched,
		"filtered", stats.filtered,
		"accepted", stats.accepted,
		"declined", stats.declined,
	)
	return nil
}

type pollStats struct {
	cursor   string
	fetched  int
	filtered int
	accepted int
	declined int
}

// pollOnce runs a single fetch, filter, act and advance pass.
func (p *Poller) pollOnce(ctx context.Context, logger *slog.Logger) (pollStats, error) {
	var stats pollStats

	after, err := p.store.Get(ctx, p.cfg.CursorKey)
	if err != nil {
		return stats, fmt.Errorf("read cursor: %w", err)
	}
	stats.cursor = after

	orders, err := p.source.GetOrdersAfter(ctx, after)
	if err != nil {
		return stats, fmt.Errorf("fetch orders after %s: %w", after, err)
	}
	stats.fetched = len(orders)

	for i := range orders {
		raw := &orders[i]

		if !slices.Contains(p.cfg.Statuses, raw.Status) {
			stats.filtered++
			p.recorder.OrderProcessed(OutcomeFiltered)
			continue
		}

		order, err := raw.ToModel()
		if err != nil {
			return stats, err
		}

		ok, err := p.handler.HandleOrder(ctx, order)
		if err != nil {
			return stats, &ActionError{OrderID: order.ID, Err: err}
		}
		if !ok {
			stats.declined++
			p.recorder.OrderProcessed(OutcomeDeclined)
			logger.Debug("order declined", "order_id", order.ID)
			continue
		}

		stats.accepted++
		p.recorder.OrderProcessed(OutcomeAccepted)

		advanced, err := p.advance(ctx, order)
		if err != nil {
			return stats, err
		}
		if advanced {
			stats.cursor = order.CreatedAt
		}
	}

	return stats, nil
}

// advance moves the cursor to the order's creation time if that is strictly
// later than the stored value. The stored value is re-read first so the
// cursor never moves backwards.
func (p *Poller) advance(ctx context.Context, order model.Order) (bool, error) {
	current, err := p.store.Get(ctx, p.cfg.CursorKey)
	if err != nil {
		return false, fmt.Errorf("read cursor: %w", err)
	}

	if _, err := cursor.ParseTimestamp(order.CreatedAt); err != nil {
		return false, &model.DataShapeError{Record: "order", ID: order.ID, Field: "date_created", Reason: "not a timestamp"}
	}
	later, err := cursor.IsAfter(order.CreatedAt, current)
	if err != nil {
		return false, &cursor.PersistenceError{Op: "decode", Path: p.cfg.CursorKey, Err: err}
	}
	if !later {
		return false, nil
	}

	if err := p.store.Set(ctx, p.cfg.CursorKey, order.CreatedAt); err != nil {
		return false, fmt.Errorf("write cursor: %w", err)
	}
	p.recorder.CursorAdvanced(order.CreatedAt)
	return true, nil
}

// isRetryable reports whether a failed iteration may be attempted again.
func isRetryable(err error) bool {
	var shapeErr *model.DataShapeError
	if errors.As(err, &shapeErr) {
		return false
	}
	var persistErr *cursor.PersistenceError
	if errors.As(err, &persistErr) {
		return false
	}

	var apiErr *woo.APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsRetryable()
	}

	var actErr *ActionError
	if errors.As(err, &actErr) {
		return isNetworkError(actErr.Err)
	}

	return isNetworkError(err)
}

func isNetworkError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}
