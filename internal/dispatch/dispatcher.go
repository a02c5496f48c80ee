package dispatch

import (
	"context"
	"time"

	"trends-desk/pkg/logger"
)

// DefaultCooldown is how long to back off after the service rate limits us.
const DefaultCooldown = 60 * time.Second

// Notifier tells the user what the dispatcher is doing.
type Notifier interface {
	// RateLimited is called before the cooldown starts.
	RateLimited(cooldown time.Duration)
	// Failed is called once with the error that ends an invocation.
	Failed(err error)
}

// Operation performs one call against the trends service.
type Operation[T any] func(ctx context.Context) (T, error)

// Dispatcher runs operations with the rate-limit policy: a throttled call is
// retried exactly once after a fixed cooldown, anything else fails at once.
// The cooldown is not interruptible.
type Dispatcher struct {
	cooldown time.Duration
	notifier Notifier
	sleep    func(time.Duration)
	exec     *SequentialExecutor
	log      *logger.Logger
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithCooldown overrides DefaultCooldown.
func WithCooldown(d time.Duration) Option {
	return func(dp *Dispatcher) { dp.cooldown = d }
}

// WithSleep replaces time.Sleep for the cooldown.
func WithSleep(sleep func(time.Duration)) Option {
	return func(dp *Dispatcher) { dp.sleep = sleep }
}

// WithLogger sets the dispatcher's logger.
func WithLogger(log *logger.Logger) Option {
	return func(dp *Dispatcher) { dp.log = log }
}

// NewDispatcher creates a new dispatcher reporting to notifier
func NewDispatcher(notifier Notifier, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cooldown: DefaultCooldown,
		notifier: notifier,
		sleep:    time.Sleep,
		exec:     NewSequentialExecutor(),
		log:      logger.GetLogger().WithField("component", "dispatcher"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Cooldown returns the configured back-off.
func (d *Dispatcher) Cooldown() time.Duration {
	return d.cooldown
}

// Notifier returns the notifier failures are reported to.
func (d *Dispatcher) Notifier() Notifier {
	return d.notifier
}

// Run executes op under the dispatcher's policy. At most two attempts are
// made and at most one cooldown is slept. Every returned error has already
// been reported through the Notifier.
func Run[T any](ctx context.Context, d *Dispatcher, op Operation[T]) (T, error) {
	var result T
	log := logger.FromContext(ctx, d.log)
	attempt := func() error {
		return d.exec.Execute(ctx, func() error {
			var err error
			result, err = op(ctx)
			return err
		})
	}

	err := attempt()
	if err == nil {
		return result, nil
	}

	if Classify(err) != ErrorClassRateLimited {
		log.WithError(err).Error("Trends request failed")
		d.notifier.Failed(err)
		var zero T
		return zero, err
	}

	log.WithError(err).WithField("cooldown", d.cooldown.String()).Warn("Rate limit exceeded, cooling down before retry")
	d.notifier.RateLimited(d.cooldown)
	d.sleep(d.cooldown)

	if err = attempt(); err != nil {
		log.WithError(err).WithField("attempt", 2).Error("Trends request failed after cooldown")
		d.notifier.Failed(err)
		var zero T
		return zero, err
	}

	log.Info("Trends request succeeded after cooldown")
	return result, nil
}
