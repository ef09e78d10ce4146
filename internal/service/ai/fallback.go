package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ashstar-ai/mainframe/internal/pkg/logger"
)

// ErrExhausted marks total failure: every configured provider was tried and
// none produced text. Callers treat it as an expected branch, not a fault.
var ErrExhausted = errors.New("all providers exhausted")

// Result is a successful resolution: the reply text and which provider
// produced it.
type Result struct {
	Text     string
	Provider string
}

// Orchestrator walks an ordered provider list and returns the first
// successful completion. Providers are tried strictly sequentially: the
// preference order decides which provider wins, and request volume against
// the external API stays minimal.
type Orchestrator struct {
	providers      []Provider
	delay          time.Duration
	attemptTimeout time.Duration
	log            *logger.Logger

	// sleep is swapped out by tests to assert the inter-attempt pause.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewOrchestrator builds the fallback loop. delay is the pause between
// attempts against distinct providers; attemptTimeout bounds each call
// (zero means no extra bound beyond the transport's own).
func NewOrchestrator(providers []Provider, delay, attemptTimeout time.Duration, log *logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Orchestrator{
		providers:      providers,
		delay:          delay,
		attemptTimeout: attemptTimeout,
		log:            log,
		sleep:          sleepCtx,
	}
}

// Resolve tries each provider in configured order and short-circuits on the
// first non-empty reply. When the list is exhausted it returns an error
// wrapping ErrExhausted.
func (o *Orchestrator) Resolve(ctx context.Context, prompt string) (Result, error) {
	if len(o.providers) == 0 {
		return Result{}, fmt.Errorf("%w: no providers configured", ErrExhausted)
	}

	var lastErr error
	for i, provider := range o.providers {
		text, err := o.attempt(ctx, provider, prompt)
		if err == nil {
			o.log.Info("provider succeeded", "provider", provider.Name(), "attempt", i+1)
			return Result{Text: text, Provider: provider.Name()}, nil
		}

		lastErr = err
		o.log.Warn("provider failed, trying next",
			"provider", provider.Name(),
			"error", err.Error(),
			"remaining", len(o.providers)-i-1,
		)

		if i < len(o.providers)-1 && o.delay > 0 {
			if sleepErr := o.sleep(ctx, o.delay); sleepErr != nil {
				return Result{}, sleepErr
			}
		}
	}

	return Result{}, fmt.Errorf("%w: last error: %v", ErrExhausted, lastErr)
}

func (o *Orchestrator) attempt(ctx context.Context, provider Provider, prompt string) (string, error) {
	if o.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.attemptTimeout)
		defer cancel()
	}
	return provider.Generate(ctx, prompt)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
