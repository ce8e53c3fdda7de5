// Package guard wraps single remote operations with a timeout and absorbs
// their failures. A guarded call always yields a usable value: on any
// failure the supplied fallback is returned instead, so callers never
// need a failure branch per remote touchpoint. Connectivity failures
// flip the shared OfflineState; the next success flips it back. No
// retries happen here — one failed attempt degrades to the fallback.
package guard

import (
	"context"
	"time"

	"learner-practice-portal/internal/config"
	"learner-practice-portal/internal/infra/metrics"

	"github.com/rs/zerolog"
)

type Guard struct {
	state        *OfflineState
	readTimeout  time.Duration
	writeTimeout time.Duration
	log          *zerolog.Logger
}

func New(state *OfflineState, cfg config.GuardConfig, logger *zerolog.Logger) *Guard {
	return &Guard{
		state:        state,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
		log:          logger,
	}
}

// State exposes the guard's offline state for health reporting.
func (g *Guard) State() *OfflineState { return g.state }

// Read guards an interactive read with the shorter timeout.
func Read[T any](ctx context.Context, g *Guard, name string, fallback T, op func(context.Context) (T, error)) T {
	return call(ctx, g, name, g.readTimeout, fallback, op)
}

// Write guards a mutation with the longer timeout.
func Write[T any](ctx context.Context, g *Guard, name string, fallback T, op func(context.Context) (T, error)) T {
	return call(ctx, g, name, g.writeTimeout, fallback, op)
}

type outcome[T any] struct {
	val T
	err error
}

// call races op against the timeout. The losing branch is abandoned, not
// cancelled beyond the context deadline: if op settles after the timer
// its result goes into the buffered channel and is discarded, which is
// acceptable because guarded operations are idempotent or their
// duplicated side effects are tolerable (same merged record rewritten).
func call[T any](ctx context.Context, g *Guard, name string, timeout time.Duration, fallback T, op func(context.Context) (T, error)) T {
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan outcome[T], 1)
	go func() {
		v, err := op(opCtx)
		ch <- outcome[T]{val: v, err: err}
	}()

	var res outcome[T]
	select {
	case res = <-ch:
	case <-opCtx.Done():
		res = outcome[T]{err: opCtx.Err()}
	}

	if res.err == nil {
		if g.state.markOnline() {
			metrics.IncOfflineTransition("online")
			g.log.Info().Str("op", name).Msg("backend connectivity recovered")
		}
		metrics.IncGuardCall(name, "ok")
		return res.val
	}

	if isConnectivity(res.err) {
		if g.state.markOffline(res.err) {
			metrics.IncOfflineTransition("offline")
			g.log.Warn().Str("op", name).Err(res.err).Msg("backend unreachable, entering offline mode")
		} else {
			g.log.Debug().Str("op", name).Err(res.err).Msg("backend still unreachable")
		}
		metrics.IncGuardCall(name, "connectivity")
		return fallback
	}

	// Logic failure: backend reachable, request structurally bad. Do not
	// touch offline state.
	metrics.IncGuardCall(name, "logic")
	g.log.Error().Str("op", name).Err(res.err).Msg("remote operation failed")
	return fallback
}
