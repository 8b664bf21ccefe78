// Package privilege keeps the sudo credential cache warm for the duration
// of a run that contains elevated steps. The credential is prompted for
// once up front; a background task then renews it on a fixed interval so
// later elevated steps never re-prompt mid-sequence.
package privilege

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/dusky-system/dusky-setup/internal/engine"
)

// ErrCredential reports that the elevated credential could not be
// obtained up front. Runs with elevated steps cannot proceed without it.
var ErrCredential = errors.New("could not acquire elevated privileges")

// teardownGrace bounds how long Teardown waits for the renewal task.
const teardownGrace = 500 * time.Millisecond

// promptCredential and refreshCredential are swapped in tests. The prompt
// inherits the standard streams so sudo can talk to the user directly; the
// refresh runs non-interactively and only touches the credential timestamp.
var (
	promptCredential = func(ctx context.Context) error {
		cmd := exec.CommandContext(ctx, "sudo", "-v")
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}

	refreshCredential = func(ctx context.Context) error {
		return exec.CommandContext(ctx, "sudo", "-n", "true").Run()
	}
)

// Session is a live privilege session with a background renewal task.
type Session struct {
	interval time.Duration
	obs      engine.Observer

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Start prompts for the elevated credential and spawns the renewal task.
// The caller must call Teardown when the run ends, on every exit path.
func Start(ctx context.Context, interval time.Duration, obs engine.Observer) (*Session, error) {
	if err := promptCredential(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredential, err)
	}
	obs.Event(engine.Event{Type: engine.EventPrivilegeAcquired})

	s := &Session{
		interval: interval,
		obs:      obs,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.renew(ctx)
	return s, nil
}

// renew refreshes the credential cache until stopped. A failed refresh is
// reported and the loop keeps going; the next elevated step surfaces the
// problem to the user if the cache really has expired.
func (s *Session) renew(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := refreshCredential(ctx); err != nil {
				s.obs.Event(engine.Event{
					Type:    engine.EventPrivilegeRenewalFailed,
					Message: err.Error(),
				})
				continue
			}
			s.obs.Event(engine.Event{Type: engine.EventPrivilegeRenewed})
		}
	}
}

// Teardown stops the renewal task and waits briefly for it to finish. It
// is safe to call more than once and on a nil session, so callers can
// defer it unconditionally.
func (s *Session) Teardown() {
	if s == nil {
		return
	}
	s.once.Do(func() { close(s.stop) })
	select {
	case <-s.done:
	case <-time.After(teardownGrace):
	}
}
