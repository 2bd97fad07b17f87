// internal/lobby/scheduler.go
package lobby

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"fuseball/internal/game"
)

// Scheduler is the process-wide timer driving every active room. A single
// goroutine iterates the registry each tick and advances rooms one by one, so
// a room's tick never executes concurrently with itself. Rooms share no
// mutable state, only the registry map.
type Scheduler struct {
	store     *Store
	log       *logrus.Logger
	interval  time.Duration
	reapAfter time.Duration
}

// NewScheduler wires a scheduler to the registry at the standard tick rate.
func NewScheduler(store *Store, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		store:     store,
		log:       log,
		interval:  game.TickInterval,
		reapAfter: 10 * time.Second,
	}
}

// Run blocks, ticking until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.WithField("interval", s.interval).Info("tick scheduler running")
	for {
		select {
		case <-ctx.Done():
			s.log.Info("tick scheduler stopped")
			return
		case now := <-ticker.C:
			s.tickAll(now)
		}
	}
}

// tickAll advances every room once and reaps finished rooms past their grace
// period. A panic in one room's tick is contained: it kills that room, never
// the scheduler.
func (s *Scheduler) tickAll(now time.Time) {
	for _, l := range s.store.Snapshot() {
		s.tickOne(l, now)
		if l.reapable(now, s.reapAfter) {
			s.store.Remove(l)
		}
	}
}

func (s *Scheduler) tickOne(l *Lobby, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(logrus.Fields{
				"lobby": l.ID,
				"panic": r,
			}).Error("room tick panicked, removing room")
			s.store.Remove(l)
		}
	}()
	l.Tick(now)
}
