package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Task is a periodic job. ctx is cancelled when the scheduler's context ends.
type Task func(ctx context.Context)

// Scheduler manages the interval jobs of one process: the client's price and
// history pollers or the rate server's refresh job.
type Scheduler struct {
	Cron *cron.Cron
	Ctx  context.Context

	mu     sync.Mutex
	tasks  map[string]Task
	timers []*time.Timer
	wg     sync.WaitGroup
}

// NewScheduler creates a new Scheduler. A job still running when its next
// interval comes round is skipped rather than stacked.
func NewScheduler(ctx context.Context) *Scheduler {
	return &Scheduler{
		Cron:  cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		Ctx:   ctx,
		tasks: make(map[string]Task),
	}
}

// Every registers task under name to run on every interval.
func (s *Scheduler) Every(name string, interval time.Duration, task Task) error {
	if interval <= 0 {
		return fmt.Errorf("register %s: interval must be positive", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[name]; ok {
		return fmt.Errorf("register %s: already registered", name)
	}
	spec := "@every " + interval.String()
	if _, err := s.Cron.AddFunc(spec, func() { s.run(name, task) }); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	s.tasks[name] = task
	return nil
}

// RunNow executes a registered task immediately on the calling goroutine.
func (s *Scheduler) RunNow(name string) error {
	task, err := s.lookup(name)
	if err != nil {
		return err
	}
	s.run(name, task)
	return nil
}

// RunAfter executes a registered task once after delay, independently of its
// interval schedule.
func (s *Scheduler) RunAfter(name string, delay time.Duration) error {
	task, err := s.lookup(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.wg.Add(1)
	t := time.AfterFunc(delay, func() {
		defer s.wg.Done()
		s.run(name, task)
	})
	s.timers = append(s.timers, t)
	s.mu.Unlock()
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop cancels pending one-shot runs, stops the cron scheduler and waits for
// running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	for _, t := range s.timers {
		if t.Stop() {
			s.wg.Done()
		}
	}
	s.timers = nil
	s.mu.Unlock()

	<-s.Cron.Stop().Done()
	s.wg.Wait()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) lookup(name string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[name]
	if !ok {
		return nil, errors.New("unknown task: " + name)
	}
	return task, nil
}

func (s *Scheduler) run(name string, task Task) {
	if s.Ctx.Err() != nil {
		return
	}
	log.Printf("[INFO] running %s", name)
	task(s.Ctx)
}
