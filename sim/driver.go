package sim

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tycoon-sim/tycoon/sim/company"
)

// commandQueueSize bounds the number of commands waiting between polls.
const commandQueueSize = 16

// minPollInterval is the floor applied to derived poll intervals.
const minPollInterval = time.Millisecond

// IsTickDue reports whether a tick should run at now: speed has elapsed since
// the last recorded tick time.
func IsTickDue(tf *Timeframe, now time.Time) bool {
	return !now.Before(tf.LastTickTime().Add(tf.Speed()))
}

// DriverConfig controls the driver loop.
type DriverConfig struct {
	PollInterval time.Duration // 0 = Speed/10, floored at 1ms
	MaxTicks     uint64        // 0 = run until the context is cancelled
	HaltOnError  bool          // false = log and skip a failed tick
}

// Command mutates the company between ticks. Commands run on the driver's
// goroutine, never concurrently with a tick.
type Command func(c *company.Company)

// AddCash returns a command that deposits amount.
func AddCash(amount int64) Command {
	return func(c *company.Company) { c.AddCash(amount) }
}

// RemoveCash returns a command that withdraws amount.
func RemoveCash(amount int64) Command {
	return func(c *company.Company) { c.RemoveCash(amount) }
}

// CycleDirection returns a command that moves the company to its next direction.
func CycleDirection() Command {
	return func(c *company.Company) { c.CycleDirection() }
}

// Driver decides when ticks are due and owns the world, company and software
// while it runs.
type Driver struct {
	world    *World
	company  *company.Company
	software *Software
	clock    Clock
	cfg      DriverConfig

	commands chan Command
	ticks    uint64 // ticks processed by this driver, skipped ones included
	skipped  uint64
}

// NewDriver creates a Driver. If the world has not been started, it is started
// at the clock's current time.
func NewDriver(world *World, c *company.Company, software *Software, clock Clock, cfg DriverConfig) *Driver {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = world.Speed() / 10
		if cfg.PollInterval < minPollInterval {
			cfg.PollInterval = minPollInterval
		}
	}
	if world.Timeframe().StartTime().IsZero() {
		world.Start(clock.Now())
	}
	return &Driver{
		world:    world,
		company:  c,
		software: software,
		clock:    clock,
		cfg:      cfg,
		commands: make(chan Command, commandQueueSize),
	}
}

// Poll reads the clock once and runs a tick if one is due. It reports true
// whenever the game tick counter advanced, even if the update failed.
//
// With HaltOnError set, a failed tick is counted and its error returned; its
// time is not recorded, so the next poll is immediately due. Otherwise the
// failure is logged, its time recorded, and the error dropped.
func (d *Driver) Poll() (bool, error) {
	now := d.clock.Now()
	if !IsTickDue(d.world.Timeframe(), now) {
		return false, nil
	}
	if err := d.world.Tick(d.company, d.software, now); err != nil {
		if d.cfg.HaltOnError {
			d.ticks++
			return true, err
		}
		logrus.Warnf("[tick %07d] skipped: %v", d.world.GameTicks(), err)
		d.world.Timeframe().RecordTime(now)
		d.skipped++
	}
	d.ticks++
	return true, nil
}

// Submit queues cmd for the next poll. It returns false if the queue is full.
func (d *Driver) Submit(cmd Command) bool {
	select {
	case d.commands <- cmd:
		return true
	default:
		return false
	}
}

// Run polls until ctx is done, MaxTicks ticks have run, or a tick fails with
// HaltOnError set. Queued commands are applied before each poll.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	logrus.Infof("[tick %07d] Driver running (poll every %s)", d.world.GameTicks(), d.cfg.PollInterval)
	for {
		if d.cfg.MaxTicks > 0 && d.ticks >= d.cfg.MaxTicks {
			logrus.Infof("[tick %07d] Driver reached %d ticks", d.world.GameTicks(), d.ticks)
			return nil
		}
		select {
		case <-ctx.Done():
			logrus.Infof("[tick %07d] Driver stopped: %v", d.world.GameTicks(), ctx.Err())
			return nil
		case cmd := <-d.commands:
			cmd(d.company)
		case <-ticker.C:
			d.drainCommands()
			if _, err := d.Poll(); err != nil {
				return err
			}
		}
	}
}

func (d *Driver) drainCommands() {
	for {
		select {
		case cmd := <-d.commands:
			cmd(d.company)
		default:
			return
		}
	}
}

// Ticks returns the number of ticks this driver has processed.
func (d *Driver) Ticks() uint64 { return d.ticks }

// Skipped returns the number of ticks whose update step failed and was skipped.
func (d *Driver) Skipped() uint64 { return d.skipped }

// PollInterval returns the effective poll interval.
func (d *Driver) PollInterval() time.Duration { return d.cfg.PollInterval }
