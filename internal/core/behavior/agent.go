package behavior

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zeusync/soccerbrain/internal/core/events/bus"
	"github.com/zeusync/soccerbrain/internal/core/motion"
	"github.com/zeusync/soccerbrain/internal/core/observability/log"
)

const agentSource = "behavior.agent"

// agent is the default Agent implementation.
type agent struct {
	mu       sync.Mutex
	registry Registry
	provider Provider
	mem      Memory
	events   bus.EventBus
	logger   log.Log
	clock    func() time.Time

	lastFingerprint uint64
	hasLast         bool
}

// NewAgent constructs an Agent from its collaborators. A nil memory, bus or
// logger is replaced by a default.
func NewAgent(registry Registry, provider Provider, mem Memory, eb bus.EventBus, logger log.Log) Agent {
	if mem == nil {
		mem = NewMemory(DefaultHistorySize)
	}
	if eb == nil {
		eb = bus.New()
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &agent{
		registry: registry,
		provider: provider,
		mem:      mem,
		events:   eb,
		logger:   logger.With(log.String("component", agentSource)),
		clock:    time.Now,
	}
}

func (a *agent) Memory() Memory       { return a.mem }
func (a *agent) Events() bus.EventBus { return a.events }

func (a *agent) Step(ctx context.Context) (CycleReport, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := a.clock()
	report := CycleReport{ID: uuid.NewString()}

	cmd, err := a.decide(ctx, &report)
	if err != nil {
		cmd = motion.Stand()
		report.Fallback = true
		report.Err = err.Error()
		a.logger.Warn("cycle fell back to stand",
			log.Uint64("cycle", report.Cycle),
			log.Stringer("role", report.Role),
			log.Error(err),
		)
	}

	report.Command = cmd
	report.Fingerprint = cmd.Fingerprint()
	report.Changed = !a.hasLast || report.Fingerprint != a.lastFingerprint
	a.lastFingerprint, a.hasLast = report.Fingerprint, true
	report.Timestamp = a.clock()
	report.Duration = report.Timestamp.Sub(start)

	a.mem.AppendDecision(DecisionRecord{
		ID:          report.ID,
		Cycle:       report.Cycle,
		Role:        report.Role,
		Fingerprint: report.Fingerprint,
		Fallback:    report.Fallback,
		Duration:    report.Duration,
		Timestamp:   report.Timestamp,
	})

	a.logger.Debug("cycle",
		log.Uint64("cycle", report.Cycle),
		log.Stringer("role", report.Role),
		log.Pose("target", cmd.Body.Target),
		log.Stringer("walk_mode", cmd.Body.Mode),
		log.Stringer("head_mode", cmd.Head.Mode),
		log.Bool("changed", report.Changed),
		log.Duration("took", report.Duration),
	)

	if perr := a.events.Publish(bus.NewEvent(CycleReportEvent, agentSource, report.Timestamp, report)); perr != nil {
		a.logger.Error("cycle report delivery failed", log.Uint64("cycle", report.Cycle), log.Error(perr))
	}
	return report, err
}

// decide runs the snapshot, lookup and behavior. A panicking behavior is
// turned into an error so the caller can emit the safe default.
func (a *agent) decide(ctx context.Context, report *CycleReport) (cmd motion.ActionCommand, err error) {
	d, err := a.provider.Snapshot(ctx)
	if err != nil {
		return cmd, fmt.Errorf("snapshot: %w", err)
	}
	report.Cycle, report.Role = d.Cycle, d.Role

	b, err := a.registry.Lookup(d.Role)
	if err != nil {
		return cmd, err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("role %s panicked: %v", d.Role, r)
		}
	}()
	return b.Execute(d), nil
}

func (a *agent) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("cycle interval must be positive, got %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	a.logger.Info("cycle loop started", log.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("cycle loop stopped", log.Int("decisions", len(a.mem.History())))
			return nil
		case <-ticker.C:
			// select picks at random when both are ready.
			if ctx.Err() != nil {
				continue
			}
			// Step already logged and fell back on error.
			_, _ = a.Step(ctx)
		}
	}
}
