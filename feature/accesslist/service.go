package accesslist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"allowlist-sync/core/reconcile"
	"allowlist-sync/core/resolver"
	"allowlist-sync/core/snapshot"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ErrColumnMissing is returned by a dry run when the domain column does not exist yet.
var ErrColumnMissing = errors.New("domain column is missing, run `column add` first")

// RunReport describes one reconciliation pass.
type RunReport struct {
	ID         string                   `json:"id"`
	StartedAt  time.Time                `json:"started_at"`
	FinishedAt time.Time                `json:"finished_at"`
	DryRun     bool                     `json:"dry_run"`
	Summary    reconcile.PlanSummary    `json:"summary"`
	Plan       *reconcile.ReconcilePlan `json:"plan,omitempty"`
	Result     *reconcile.ApplyResult   `json:"result,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

// Service runs reconciliation passes against the allowlist table.
type Service struct {
	spec    *reconcile.Spec
	columns *ColumnManager
	logger  *zap.Logger

	group singleflight.Group
	runMu sync.Mutex

	lastMu sync.RWMutex
	last   *RunReport
}

// NewService creates a service. patcher and reloader may be nil.
func NewService(db *gorm.DB, snapshots snapshot.Store, r resolver.Resolver, patcher reconcile.Patcher, reloader reconcile.Reloader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		spec: &reconcile.Spec{
			Entries:   NewRepository(db),
			Snapshots: snapshots,
			Resolver:  r,
			Patcher:   patcher,
			Reloader:  reloader,
			Logger:    logger,
		},
		columns: NewColumnManager(db),
		logger:  logger,
	}
}

// Columns returns the domain column manager.
func (s *Service) Columns() *ColumnManager {
	return s.columns
}

// Prepare makes sure the domain column exists.
func (s *Service) Prepare(ctx context.Context) error {
	added, err := s.columns.Ensure(ctx)
	if err != nil {
		return err
	}
	if added {
		s.logger.Info("Domain column added", zap.String("table", s.columns.table))
	}
	return nil
}

// Run executes one pass. Concurrent calls with the same dryRun share a single
// pass, and passes never overlap.
func (s *Service) Run(ctx context.Context, dryRun bool) (*RunReport, error) {
	key := "apply"
	if dryRun {
		key = "dry-run"
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		s.runMu.Lock()
		defer s.runMu.Unlock()
		return s.run(ctx, dryRun)
	})
	report, _ := v.(*RunReport)
	return report, err
}

func (s *Service) run(ctx context.Context, dryRun bool) (*RunReport, error) {
	report := &RunReport{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		DryRun:    dryRun,
	}
	l := s.logger.With(zap.String("run_id", report.ID), zap.Bool("dry_run", dryRun))
	l.Info("Reconciliation started")

	err := s.execute(ctx, dryRun, report)
	report.FinishedAt = time.Now()
	if err != nil {
		report.Error = err.Error()
		l.Error("Reconciliation failed", zap.Error(err))
	} else if report.Summary.Changes > 0 {
		l.Info("Total changes", zap.Int("changes", report.Summary.Changes))
	} else {
		l.Info("No changes")
	}

	s.lastMu.Lock()
	s.last = report
	s.lastMu.Unlock()

	return report, err
}

func (s *Service) execute(ctx context.Context, dryRun bool, report *RunReport) error {
	if dryRun {
		exists, err := s.columns.Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return ErrColumnMissing
		}
	} else if err := s.Prepare(ctx); err != nil {
		return err
	}

	spec := *s.spec
	spec.Logger = s.logger.With(zap.String("run_id", report.ID))

	plan, err := reconcile.ReconcileWithPlan(ctx, &spec)
	if err != nil {
		return err
	}
	report.Plan = plan
	report.Summary = plan.Summary

	result, err := reconcile.ApplyPlan(ctx, &spec, plan, reconcile.ReconcileOptions{DryRun: dryRun})
	report.Result = result
	return err
}

// LastRun returns the report of the most recent pass.
func (s *Service) LastRun() (*RunReport, bool) {
	s.lastMu.RLock()
	defer s.lastMu.RUnlock()
	return s.last, s.last != nil
}

// Entries returns the current allowlist rows.
func (s *Service) Entries(ctx context.Context) ([]reconcile.Entry, error) {
	return s.spec.Entries.LoadEntries(ctx)
}

// Snapshot returns the persisted snapshot.
func (s *Service) Snapshot(ctx context.Context) (snapshot.Snapshot, error) {
	snap, err := s.spec.Snapshots.Load(ctx)
	if err != nil {
		if !errors.Is(err, snapshot.ErrCorrupt) {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		s.logger.Warn("Snapshot is unreadable", zap.Error(err))
		return snapshot.Snapshot{}, nil
	}
	return snap, nil
}

// RunEvery runs a pass every interval until ctx is done. A pass that has
// started is not cancelled by ctx; it commits or fails on its own.
func (s *Service) RunEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			// Failures are already logged and kept in the last report
			_, _ = s.Run(context.WithoutCancel(ctx), false)
		}
	}
}

// Wait blocks until the pass in progress, if any, has finished.
func (s *Service) Wait() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
}
