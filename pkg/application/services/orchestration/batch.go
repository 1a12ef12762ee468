package orchestration

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/slotwise/pkg/application/dto"
	"github.com/vsinha/slotwise/pkg/domain/entities"
	"github.com/vsinha/slotwise/pkg/domain/repositories"
)

// Job is one warehouse dataset of a batch
type Job struct {
	Name    string
	Source  repositories.RowSource
	Profile *entities.WarehouseProfile
}

// JobResult pairs a job with its outcome. Exactly one of Result and Err is set
// for jobs that ran; jobs skipped by a fail-fast batch carry the context error.
type JobResult struct {
	Name   string
	Result *dto.AnalysisResult
	Err    error
}

// BatchRunner analyzes several independent datasets in parallel. Each run owns
// its intermediate state; only the Analyzer is shared.
type BatchRunner struct {
	analyzer    *Analyzer
	concurrency int
	failFast    bool
	logger      *zap.Logger
}

// NewBatchRunner creates a runner. concurrency <= 0 runs every job at once.
// With failFast the first failing job cancels the jobs that have not started.
func NewBatchRunner(analyzer *Analyzer, concurrency int, failFast bool, logger *zap.Logger) *BatchRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchRunner{
		analyzer:    analyzer,
		concurrency: concurrency,
		failFast:    failFast,
		logger:      logger,
	}
}

// Run executes jobs and returns their results in job order. The error is
// non-nil only in fail-fast mode and is the first job failure.
func (b *BatchRunner) Run(ctx context.Context, jobs []Job) ([]JobResult, error) {
	results := make([]JobResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	if b.concurrency > 0 {
		g.SetLimit(b.concurrency)
	}

	for i, job := range jobs {
		i, job := i, job
		results[i].Name = job.Name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			result, err := b.runJob(gctx, job)
			results[i].Result, results[i].Err = result, err
			if err != nil {
				b.logger.Warn("batch job failed", zap.String("job", job.Name), zap.Error(err))
				if b.failFast {
					return fmt.Errorf("job %s: %w", job.Name, err)
				}
			}
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

func (b *BatchRunner) runJob(ctx context.Context, job Job) (*dto.AnalysisResult, error) {
	rows, err := job.Source.LoadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rows from %s: %w", job.Source.Name(), err)
	}
	return b.analyzer.Analyze(ctx, rows, job.Profile)
}
