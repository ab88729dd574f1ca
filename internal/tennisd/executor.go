package tennisd

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/courtpredict/tennis-core/internal/montecarlo"
	"github.com/courtpredict/tennis-core/pkg/logger"
	"github.com/courtpredict/tennis-core/pkg/models"
)

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrJobTerminal  = errors.New("job is terminal")
	ErrJobIDMissing = errors.New("job id is required")
)

// SimulationParams is everything a batch job needs to run.
type SimulationParams struct {
	Config          models.MatchConfig
	Runs            int
	Seed            int64
	Workers         int
	RandomizeServer bool
}

// JobExecutor runs batch simulations asynchronously with per-job
// cancellation.
type JobExecutor struct {
	store *JobStore

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

func NewJobExecutor(store *JobStore) *JobExecutor {
	return &JobExecutor{
		store:   store,
		cancels: make(map[string]context.CancelFunc),
	}
}

// Submit registers a job and starts it immediately. The returned record
// is already in the running state.
func (e *JobExecutor) Submit(params SimulationParams) (JobRecord, error) {
	if err := params.Config.Validate(); err != nil {
		return JobRecord{}, err
	}
	if params.Runs < 1 {
		return JobRecord{}, fmt.Errorf("%w: runs must be at least 1, got %d", models.ErrInvalidConfig, params.Runs)
	}

	rec, err := e.store.Create("")
	if err != nil {
		return JobRecord{}, err
	}
	jobID := rec.Job.ID

	updated, err := e.store.SetStatus(jobID, models.JobStatusRunning, "")
	if err != nil {
		return JobRecord{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.mu.Lock()
	e.cancels[jobID] = cancel
	e.mu.Unlock()

	go e.runSimulation(ctx, jobID, params)
	return updated, nil
}

// Stop cancels a running job and marks it cancelled.
func (e *JobExecutor) Stop(jobID string) (JobRecord, error) {
	if jobID == "" {
		return JobRecord{}, ErrJobIDMissing
	}

	rec, ok := e.store.Get(jobID)
	if !ok {
		return JobRecord{}, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if rec.Job.Status.Terminal() {
		return JobRecord{}, fmt.Errorf("%w: %s", ErrJobTerminal, jobID)
	}

	e.mu.Lock()
	cancel, registered := e.cancels[jobID]
	e.mu.Unlock()
	if registered {
		cancel()
	}

	updated, err := e.store.SetStatus(jobID, models.JobStatusCancelled, "")
	if err != nil {
		return JobRecord{}, err
	}
	return updated, nil
}

func (e *JobExecutor) cleanup(jobID string) {
	e.mu.Lock()
	if cancel, ok := e.cancels[jobID]; ok {
		cancel()
		delete(e.cancels, jobID)
	}
	e.mu.Unlock()
}

func (e *JobExecutor) runSimulation(ctx context.Context, jobID string, params SimulationParams) {
	defer e.cleanup(jobID)

	runner := montecarlo.NewRunner(params.Workers)
	runner.SetRandomizeServer(params.RandomizeServer)

	logger.Info("simulation started",
		"job_id", jobID,
		"player1", params.Config.Player1.PlayerName(),
		"player2", params.Config.Player2.PlayerName(),
		"runs", params.Runs)

	batch, err := runner.Run(ctx, params.Config, params.Runs, params.Seed)
	if err != nil {
		if ctx.Err() != nil {
			// Stop already marked the job cancelled.
			logger.Info("simulation cancelled", "job_id", jobID)
			return
		}
		logger.Error("simulation failed", "job_id", jobID, "error", err)
		if _, setErr := e.store.SetStatus(jobID, models.JobStatusFailed, err.Error()); setErr != nil {
			logger.Error("failed to set failed status", "job_id", jobID, "error", setErr)
		}
		return
	}

	if err := e.store.SetResult(jobID, batch); err != nil {
		logger.Error("failed to store result", "job_id", jobID, "error", err)
		return
	}
	if _, err := e.store.SetStatus(jobID, models.JobStatusCompleted, ""); err != nil {
		// A concurrent Stop can win the race; the cancelled state stands.
		logger.Warn("job not marked completed", "job_id", jobID, "error", err)
		return
	}
	logger.Info("simulation completed",
		"job_id", jobID,
		"winner_pct_p1", batch.Players[0].WinPercentage,
		"winner_pct_p2", batch.Players[1].WinPercentage)
}
