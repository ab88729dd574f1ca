package tennisd

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/courtpredict/tennis-core/pkg/models"
	"github.com/courtpredict/tennis-core/pkg/utils"
)

// JobRecord pairs a job with its batch result once one exists.
type JobRecord struct {
	Job    models.Job
	Result *models.SimulationBatch
}

// JobStore is the in-memory job registry. All accessors return value
// snapshots so callers never observe a record mid-update.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*JobRecord
}

func NewJobStore() *JobStore {
	return &JobStore{
		jobs: make(map[string]*JobRecord),
	}
}

func nowUnixMs() int64 {
	return time.Now().UTC().UnixMilli()
}

// Create registers a new pending job. An empty jobID gets a generated one.
func (s *JobStore) Create(jobID string) (JobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if jobID == "" {
		jobID = utils.GenerateJobID()
	}
	if _, exists := s.jobs[jobID]; exists {
		return JobRecord{}, fmt.Errorf("job already exists: %s", jobID)
	}

	rec := &JobRecord{
		Job: models.Job{
			ID:              jobID,
			Status:          models.JobStatusPending,
			CreatedAtUnixMs: nowUnixMs(),
		},
	}
	s.jobs[jobID] = rec
	return *rec, nil
}

func (s *JobStore) Get(jobID string) (JobRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.jobs[jobID]
	if !ok {
		return JobRecord{}, false
	}
	return *rec, true
}

// List returns up to limit jobs, newest first.
func (s *JobStore) List(limit int) []JobRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	out := make([]JobRecord, 0, len(s.jobs))
	for _, rec := range s.jobs {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Job.CreatedAtUnixMs != out[j].Job.CreatedAtUnixMs {
			return out[i].Job.CreatedAtUnixMs > out[j].Job.CreatedAtUnixMs
		}
		return out[i].Job.ID < out[j].Job.ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SetStatus transitions a job, stamping started/ended times. Terminal
// jobs are immutable.
func (s *JobStore) SetStatus(jobID string, status models.JobStatus, errMsg string) (JobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.jobs[jobID]
	if !ok {
		return JobRecord{}, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if rec.Job.Status.Terminal() {
		return JobRecord{}, fmt.Errorf("%w: %s", ErrJobTerminal, jobID)
	}

	rec.Job.Status = status
	if errMsg != "" {
		rec.Job.Error = errMsg
	}

	switch status {
	case models.JobStatusRunning:
		if rec.Job.StartedAtUnixMs == 0 {
			rec.Job.StartedAtUnixMs = nowUnixMs()
		}
	case models.JobStatusCompleted, models.JobStatusFailed, models.JobStatusCancelled:
		rec.Job.EndedAtUnixMs = nowUnixMs()
	}

	return *rec, nil
}

func (s *JobStore) SetResult(jobID string, result *models.SimulationBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.jobs[jobID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	rec.Result = result
	return nil
}
