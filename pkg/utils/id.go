package utils

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid/v5"
)

var idCounter uint64

// GenerateJobID generates a job ID with a timestamp prefix and a short
// random tail, e.g. "job-20250614-213045-1a2b3c4d".
func GenerateJobID() string {
	timestamp := time.Now().Format("20060102-150405")
	id, err := uuid.NewV4()
	if err != nil {
		// Fallback to a counter-based tail
		count := atomic.AddUint64(&idCounter, 1)
		return fmt.Sprintf("job-%s-%x", timestamp, count)
	}
	return fmt.Sprintf("job-%s-%s", timestamp, id.String()[:8])
}
