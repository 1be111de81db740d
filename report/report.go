package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	"mozartcheck/model"
)

// NewRun starts an empty run record with a fresh ID and timestamp.
func NewRun() *model.RunResults {
	return &model.RunResults{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().Format(time.RFC3339),
		Analyses:  []model.Analysis{},
	}
}

// Add appends one per-file analysis and keeps the counters in step.
// Error entries count toward TotalFiles only.
func Add(r *model.RunResults, a model.Analysis) {
	r.Analyses = append(r.Analyses, a)
	r.TotalFiles++
	if a.Error != "" {
		return
	}
	if a.Valid {
		r.ValidFiles++
	} else {
		r.FilesWithViolations++
	}
}

// Write serializes the run as indented JSON.
func Write(path string, r *model.RunResults) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
