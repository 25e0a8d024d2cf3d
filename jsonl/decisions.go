package jsonl

import (
	"errors"
	"os"
	"time"

	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var _ redline.DecisionLog = (*DecisionLog)(nil)

// DecisionRecord is one line of a decision log.
type DecisionRecord struct {
	Time     time.Time `json:"time"`
	Document string    `json:"document"`
	redline.Decision
}

// DecisionLog appends review decisions to JSONL files.
type DecisionLog struct {
	now func() time.Time
}

// NewDecisionLog creates a new DecisionLog.
func NewDecisionLog() *DecisionLog {
	return &DecisionLog{now: time.Now}
}

// Append adds one record per decision to the end of the file at path,
// creating the file and parent directories if needed.
func (l *DecisionLog) Append(path, document string, decisions []redline.Decision) error {
	if len(decisions) == 0 {
		return nil
	}

	now := l.now().UTC()
	records := make([]DecisionRecord, len(decisions))
	for i, d := range decisions {
		records[i] = DecisionRecord{Time: now, Document: document, Decision: d}
	}

	f, err := openFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY)
	if err != nil {
		return err
	}
	if err := encode(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads all records from a decision log. A missing file is an empty log.
func (l *DecisionLog) Load(path string) ([]DecisionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	return decode[DecisionRecord](f)
}
