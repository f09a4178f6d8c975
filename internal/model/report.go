package model

type OutcomeStatus string

const (
	StatusSynced    OutcomeStatus = "SYNCED"
	StatusSkipped   OutcomeStatus = "SKIPPED"
	StatusFailed    OutcomeStatus = "FAILED"
	StatusWouldSync OutcomeStatus = "WOULD_SYNC"
)

// Skip reasons, in filter precedence order.
const (
	ReasonRequiresExport = "requires export"
	ReasonIsFolder       = "is a folder"
	ReasonExceedsSize    = "exceeds size limit"
	ReasonAlreadyExists  = "already exists"
	ReasonDryRun         = "dry run"
)

// Outcome is the terminal result for a single listed file. Exactly one
// Outcome is produced per FileRecord.
type Outcome struct {
	FileID string
	Name   string
	Key    string
	Status OutcomeStatus
	Reason string
	Bytes  int64
	Err    error
}

func Synced(rec FileRecord, key string, bytes int64) Outcome {
	return Outcome{FileID: rec.ID, Name: rec.Name, Key: key, Status: StatusSynced, Bytes: bytes}
}

func Skipped(rec FileRecord, key, reason string) Outcome {
	return Outcome{FileID: rec.ID, Name: rec.Name, Key: key, Status: StatusSkipped, Reason: reason}
}

func Failed(rec FileRecord, key string, err error) Outcome {
	return Outcome{FileID: rec.ID, Name: rec.Name, Key: key, Status: StatusFailed, Err: err}
}

func WouldSync(rec FileRecord, key string) Outcome {
	return Outcome{FileID: rec.ID, Name: rec.Name, Key: key, Status: StatusWouldSync, Reason: ReasonDryRun}
}

// Report is the running tally for one sync run. It is owned by the
// orchestrator and mutated from a single goroutine.
type Report struct {
	Found       int
	Synced      int
	Skipped     int
	Failed      int
	WouldSync   int
	Batches     int
	TotalBytes  int64
	SkipReasons map[string]int
	PartialList bool
}

func NewReport() *Report {
	return &Report{SkipReasons: make(map[string]int)}
}

// Record folds one outcome into the tally. Would-sync outcomes count as
// skipped so that Found == Synced + Skipped + Failed holds for dry runs too.
func (r *Report) Record(o Outcome) {
	switch o.Status {
	case StatusSynced:
		r.Synced++
		r.TotalBytes += o.Bytes
	case StatusSkipped:
		r.Skipped++
		r.SkipReasons[o.Reason]++
	case StatusWouldSync:
		r.WouldSync++
		r.Skipped++
		r.SkipReasons[o.Reason]++
	case StatusFailed:
		r.Failed++
	}
}
