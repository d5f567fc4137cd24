package pincrawl

// DownloadOutcome classifies the terminal state of one download attempt.
type DownloadOutcome int

// Download outcomes. Every candidate produces exactly one.
const (
	OutcomeAccepted DownloadOutcome = iota
	OutcomeRejected
	OutcomeFailed
)

// DownloadResult is produced by a download worker when a candidate completes.
// It is immutable once created.
type DownloadResult struct {
	Candidate ImageCandidate
	Outcome   DownloadOutcome

	// Path and Bytes are set for accepted results.
	Path  string
	Bytes int

	// Reason is set for rejected results.
	Reason RejectReason

	// Err is set for failed results.
	Err error
}

// Counters aggregates download results across the whole pipeline run.
// At completion Attempted == Accepted + Rejected + Failed.
type Counters struct {
	Attempted int
	Accepted  int
	Rejected  int
	Failed    int
}

// Record folds a result into the counters.
func (c *Counters) Record(res DownloadResult) {
	c.Attempted++
	switch res.Outcome {
	case OutcomeAccepted:
		c.Accepted++
	case OutcomeRejected:
		c.Rejected++
	case OutcomeFailed:
		c.Failed++
	}
}

// ProgressFunc is invoked by the download pipeline every N completions.
// It is best-effort and must not block the pipeline materially.
type ProgressFunc func(completed, total int)
