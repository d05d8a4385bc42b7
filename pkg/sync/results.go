package sync

import "github.com/okrause/tmplsync/pkg/manifest"

// Outcome is the per-entry result of a sync pass.
type Outcome string

const (
	OutcomeUpToDate      Outcome = "up-to-date"
	OutcomeUpdated       Outcome = "updated"
	OutcomeWouldUpdate   Outcome = "would-update"
	OutcomeSourceMissing Outcome = "source-missing"
	OutcomeFailed        Outcome = "failed"
)

// Result records what happened to a single manifest entry.
type Result struct {
	Entry   manifest.Entry
	Outcome Outcome
	Err     error // set only when Outcome is OutcomeFailed
}

// Report is the aggregate outcome of a sync run. Updated counts entries that
// were updated, or would have been in a dry run.
type Report struct {
	Results []Result
	Updated int
	DryRun  bool
}
