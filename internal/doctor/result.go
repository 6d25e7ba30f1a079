package doctor

// Status is the outcome of a single health check.
type Status string

const (
	// StatusOK indicates the check passed.
	StatusOK Status = "ok"

	// StatusWarn indicates a non-fatal problem; sync may still work.
	StatusWarn Status = "warn"

	// StatusFail indicates a problem that will break sync.
	StatusFail Status = "fail"
)

// Result is the outcome of one check.
type Result struct {
	// Name identifies the check, e.g. "config", "registry".
	Name string

	// Status is the outcome.
	Status Status

	// Detail is a one-line explanation shown to the user.
	Detail string

	// Suggestion tells the user how to fix a warn/fail. Optional.
	Suggestion string
}

// Failed reports whether any result has StatusFail.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
