package domain

// URLResult is the outcome of processing one source URL. A failed fetch
// terminates only that URL's task; sibling URLs are unaffected.
type URLResult struct {
	URL        string
	Err        error // non-nil means the fetch failed
	Candidates int   // distinct candidates extracted from the page
	Added      int   // names confirmed written to the store
	Duplicates int   // candidates already present in the ledger
	WriteFails int   // names dropped after write retries exhausted
}

// Failed reports whether the URL's task ended in the failed state.
func (r URLResult) Failed() bool {
	return r.Err != nil
}

// Summary aggregates the per-URL outcomes of one pipeline run.
type Summary struct {
	URLs       int
	Failed     int
	Candidates int
	Added      int
	Duplicates int
	WriteFails int
}

// Add folds a single URL outcome into the summary.
func (s *Summary) Add(r URLResult) {
	s.URLs++
	if r.Failed() {
		s.Failed++
		return
	}
	s.Candidates += r.Candidates
	s.Added += r.Added
	s.Duplicates += r.Duplicates
	s.WriteFails += r.WriteFails
}
