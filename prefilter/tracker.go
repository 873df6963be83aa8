package prefilter

// Tracker retires a prefilter that keeps producing candidates the matcher
// rejects. Once the ratio of confirmed matches to candidates drops below
// MinEfficiency (after a warmup), Find reports -1 and Active turns false for
// the rest of the search; the caller then scans every position.
//
//	tr.Reset()
//	for {
//	    pos := tr.Find(haystack, start)
//	    if pos < 0 {
//	        if tr.Active() {
//	            return nil // no candidates left
//	        }
//	        // retired: scan from start without the prefilter
//	    }
//	    if match := verify(pos); match != nil {
//	        tr.ConfirmMatch()
//	        return match
//	    }
//	    start = pos + 1
//	}
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	inner  Prefilter
	config TrackerConfig

	candidates uint64
	confirms   uint64
	checkpoint uint64
	active     bool
}

// TrackerConfig tunes when a Tracker gives up on its prefilter.
type TrackerConfig struct {
	// CheckInterval is the number of candidates between checks. Default: 64.
	CheckInterval uint64

	// MinEfficiency is the lowest acceptable confirms/candidates ratio.
	// Default: 0.1.
	MinEfficiency float64

	// WarmupPeriod is the number of candidates seen before the first check.
	// Default: 128.
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker wraps inner. It returns nil for a nil prefilter.
func NewTracker(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	return &Tracker{inner: inner, config: config, active: true}
}

// Find returns the next candidate, or -1 when there is none or the tracker
// has retired the prefilter.
func (t *Tracker) Find(haystack []byte, start int) int {
	if !t.active {
		return -1
	}
	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.check()
	}
	return pos
}

// ConfirmMatch records that the last candidate produced a match.
func (t *Tracker) ConfirmMatch() {
	t.confirms++
}

// Active reports whether the prefilter is still in use.
func (t *Tracker) Active() bool {
	return t.active
}

// Reset clears the counters and reactivates the prefilter.
func (t *Tracker) Reset() {
	t.candidates, t.confirms, t.checkpoint = 0, 0, 0
	t.active = true
}

// Stats returns the candidate and confirm counts.
func (t *Tracker) Stats() (candidates, confirms uint64) {
	return t.candidates, t.confirms
}

func (t *Tracker) check() {
	if t.candidates < t.config.WarmupPeriod {
		return
	}
	if t.candidates-t.checkpoint < t.config.CheckInterval {
		return
	}
	t.checkpoint = t.candidates
	if float64(t.confirms)/float64(t.candidates) < t.config.MinEfficiency {
		t.active = false
	}
}
