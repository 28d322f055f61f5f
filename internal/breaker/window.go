package breaker

import (
	"sort"
	"time"
)

// violationWindow holds one timestamp per violation, oldest first.
// It is not safe for concurrent use; the breaker lock guards it.
type violationWindow struct {
	size       time.Duration
	timestamps []time.Time
}

func newViolationWindow(size time.Duration) *violationWindow {
	return &violationWindow{size: size}
}

// prune drops every entry strictly older than now - size. Entries are
// ascending, so this is a prefix trim.
func (w *violationWindow) prune(now time.Time) {
	start := now.Add(-w.size)

	cutoff := 0
	for cutoff < len(w.timestamps) && w.timestamps[cutoff].Before(start) {
		cutoff++
	}
	if cutoff == 0 {
		return
	}

	// Shift instead of reslicing so the backing array does not grow without bound.
	n := copy(w.timestamps, w.timestamps[cutoff:])
	clear(w.timestamps[n:])
	w.timestamps = w.timestamps[:n]
}

// record appends now. A timestamp earlier than the newest entry is clamped to
// it so the window stays sorted even if the clock steps backwards.
func (w *violationWindow) record(now time.Time) {
	if n := len(w.timestamps); n > 0 && now.Before(w.timestamps[n-1]) {
		now = w.timestamps[n-1]
	}
	w.timestamps = append(w.timestamps, now)
}

func (w *violationWindow) reset() {
	clear(w.timestamps)
	w.timestamps = w.timestamps[:0]
}

func (w *violationWindow) len() int {
	return len(w.timestamps)
}

// live counts the entries a prune at now would keep, without pruning.
func (w *violationWindow) live(now time.Time) int {
	start := now.Add(-w.size)
	i := sort.Search(len(w.timestamps), func(i int) bool {
		return !w.timestamps[i].Before(start)
	})
	return len(w.timestamps) - i
}

// snapshot returns a copy of the timestamps.
func (w *violationWindow) snapshot() []time.Time {
	out := make([]time.Time, len(w.timestamps))
	copy(out, w.timestamps)
	return out
}
