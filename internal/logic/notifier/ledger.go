package notifier

import "maps"

// RestartCounts maps container name to its last seen restart count.
type RestartCounts map[string]int32

// Ledger remembers the last seen restart count of every container of every
// live pod, keyed by pod UID. It is owned by the watch loop goroutine and is
// not safe for concurrent use.
type Ledger struct {
	pods map[string]RestartCounts
}

func NewLedger() *Ledger {
	return &Ledger{
		pods: make(map[string]RestartCounts),
	}
}

// GetOrInit returns the recorded counts of a known pod. An unknown pod is
// recorded with current and reported as new; previous is then nil.
func (l *Ledger) GetOrInit(uid string, current RestartCounts) (bool, RestartCounts) {
	recorded, ok := l.pods[uid]
	if !ok {
		l.pods[uid] = cloneCounts(current)

		return true, nil
	}

	return false, maps.Clone(recorded)
}

// Seed records the counts of a pod seen during a (re)list, replacing any
// previous entry.
func (l *Ledger) Seed(uid string, current RestartCounts) {
	l.pods[uid] = cloneCounts(current)
}

// Update raises the recorded count of a container. Unknown pods and lower
// counts are ignored.
func (l *Ledger) Update(uid, container string, count int32) {
	recorded, ok := l.pods[uid]
	if !ok {
		return
	}

	if count > recorded[container] {
		recorded[container] = count
	}
}

// recorded returns the count of a container, zero when unknown.
func (l *Ledger) recorded(uid, container string) (int32, bool) {
	recorded, ok := l.pods[uid]
	if !ok {
		return 0, false
	}

	return recorded[container], true
}

func (l *Ledger) contains(uid string) bool {
	_, ok := l.pods[uid]

	return ok
}

func (l *Ledger) Remove(uid string) {
	delete(l.pods, uid)
}

func (l *Ledger) Clear() {
	clear(l.pods)
}

func (l *Ledger) Len() int {
	return len(l.pods)
}

func cloneCounts(in RestartCounts) RestartCounts {
	out := make(RestartCounts, len(in))

	for name, count := range in {
		if count < 0 {
			count = 0
		}

		out[name] = count
	}

	return out
}
