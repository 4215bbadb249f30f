package refseq

import "sync"

type baseKey struct {
	accession string
	pos       int64
}

type rangeKey struct {
	accession  string
	start, end int64
}

// Memo wraps a Gateway with an in-process cache keyed by call arguments.
// Nearby variants share anchor positions, so the same lookups recur across a
// batch. Only successful fetches are stored: a failed lookup is retried on
// the next call instead of pinning the failure.
//
// Safe for concurrent use by batch workers.
type Memo struct {
	gw     Gateway
	mu     sync.Mutex
	bases  map[baseKey]string
	ranges map[rangeKey]string
}

// NewMemo wraps gw with memoization.
func NewMemo(gw Gateway) *Memo {
	return &Memo{
		gw:     gw,
		bases:  make(map[baseKey]string),
		ranges: make(map[rangeKey]string),
	}
}

// FetchBase returns the cached base or fetches and caches it.
func (m *Memo) FetchBase(accession string, pos int64) (string, error) {
	k := baseKey{accession, pos}
	m.mu.Lock()
	if s, ok := m.bases[k]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	s, err := m.gw.FetchBase(accession, pos)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.bases[k] = s
	m.mu.Unlock()
	return s, nil
}

// FetchRange returns the cached range or fetches and caches it.
func (m *Memo) FetchRange(accession string, start, end int64) (string, error) {
	k := rangeKey{accession, start, end}
	m.mu.Lock()
	if s, ok := m.ranges[k]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	s, err := m.gw.FetchRange(accession, start, end)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.ranges[k] = s
	m.mu.Unlock()
	return s, nil
}

// Len reports how many entries the cache holds.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bases) + len(m.ranges)
}
