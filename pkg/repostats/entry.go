package repostats

import "time"

// Entry is the cached stats of one repository.
type Entry struct {
	Stars       int   `json:"stars"`
	Forks       int   `json:"forks"`
	LastFetched int64 `json:"lastFetched"` // epoch milliseconds
}

// NewEntry returns an entry stamped with the fetch time at.
func NewEntry(stars, forks int, at time.Time) Entry {
	return Entry{
		Stars:       max(stars, 0),
		Forks:       max(forks, 0),
		LastFetched: at.UnixMilli(),
	}
}

// FetchedAt returns LastFetched as a time.
func (e Entry) FetchedAt() time.Time {
	return time.UnixMilli(e.LastFetched)
}

// IsFresh reports whether e was fetched less than ttl before now.
func IsFresh(e Entry, now time.Time, ttl time.Duration) bool {
	return now.UnixMilli()-e.LastFetched < ttl.Milliseconds()
}

// Map holds entries keyed by "owner/repo".
type Map map[string]Entry

// Get returns the entry for key.
func (m Map) Get(key string) (Entry, bool) {
	e, ok := m[key]
	return e, ok
}

// Put stores e under key unless the existing entry was fetched later.
// It reports whether the map changed.
func (m Map) Put(key string, e Entry) bool {
	if old, ok := m[key]; ok && old.LastFetched > e.LastFetched {
		return false
	}
	m[key] = e
	return true
}

// Merge copies every entry of other into m using [Map.Put].
func (m Map) Merge(other Map) {
	for k, e := range other {
		m.Put(k, e)
	}
}

// Clone returns a shallow copy of m.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, e := range m {
		out[k] = e
	}
	return out
}
