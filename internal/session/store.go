package session

import (
	"sync"

	"github.com/m3rciful/markbot/internal/watermark"
)

// Session is the mutable per-user record of watermarking preferences and
// cached state. Fields are only touched under the owning entry's lock; the
// store hands out copies, never live pointers.
type Session struct {
	// Darkness is the darkening percentage in [0,100].
	Darkness int
	// Corner stores the raw corner value as selected; it is normalized at
	// read time so the original input can still be echoed back.
	Corner string
	// CustomLogo holds a user-supplied logo; nil means the process-wide
	// default asset applies.
	CustomLogo []byte
	// LastOriginal is the most recently received source photo, retained so
	// settings changes can be replayed without a re-upload. Overwritten,
	// never merged.
	LastOriginal []byte
	// AwaitingLogo is true only between an upload-logo request and the next
	// photo or cancel.
	AwaitingLogo bool
}

// SetDarkness clamps and stores the darkening percentage.
func (s *Session) SetDarkness(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	s.Darkness = percent
}

// SetCorner stores the raw corner value; normalization happens on read.
func (s *Session) SetCorner(corner string) { s.Corner = corner }

// SetCustomLogo replaces the user logo.
func (s *Session) SetCustomLogo(logo []byte) { s.CustomLogo = logo }

// ClearCustomLogo reverts to the default logo asset.
func (s *Session) ClearCustomLogo() { s.CustomLogo = nil }

// SetOriginal replaces the cached source photo.
func (s *Session) SetOriginal(img []byte) { s.LastOriginal = img }

// SetAwaitingLogo toggles the ephemeral upload mode.
func (s *Session) SetAwaitingLogo(v bool) { s.AwaitingLogo = v }

// EffectiveCorner returns the normalized placement anchor.
func (s *Session) EffectiveCorner() watermark.Corner {
	return watermark.ParseCorner(s.Corner)
}

// Defaults seed newly created sessions.
type Defaults struct {
	Darkness int
	Corner   string
}

const shardCount = 32

type entry struct {
	mu   sync.Mutex
	sess Session
}

type shard struct {
	mu       sync.RWMutex
	sessions map[int64]*entry
}

// Store is the in-memory settings store. Sessions for different users live
// on independent shards so cross-user access never contends; events for a
// single user serialize on the entry mutex, which gives the per-user FIFO
// ordering the controller relies on.
type Store struct {
	defaults Defaults
	shards   [shardCount]shard
}

// NewStore creates an empty store seeding new sessions from defaults.
func NewStore(defaults Defaults) *Store {
	st := &Store{defaults: defaults}
	for i := range st.shards {
		st.shards[i].sessions = make(map[int64]*entry)
	}
	return st
}

func (st *Store) shard(userID int64) *shard {
	return &st.shards[uint64(userID)%shardCount]
}

func (st *Store) entry(userID int64) *entry {
	sh := st.shard(userID)

	sh.mu.RLock()
	e, ok := sh.sessions[userID]
	sh.mu.RUnlock()
	if ok {
		return e
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if e, ok = sh.sessions[userID]; ok {
		return e
	}
	e = &entry{sess: Session{
		Darkness: st.defaults.Darkness,
		Corner:   st.defaults.Corner,
	}}
	sh.sessions[userID] = e
	return e
}

// Update runs fn with exclusive access to the user's session, creating it
// with defaults on first contact. fn runs under the per-user lock, so
// concurrent events for the same user execute one at a time in arrival
// order while other users proceed in parallel.
func (st *Store) Update(userID int64, fn func(*Session)) {
	e := st.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.sess)
}

// Get returns a copy of the user's session, creating it if needed.
func (st *Store) Get(userID int64) Session {
	e := st.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess
}

// Len reports the number of known sessions.
func (st *Store) Len() int {
	total := 0
	for i := range st.shards {
		sh := &st.shards[i]
		sh.mu.RLock()
		total += len(sh.sessions)
		sh.mu.RUnlock()
	}
	return total
}
