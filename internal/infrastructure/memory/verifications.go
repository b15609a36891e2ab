package memory

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/go-signup-verify/internal/domain"
	"github.com/go-signup-verify/internal/pkg/clock"
)

// DefaultCodeTTL is how long an issued code stays redeemable.
const DefaultCodeTTL = 10 * time.Minute

// VerificationStore owns all live verification codes, keyed by normalized
// identity. Values are immutable *domain.VerificationEntry pointers: Put swaps
// the pointer, and every delete is a compare-and-delete against the pointer
// that was inspected, so a consumed code fires success exactly once and a
// sweep never removes an entry installed after it looked.
type VerificationStore struct {
	entries sync.Map // identity -> *domain.VerificationEntry
	ttl     time.Duration
	clock   clock.Clock
}

func NewVerificationStore(ttl time.Duration, clk clock.Clock) *VerificationStore {
	if ttl <= 0 {
		ttl = DefaultCodeTTL
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &VerificationStore{ttl: ttl, clock: clk}
}

// TTL returns the lifetime given to every new entry.
func (s *VerificationStore) TTL() time.Duration { return s.ttl }

// Put issues code for identity, replacing any previous entry for it.
func (s *VerificationStore) Put(identity, code string) domain.VerificationEntry {
	now := s.clock.Now()
	e := &domain.VerificationEntry{
		Identity:  domain.NormalizeIdentity(identity),
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.entries.Store(e.Identity, e)
	return *e
}

// Verify consumes the code for identity if it matches. A mismatch leaves the
// entry in place; an expired entry is removed before ErrCodeExpired is returned.
func (s *VerificationStore) Verify(identity, submitted string) error {
	key := domain.NormalizeIdentity(identity)
	for {
		v, ok := s.entries.Load(key)
		if !ok {
			return domain.ErrCodeNotFound
		}
		e := v.(*domain.VerificationEntry)
		if !e.Live(s.clock.Now()) {
			if s.entries.CompareAndDelete(key, e) {
				return domain.ErrCodeExpired
			}
			continue
		}
		if subtle.ConstantTimeCompare([]byte(e.Code), []byte(submitted)) != 1 {
			return domain.ErrCodeMismatch
		}
		if s.entries.CompareAndDelete(key, e) {
			return nil
		}
		// Replaced or consumed between Load and delete: judge the current entry.
	}
}

// TimeRemaining reports how long the code for identity stays valid, rounded up
// to whole seconds. An entry that has expired but not yet been reclaimed
// reports zero. The second result is false when no entry exists.
func (s *VerificationStore) TimeRemaining(identity string) (time.Duration, bool) {
	v, ok := s.entries.Load(domain.NormalizeIdentity(identity))
	if !ok {
		return 0, false
	}
	remaining := v.(*domain.VerificationEntry).ExpiresAt.Sub(s.clock.Now())
	if remaining <= 0 {
		return 0, true
	}
	if r := remaining.Truncate(time.Second); r != remaining {
		remaining = r + time.Second
	}
	return remaining, true
}

// Sweep deletes every entry whose deadline has passed and returns how many it
// removed.
func (s *VerificationStore) Sweep() int {
	now := s.clock.Now()
	removed := 0
	s.entries.Range(func(k, v any) bool {
		if e := v.(*domain.VerificationEntry); !e.Live(now) && s.entries.CompareAndDelete(k, e) {
			removed++
		}
		return true
	})
	return removed
}

// Len counts stored entries, expired ones included until they are reclaimed.
func (s *VerificationStore) Len() int {
	n := 0
	s.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
