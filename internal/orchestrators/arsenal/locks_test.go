package arsenal

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
)

type InternalsTestSuite struct {
	suite.Suite
}

func TestInternalsSuite(t *testing.T) {
	suite.Run(t, new(InternalsTestSuite))
}

func (s *InternalsTestSuite) TestLocksSerializeSameID() {
	locks := newInstanceLocks()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		overlap bool
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("a")
			defer unlock()

			mu.Lock()
			active++
			if active > 1 {
				overlap = true
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.False(overlap)
	s.Equal(0, locks.size(), "entries are released")
}

func (s *InternalsTestSuite) TestLocksIndependentIDs() {
	locks := newInstanceLocks()
	unlockA := locks.lock("a")

	done := make(chan struct{})
	go func() {
		unlockB := locks.lock("b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("lock on b waited for a")
	}
	unlockA()
}

func (s *InternalsTestSuite) TestPreviewCache() {
	cache := newPreviewCache(2, time.Minute)
	key := previewKey("@test", 1, stats.Legendary, 3)
	s.Equal("@test|1|LEGENDARY|3", key)

	cache.add(key, stats.Map{stats.Weight: 1})
	got, ok := cache.get(key)
	s.True(ok)
	got[stats.Weight] = 99

	again, _ := cache.get(key)
	s.Equal(1, again[stats.Weight])

	cache.add("b", stats.Map{})
	cache.add("c", stats.Map{})
	s.Equal(2, cache.len())
	_, ok = cache.get(key)
	s.False(ok, "oldest entry evicted")
}
