package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m3rciful/markbot/internal/watermark"
)

func newTestStore() *Store {
	return NewStore(Defaults{Darkness: 60, Corner: "bottom-left"})
}

func TestStoreSeedsDefaults(t *testing.T) {
	st := newTestStore()

	s := st.Get(42)
	assert.Equal(t, 60, s.Darkness)
	assert.Equal(t, "bottom-left", s.Corner)
	assert.Nil(t, s.CustomLogo)
	assert.Nil(t, s.LastOriginal)
	assert.False(t, s.AwaitingLogo)
	assert.Equal(t, 1, st.Len())
}

func TestStoreGetReturnsCopy(t *testing.T) {
	st := newTestStore()

	s := st.Get(1)
	s.Darkness = 5
	assert.Equal(t, 60, st.Get(1).Darkness)
}

func TestSetDarknessClamps(t *testing.T) {
	var s Session
	s.SetDarkness(150)
	assert.Equal(t, 100, s.Darkness)
	s.SetDarkness(-5)
	assert.Equal(t, 0, s.Darkness)
	s.SetDarkness(70)
	assert.Equal(t, 70, s.Darkness)
}

func TestEffectiveCornerNormalizes(t *testing.T) {
	var s Session
	s.SetCorner("top-right")
	assert.Equal(t, watermark.CornerTopRight, s.EffectiveCorner())

	s.SetCorner("somewhere else")
	assert.Equal(t, "somewhere else", s.Corner)
	assert.Equal(t, watermark.CornerBottomLeft, s.EffectiveCorner())
}

func TestStoreUpdatePersists(t *testing.T) {
	st := newTestStore()

	st.Update(7, func(s *Session) {
		s.SetDarkness(80)
		s.SetCorner("top-left")
		s.SetOriginal([]byte("img"))
	})

	s := st.Get(7)
	assert.Equal(t, 80, s.Darkness)
	assert.Equal(t, "top-left", s.Corner)
	assert.Equal(t, []byte("img"), s.LastOriginal)
}

func TestStoreUpdateSerializesPerUser(t *testing.T) {
	st := newTestStore()

	const workers = 64
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			st.Update(1, func(s *Session) {
				counter++
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, workers, counter)
}

func TestStoreIsolatesUsers(t *testing.T) {
	st := newTestStore()

	var wg sync.WaitGroup
	for id := int64(0); id < 100; id++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			st.Update(id, func(s *Session) {
				s.SetDarkness(int(id % 100))
			})
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 100, st.Len())
	assert.Equal(t, 30, st.Get(30).Darkness)
	assert.Equal(t, 99, st.Get(99).Darkness)
}
