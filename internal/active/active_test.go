package active_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/poissondisk/internal/active"
)

func TestInsertRemove(t *testing.T) {
	s := active.New(2)
	require.True(t, s.Empty())

	s.Insert(0, 0)
	s.Insert(1, 0)
	s.Insert(2, 1)
	s.Insert(2, 1) // duplicate ignored
	assert.Equal(t, 3, s.Len())
	assert.InDelta(t, 2.25, s.Volume(1), 1e-12)

	assert.True(t, s.Remove(0))
	assert.False(t, s.Remove(0))
	assert.False(t, s.Remove(99))
	assert.False(t, s.Has(0))
	assert.True(t, s.Has(1))
	assert.True(t, s.Has(2))
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.Remove(2))
	assert.InDelta(t, 1, s.Volume(1), 1e-12)
	assert.True(t, s.Remove(1))
	assert.True(t, s.Empty())
}

func TestRemoveKeepsSlotsConsistent(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	s := active.New(3)
	live := map[int]bool{}
	for i := 0; i < 500; i++ {
		s.Insert(i, i%4)
		live[i] = true
	}
	for i := 0; i < 400; i++ {
		id := s.Pick(rng)
		require.True(t, live[id], "picked id %d not live", id)
		require.True(t, s.Remove(id))
		delete(live, id)
	}
	require.Equal(t, len(live), s.Len())
	for id := range live {
		assert.True(t, s.Has(id))
	}
}

func TestPickEmpty(t *testing.T) {
	s := active.New(2)
	assert.Equal(t, -1, s.Pick(rand.New(rand.NewPCG(1, 1))))
}

func TestPickIsVolumeWeighted(t *testing.T) {
	// one top level cell against four cells one level down: both buckets hold
	// the same volume so each should be picked about half the time
	s := active.New(2)
	s.Insert(0, 0)
	for i := 1; i <= 4; i++ {
		s.Insert(i, 1)
	}

	rng := rand.New(rand.NewPCG(7, 11))
	top := 0
	const n = 20000
	for i := 0; i < n; i++ {
		if s.Pick(rng) == 0 {
			top++
		}
	}
	assert.InDelta(t, 0.5, float64(top)/n, 0.03)
}

func BenchmarkPick(b *testing.B) {
	s := active.New(2)
	for i := 0; i < 10000; i++ {
		s.Insert(i, i%6)
	}
	rng := rand.New(rand.NewPCG(1, 2))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Pick(rng)
	}
}
