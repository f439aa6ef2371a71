package arena

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObtain_Dense(t *testing.T) {
	t.Parallel()

	a := New[int](0)

	for i := 0; i < 130; i++ {
		h := a.Obtain()
		require.Equal(t, Handle(i), h)
		*a.Get(h) = i
	}

	assert.Equal(t, 130, a.Len())
	assert.Equal(t, 130, a.Cap())
	assert.Len(t, a.bitmap, 3)
}

func TestObtain_LowestFreeFirst(t *testing.T) {
	t.Parallel()

	a := New[string](4)

	for i := 0; i < 70; i++ {
		a.Obtain()
	}

	require.True(t, a.Release(65))
	require.True(t, a.Release(3))
	require.True(t, a.Release(40))

	assert.Equal(t, 67, a.Len())
	assert.Equal(t, Handle(3), a.Obtain())
	assert.Equal(t, Handle(40), a.Obtain())
	assert.Equal(t, Handle(65), a.Obtain())
	assert.Equal(t, Handle(70), a.Obtain())
	assert.Equal(t, 71, a.Cap())
}

func TestRelease_KeepsValue(t *testing.T) {
	t.Parallel()

	a := New[[]float32](0)

	h := a.Obtain()
	*a.Get(h) = make([]float32, 3, 8)

	require.True(t, a.Release(h))
	require.Equal(t, h, a.Obtain())

	assert.Len(t, *a.Get(h), 3)
	assert.Equal(t, 8, cap(*a.Get(h)))
}

func TestRelease_Double(t *testing.T) {
	t.Parallel()

	a := New[int](0)
	h := a.Obtain()

	assert.True(t, a.Release(h))
	assert.False(t, a.Release(h))
	assert.False(t, a.Release(Nil))
	assert.False(t, a.Release(100))
	assert.False(t, a.Occupied(h))
}

func TestReset(t *testing.T) {
	t.Parallel()

	a := New[int](0)
	for i := 0; i < 100; i++ {
		a.Obtain()
	}

	a.Reset()

	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 100, a.Cap())
	assert.Equal(t, Handle(0), a.Obtain())
	assert.Equal(t, 100, a.Cap())
}

func TestEach(t *testing.T) {
	t.Parallel()

	a := New[int](0)
	for i := 0; i < 10; i++ {
		*a.Get(a.Obtain()) = i * 10
	}
	a.Release(2)
	a.Release(7)

	var seen []int
	a.Each(func(h Handle, v *int) bool {
		seen = append(seen, *v)
		return true
	})
	assert.Equal(t, []int{0, 10, 30, 40, 50, 60, 80, 90}, seen)

	var n int
	complete := a.Each(func(Handle, *int) bool {
		n++
		return n < 3
	})
	assert.False(t, complete)
	assert.Equal(t, 3, n)
}

func TestObtainRelease_FakeData(t *testing.T) {
	t.Parallel()

	const (
		total = 10_000
		seed  = 1234567890
	)

	var (
		a    = New[Handle](0)
		live = map[Handle]bool{}
		fake = gofakeit.New(seed)
	)

	for i := 0; i < total; i++ {
		if len(live) > 0 && fake.Bool() {
			for h := range live {
				require.True(t, a.Release(h))
				delete(live, h)
				break
			}
			continue
		}

		h := a.Obtain()
		require.False(t, live[h], "handle %d handed out twice", h)
		live[h] = true
		*a.Get(h) = h
	}

	assert.Equal(t, len(live), a.Len())

	a.Each(func(h Handle, v *Handle) bool {
		assert.True(t, live[h])
		assert.Equal(t, h, *v)
		return true
	})
}
