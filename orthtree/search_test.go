package orthtree

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_Edges(t *testing.T) {
	t.Parallel()

	tr := newTree2D(2)
	a := rect("A", 10, 10, 10, 10)
	tr.Insert(a)

	for _, tcase := range []*struct {
		X, Y, W, H float32
		Exp        []*box
	}{
		{20, 10, 10, 10, nil},         // touches the right edge
		{0, 0, 10, 10, nil},           // touches a corner
		{10, 20, 10, 5, nil},          // touches the top edge
		{19.5, 10, 10, 10, []*box{a}}, // overlaps by a little
		{12, 12, 1, 1, []*box{a}},     // inside
		{0, 0, 100, 100, []*box{a}},   // covers
		{15, 15, 0, 10, nil},          // degenerate query
		{15, 15, 10, -5, nil},         // negative extent
	} {
		var (
			tcase = tcase
			name  = fmt.Sprintf("%v,%v,%v,%v", tcase.X, tcase.Y, tcase.W, tcase.H)
		)

		t.Run(name, func(t *testing.T) {
			min, max := corners(tcase.X, tcase.Y, tcase.W, tcase.H)

			assert.Equal(t, tcase.Exp, tr.Search(nil, min, max))
		})
	}
}

func TestSearch_Accumulates(t *testing.T) {
	t.Parallel()

	var (
		tr = newTree2D(2)
		a  = rect("A", 10, 10, 1, 1)
		b  = rect("B", 80, 80, 1, 1)
		x  = rect("X", 0, 0, 0, 0) // not indexed
	)

	tr.Insert(a)
	tr.Insert(b)

	res := []*box{x}

	min, max := corners(0, 0, 50, 50)
	res = tr.Search(res, min, max)

	min, max = corners(50, 50, 50, 50)
	res = tr.Search(res, min, max)

	assert.Equal(t, []*box{x, a, b}, res)
}

func TestSearch_WrongDims(t *testing.T) {
	t.Parallel()

	tr := newTree2D(2)

	assert.Panics(t, func() { tr.Search(nil, []float32{0}, []float32{1}) })
}

func TestSearch_OutsideRoot(t *testing.T) {
	t.Parallel()

	tr := newTree2D(1)
	far := rect("far", 150, -20, 10, 10)
	for _, item := range []*box{far, rect("A", 10, 10, 1, 1), rect("B", 80, 80, 1, 1)} {
		tr.Insert(item)
	}

	min, max := corners(140, -30, 30, 30)
	assert.Equal(t, []*box{far}, tr.Search(nil, min, max))
}

func TestSearch_FakeData(t *testing.T) {
	t.Parallel()

	for _, dims := range []int{1, 2, 3, 4} {
		dims := dims

		t.Run(strconv.Itoa(dims), func(t *testing.T) {
			t.Parallel()

			const (
				total   = 2_000
				rounds  = 20
				queries = 50
				extent  = 1000
				seed    = 1234567890
			)

			var (
				fake     = gofakeit.New(seed)
				min, max = make([]float32, dims), make([]float32, dims)
				items    = make([]*box, 0, total)
			)

			for i := range max {
				max[i] = extent
			}

			tr := New[*box](min, max, WithCapacity(4), WithReinsertThreshold(1))

			for i := 0; i < total; i++ {
				b := randomBox(fake, strconv.Itoa(i), dims, extent, 20)
				items = append(items, b)
				tr.Insert(b)
			}

			require.NoError(t, tr.Validate())

			for round := 0; round < rounds; round++ {
				// move some, remove some, add some
				for i := 0; i < len(items); {
					b := items[i]

					switch fake.Number(0, 9) {
					case 0:
						tr.Remove(b)
						items[i] = items[len(items)-1]
						items = items[:len(items)-1]
						continue
					case 1, 2, 3:
						for d := 0; d < dims; d++ {
							step := fake.Float32Range(-2, 2)
							b.min[d] += step
							b.max[d] += step
						}
						tr.Insert(b)
					case 4:
						nb := randomBox(fake, fmt.Sprintf("%d-%d", round, i), dims, extent, 20)
						items = append(items, nb)
						tr.Insert(nb)
					}
					i++
				}

				require.NoError(t, tr.Validate())
				require.Equal(t, len(items), tr.Len())

				for q := 0; q < queries; q++ {
					query := randomBox(fake, "query", dims, extent, 200)

					assert.ElementsMatch(t,
						bruteSearch(items, query.min, query.max),
						tr.Search(nil, query.min, query.max),
					)
				}
			}
		})
	}
}

func TestSearch_ResizeRoundTrip(t *testing.T) {
	t.Parallel()

	const (
		total  = 1_000
		extent = 100
		seed   = 1234567890
	)

	var (
		fake  = gofakeit.New(seed)
		tr    = newTree2D(3)
		items = make([]*box, total)
	)

	for i := range items {
		items[i] = randomBox(fake, strconv.Itoa(i), 2, extent, 5)
		tr.Insert(items[i])
	}

	queries := make([]*box, 30)
	before := make([][]*box, len(queries))
	for i := range queries {
		queries[i] = randomBox(fake, "query", 2, extent, 40)
		before[i] = tr.Search(nil, queries[i].min, queries[i].max)
	}

	min, max := corners(-50, -50, 300, 300)
	tr.Resize(min, max)
	for _, item := range items {
		tr.Insert(item)
	}

	require.NoError(t, tr.Validate())

	for i, q := range queries {
		assert.ElementsMatch(t, before[i], tr.Search(nil, q.min, q.max))
	}
}
