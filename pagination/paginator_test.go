package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestParsePageNumber(t *testing.T) {
	cases := map[string]int{
		"":    1,
		"abc": 1,
		"2":   2,
		" 3 ": 3,
		"0":   0,
		"-4":  -4,
		"1.5": 1,
	}
	for raw, want := range cases {
		require.Equal(t, want, ParsePageNumber(raw), "raw=%q", raw)
	}
}

func TestPaginateFifteenItems(t *testing.T) {
	items := seq(15)

	first := Paginate(items, 1, 10)
	require.Len(t, first.Items, 10)
	require.Equal(t, 2, first.TotalPages)
	require.True(t, first.HasNext)
	require.False(t, first.HasPrevious)

	second := Paginate(items, 2, 10)
	require.Equal(t, []int{10, 11, 12, 13, 14}, second.Items)
	require.False(t, second.HasNext)
	require.True(t, second.HasPrevious)

	third := Paginate(items, 3, 10)
	require.Equal(t, second, third)
}

func TestPaginateClampsBelowOne(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		p := Paginate(seq(25), n, 10)
		require.Equal(t, 1, p.Number)
		require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, p.Items)
	}
}

func TestPaginateEmptySequence(t *testing.T) {
	p := Paginate([]string(nil), 5, 10)
	require.Equal(t, 1, p.Number)
	require.Equal(t, 1, p.TotalPages)
	require.NotNil(t, p.Items)
	require.Empty(t, p.Items)
	require.False(t, p.HasNext)
	require.False(t, p.HasPrevious)
}

func TestPaginateNonPositiveSizeFallsBack(t *testing.T) {
	p := Paginate(seq(12), 1, 0)
	require.Equal(t, DefaultPageSize, p.Size)
	require.Len(t, p.Items, DefaultPageSize)
}

func TestPaginateCoversEveryItemOnce(t *testing.T) {
	for length := 0; length <= 35; length++ {
		for size := 1; size <= 12; size++ {
			items := seq(length)
			pages := TotalPages(length, size)
			want := (length + size - 1) / size
			if length == 0 {
				want = 1
			}
			require.Equal(t, want, pages, "len=%d size=%d", length, size)

			var seen []int
			for n := 1; n <= pages; n++ {
				p := Paginate(items, n, size)
				require.Equal(t, n, p.Number)
				require.LessOrEqual(t, len(p.Items), size)
				seen = append(seen, p.Items...)
			}
			if length == 0 {
				require.Empty(t, seen)
			} else {
				require.Equal(t, items, seen, "len=%d size=%d", length, size)
			}

			over := Paginate(items, pages+3, size)
			require.Equal(t, pages, over.Number)
		}
	}
}

func TestPaginateIsIdempotent(t *testing.T) {
	items := seq(23)
	require.Equal(t, Paginate(items, 2, 10), Paginate(items, 2, 10))
}
