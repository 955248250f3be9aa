package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullClearsTailBits(t *testing.T) {
	s := Full(70)
	assert.Equal(t, 70, s.Count())
	assert.True(t, s.Test(69))

	// Tail bits past n must stay clear so Count and Equal are exact.
	s2 := New(70)
	for i := 0; i < 70; i++ {
		s2.Set(i)
	}
	assert.True(t, s.Equal(s2))
}

func TestSingleton(t *testing.T) {
	s := Singleton(100, 65)
	assert.Equal(t, 1, s.Count())
	assert.True(t, s.Test(65))
	assert.Equal(t, 65, s.Only())
}

func TestIntersectInPlaceReportsChange(t *testing.T) {
	a := Full(10)
	b := Singleton(10, 3)

	changed := a.IntersectInPlace(b)
	assert.True(t, changed)
	assert.Equal(t, 1, a.Count())

	changed = a.IntersectInPlace(b)
	assert.False(t, changed)
}

func TestIntersectToEmpty(t *testing.T) {
	a := Singleton(10, 2)
	b := Singleton(10, 7)

	changed := a.IntersectInPlace(b)
	assert.True(t, changed)
	assert.True(t, a.IsEmpty())
}

func TestUnionInPlace(t *testing.T) {
	a := Singleton(10, 1)
	a.UnionInPlace(Singleton(10, 8))
	assert.Equal(t, 2, a.Count())
	assert.True(t, a.Test(1))
	assert.True(t, a.Test(8))
}

func TestAndNot(t *testing.T) {
	a := Full(8)
	b := Singleton(8, 5)

	removed := a.AndNot(b)
	assert.Equal(t, 7, removed.Count())
	assert.False(t, removed.Test(5))
}

func TestEachVisitsAscending(t *testing.T) {
	s := New(130)
	want := []int{0, 63, 64, 129}
	for _, i := range want {
		s.Set(i)
	}

	var got []int
	s.Each(func(i int) { got = append(got, i) })
	require.Equal(t, want, got)
}

func TestCloneIsIndependent(t *testing.T) {
	a := Singleton(10, 4)
	b := a.Clone()
	b.Set(5)

	assert.Equal(t, 1, a.Count())
	assert.Equal(t, 2, b.Count())
}
