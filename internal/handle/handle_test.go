package handle

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertGetRemove(t *testing.T) {
	tbl := NewTable[string](KindMdApi)

	h := tbl.Insert("md")
	require.NotEqual(t, Null, h)

	v, ok := tbl.Get(h)
	require.True(t, ok)
	assert.Equal(t, "md", v)
	assert.Equal(t, 1, tbl.Len())

	v, ok = tbl.Remove(h)
	require.True(t, ok)
	assert.Equal(t, "md", v)
	assert.Equal(t, 0, tbl.Len())
}

func TestNullNeverResolves(t *testing.T) {
	tbl := NewTable[int](KindTraderApi)
	tbl.Insert(1)

	_, ok := tbl.Get(Null)
	assert.False(t, ok)
	_, ok = tbl.Remove(Null)
	assert.False(t, ok)
}

func TestStaleHandleAfterReuse(t *testing.T) {
	tbl := NewTable[int](KindMdSpi)

	first := tbl.Insert(1)
	_, ok := tbl.Remove(first)
	require.True(t, ok)

	second := tbl.Insert(2)
	assert.Equal(t, first.index(), second.index(), "slot is reused")
	assert.NotEqual(t, first, second)

	_, ok = tbl.Get(first)
	assert.False(t, ok)
	_, ok = tbl.Remove(first)
	assert.False(t, ok, "double release is rejected")

	v, ok := tbl.Get(second)
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestWrongKindRejected(t *testing.T) {
	md := NewTable[int](KindMdApi)
	td := NewTable[int](KindTraderApi)

	h := md.Insert(7)
	td.Insert(8)

	_, ok := td.Get(h)
	assert.False(t, ok)
}

func TestHandleNeedsAllSixtyFourBits(t *testing.T) {
	tbl := NewTable[int](KindTraderApi)
	h := tbl.Insert(1)

	assert.Equal(t, KindTraderApi, h.kind())
	assert.Equal(t, Handle(KindTraderApi)<<56, h&(0xff<<56))
	assert.NotZero(t, uint64(h)>>32, "kind and generation live above bit 32")

	_, ok := tbl.Get(Handle(uint32(h)))
	assert.False(t, ok, "a handle cut to 32 bits must not resolve")
}

func TestConcurrentInsertRemove(t *testing.T) {
	tbl := NewTable[int](KindTraderSpi)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				h := tbl.Insert(i*1000 + j)
				v, ok := tbl.Get(h)
				assert.True(t, ok)
				assert.Equal(t, i*1000+j, v)
				_, ok = tbl.Remove(h)
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, tbl.Len())
}
