package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-ctp/internal/handle"
)

type fakeAlloc struct {
	live  map[*string]bool
	freed []string
}

func (f *fakeAlloc) alloc(s string) *string {
	p := new(string)
	*p = s
	f.live[p] = true
	return p
}

func (f *fakeAlloc) free(p *string) {
	delete(f.live, p)
	f.freed = append(f.freed, *p)
}

func newFakeCache() (*stringCache[handle.Handle, *string], *fakeAlloc) {
	f := &fakeAlloc{live: make(map[*string]bool)}
	return newStringCache[handle.Handle](f.alloc, f.free), f
}

func TestStringCacheReusesUnchangedValue(t *testing.T) {
	c, f := newFakeCache()
	h := handle.Handle(0x0100000100000001)

	a := c.get(h, "20241015")
	b := c.get(h, "20241015")
	assert.Same(t, a, b)
	assert.Len(t, f.live, 1)
	assert.Empty(t, f.freed)
}

func TestStringCacheReplacesChangedValue(t *testing.T) {
	c, f := newFakeCache()
	h := handle.Handle(0x0100000100000001)

	for _, day := range []string{"20241014", "20241015", "20241016"} {
		assert.Equal(t, day, *c.get(h, day))
	}
	assert.Len(t, f.live, 1, "one copy per key however many days pass")
	assert.Equal(t, []string{"20241014", "20241015"}, f.freed)
	assert.Equal(t, 1, c.len())
}

func TestStringCacheDropFreesCopy(t *testing.T) {
	c, f := newFakeCache()
	md := handle.Handle(0x0100000100000001)
	trader := handle.Handle(0x0200000100000001)

	c.get(md, "20241015")
	c.get(trader, "20241015")
	assert.Len(t, f.live, 2)

	c.drop(md)
	c.drop(md)
	assert.Len(t, f.live, 1)
	assert.Equal(t, []string{"20241015"}, f.freed)
	assert.Equal(t, 1, c.len())

	c.drop(trader)
	assert.Empty(t, f.live)
	assert.Zero(t, c.len())
}
