package main

import "sync"

// stringCache owns C copies of strings handed to callers. Each key holds at
// most one copy; a new value for the key frees the previous copy, as does
// drop.
type stringCache[K comparable, P any] struct {
	alloc func(string) P
	free  func(P)

	mu      sync.Mutex
	entries map[K]cachedString[P]
}

type cachedString[P any] struct {
	value string
	ptr   P
}

func newStringCache[K comparable, P any](alloc func(string) P, free func(P)) *stringCache[K, P] {
	return &stringCache[K, P]{alloc: alloc, free: free, entries: make(map[K]cachedString[P])}
}

// get returns the copy of s held for key, allocating it when key holds a
// different value or nothing.
func (c *stringCache[K, P]) get(key K, s string) P {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if ok && e.value == s {
		return e.ptr
	}
	if ok {
		c.free(e.ptr)
	}
	e = cachedString[P]{value: s, ptr: c.alloc(s)}
	c.entries[key] = e
	return e.ptr
}

// drop frees the copy held for key.
func (c *stringCache[K, P]) drop(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		c.free(e.ptr)
		delete(c.entries, key)
	}
}

func (c *stringCache[K, P]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
