// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package ds

import (
	"sync"
	"time"

	"github.com/emirpasic/gods/trees/binaryheap"
)

// ExpMap is a map whose entries vanish once their deadline passes. Expiry is
// lazy: expired entries are swept on access, there is no background timer.
type ExpMap[T any] struct {
	lock sync.Mutex
	heap *binaryheap.Heap // *mapEntry[T], ordered by deadline
	m    map[string]*mapEntry[T]
}

type mapEntry[T any] struct {
	key      string
	val      T
	deadline time.Time
}

func expMapCompare[T any](a, b any) int {
	ae := a.(*mapEntry[T])
	be := b.(*mapEntry[T])
	switch {
	case ae.deadline.Before(be.deadline):
		return -1
	case ae.deadline.After(be.deadline):
		return 1
	}
	return 0
}

func MakeExpMap[T any]() *ExpMap[T] {
	return &ExpMap[T]{
		heap: binaryheap.NewWith(expMapCompare[T]),
		m:    make(map[string]*mapEntry[T]),
	}
}

// Set stores value under key until deadline, replacing any previous entry.
func (em *ExpMap[T]) Set(key string, value T, deadline time.Time) {
	em.lock.Lock()
	defer em.lock.Unlock()
	entry := &mapEntry[T]{key: key, val: value, deadline: deadline}
	em.m[key] = entry
	em.heap.Push(entry)
}

// sweep pops entries whose deadline has passed. A popped entry only deletes
// its map key while it is still the current entry for that key; replacing or
// deleting a key leaves a stale heap node behind, which sweep skips here.
func (em *ExpMap[T]) sweep(now time.Time) {
	for !em.heap.Empty() {
		topArg, _ := em.heap.Peek()
		top := topArg.(*mapEntry[T])
		if top.deadline.After(now) {
			return
		}
		em.heap.Pop()
		if current, ok := em.m[top.key]; ok && current == top {
			delete(em.m, top.key)
		}
	}
}

func (em *ExpMap[T]) Get(key string) (T, bool) {
	em.lock.Lock()
	defer em.lock.Unlock()
	em.sweep(time.Now())
	entry, ok := em.m[key]
	if !ok {
		var zero T
		return zero, false
	}
	return entry.val, true
}

func (em *ExpMap[T]) Delete(key string) {
	em.lock.Lock()
	defer em.lock.Unlock()
	delete(em.m, key)
}

// Len reports the number of unexpired entries.
func (em *ExpMap[T]) Len() int {
	em.lock.Lock()
	defer em.lock.Unlock()
	em.sweep(time.Now())
	return len(em.m)
}
