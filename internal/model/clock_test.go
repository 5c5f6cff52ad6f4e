package model

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockIsStrictlyIncreasing(t *testing.T) {
	frozen := time.Unix(1700000000, 0)
	c := NewClockFunc(func() time.Time { return frozen })

	a := c.Now()
	b := c.Now()
	assert.True(t, b.After(a))
	assert.Equal(t, time.Nanosecond, b.Sub(a))
	assert.Equal(t, time.UTC, a.Location())
}

func TestClockConcurrentUnique(t *testing.T) {
	c := NewClock()
	const n = 200

	var (
		mu   sync.Mutex
		seen = make(map[int64]bool, n)
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ts := c.Now().UnixNano()
			mu.Lock()
			seen[ts] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n)
}
