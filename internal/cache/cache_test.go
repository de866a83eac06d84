package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New()

	c.Set("key1", "value1", 10*time.Second)
	val, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "value1", val)

	val, ok = c.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestCache_Expiration(t *testing.T) {
	c := New()

	c.Set("expiring", "value", 50*time.Millisecond)

	val, ok := c.Get("expiring")
	assert.True(t, ok)
	assert.Equal(t, "value", val)

	time.Sleep(80 * time.Millisecond)

	_, ok = c.Get("expiring")
	assert.False(t, ok)

	// Expiry is a read-time filter; the entry lingers until purged.
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Purge())
	assert.Equal(t, 0, c.Len())
}

func TestCache_UpdateValue(t *testing.T) {
	c := New()

	c.Set("key", "first", 10*time.Second)
	c.Set("key", "second", 10*time.Second)

	val, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "second", val)
}

func TestCache_Delete(t *testing.T) {
	c := New()

	c.Set("key", "value", 10*time.Second)
	c.Delete("key")

	_, ok := c.Get("key")
	assert.False(t, ok)

	// Deleting a missing key is a no-op.
	c.Delete("missing")
}

func TestCache_NegativeTTL(t *testing.T) {
	c := New()

	c.Set("past", "value", -1*time.Second)
	_, ok := c.Get("past")
	assert.False(t, ok)
}

func TestCache_PurgeKeepsLiveEntries(t *testing.T) {
	c := New()

	c.Set("live", "value", 10*time.Second)
	c.Set("dead", "value", -1*time.Second)

	assert.Equal(t, 1, c.Purge())
	assert.Equal(t, 1, c.Len())

	val, ok := c.Get("live")
	assert.True(t, ok)
	assert.Equal(t, "value", val)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(3)
		go func(n int) {
			defer wg.Done()
			c.Set("key", n, 10*time.Second)
		}(i)
		go func() {
			defer wg.Done()
			c.Get("key")
		}()
		go func(n int) {
			defer wg.Done()
			if n%10 == 0 {
				c.Purge()
			}
		}(i)
	}
	wg.Wait()

	c.Set("final", "value", 10*time.Second)
	val, ok := c.Get("final")
	assert.True(t, ok)
	assert.Equal(t, "value", val)
}
