package dump

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRing_BelowCapacity(t *testing.T) {
	r := NewRing(16)
	_, _ = r.Write([]byte("hello "))
	_, _ = r.Write([]byte("world"))

	assert.Equal(t, []byte("hello world"), r.Bytes())
	assert.Equal(t, 11, r.Len())
	assert.Equal(t, 16, r.Cap())
}

func TestRing_WrapKeepsNewest(t *testing.T) {
	r := NewRing(8)
	_, _ = r.Write([]byte("abcdef"))
	_, _ = r.Write([]byte("ghij"))

	assert.Equal(t, []byte("cdefghij"), r.Bytes())
	assert.Equal(t, uint64(10), r.Total())

	_, _ = r.Write([]byte("kl"))
	assert.Equal(t, []byte("efghijkl"), r.Bytes())
}

func TestRing_OversizedWrite(t *testing.T) {
	r := NewRing(4)
	n, err := r.Write([]byte("0123456789"))
	assert.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, []byte("6789"), r.Bytes())
}

func TestRing_ZeroCapacity(t *testing.T) {
	r := NewRing(0)
	n, err := r.Write([]byte("ignored"))
	assert.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Empty(t, r.Bytes())
}

func TestRing_Reset(t *testing.T) {
	r := NewRing(8)
	_, _ = r.Write([]byte("abc"))
	r.Reset()
	assert.Equal(t, 0, r.Len())
	_, _ = r.Write([]byte("xyz"))
	assert.Equal(t, []byte("xyz"), r.Bytes())
}

func TestRing_ConcurrentWrites(t *testing.T) {
	r := NewRing(1024)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = fmt.Fprintf(r, "w%d-%d\n", id, j)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1024, r.Len())
	assert.Greater(t, r.Total(), uint64(1024))
}
