package kv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreGetSet(t *testing.T) {
	s := New[string, int]()

	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Set("a", 1)
	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	s.Set("a", 2)
	v, _ = s.Get("a")
	assert.Equal(t, 2, v)
}

func TestStoreSetIfAbsent(t *testing.T) {
	s := New[string, int]()

	assert.True(t, s.SetIfAbsent("a", 1))
	assert.False(t, s.SetIfAbsent("a", 2))

	v, _ := s.Get("a")
	assert.Equal(t, 1, v)
}

func TestStoreDelete(t *testing.T) {
	s := New[string, int]()
	s.Set("a", 1)
	s.Delete("a")

	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestStoreKeys(t *testing.T) {
	s := New[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)

	assert.ElementsMatch(t, []string{"a", "b"}, s.Keys())
	assert.Equal(t, 2, s.Len())
}

func TestStoreConcurrent(t *testing.T) {
	s := New[int, int]()

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Set(i, i)
			s.Get(i)
			s.SetIfAbsent(i, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, s.Len())
}
