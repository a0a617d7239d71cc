package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDAllocator_Monotonic(t *testing.T) {
	ids := NewIDAllocator()

	assert.Equal(t, uint64(0), ids.EntityID())
	assert.Equal(t, uint64(1), ids.EntityID())
	assert.Equal(t, uint64(0), ids.SpecID())
	assert.Equal(t, uint64(0), ids.ComponentID())
	assert.Equal(t, uint64(0), ids.PropertyID())
}

func TestIDAllocator_Concurrent(t *testing.T) {
	ids := NewIDAllocator()

	var mu sync.Mutex
	seen := make(map[uint64]bool)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 100 {
				id := ids.PropertyID()

				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	assert.Len(t, seen, 800)
}

func TestIDAllocator_Observe(t *testing.T) {
	ids := NewIDAllocator()

	ids.ObserveSpecs([]ComponentSpec{{ID: 7, Definition: []Property{
		{ID: 12, Value: NestedValue("V", "", []Property{{ID: 30, Value: NumberValue(0)}})},
	}}})
	ids.ObserveScene(Scene{Entities: []Entity{{ID: 4, Components: []Component{{ID: 9}}}}})

	assert.Equal(t, uint64(8), ids.SpecID())
	assert.Equal(t, uint64(31), ids.PropertyID())
	assert.Equal(t, uint64(5), ids.EntityID())
	assert.Equal(t, uint64(10), ids.ComponentID())

	ids.ObserveSpecs([]ComponentSpec{{ID: 2}})
	assert.Equal(t, uint64(9), ids.SpecID())
}
