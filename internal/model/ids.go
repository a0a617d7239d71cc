package model

import "sync/atomic"

// IDAllocator hands out monotonic identifiers for entities, components,
// properties and component specs. One allocator is scoped to one editor
// session; identifiers are never reused within it.
type IDAllocator struct {
	entity    atomic.Uint64
	component atomic.Uint64
	property  atomic.Uint64
	spec      atomic.Uint64
}

// NewIDAllocator returns an allocator whose first identifiers are all zero.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// EntityID returns the next entity identifier.
func (a *IDAllocator) EntityID() uint64 {
	return a.entity.Add(1) - 1
}

// ComponentID returns the next component identifier.
func (a *IDAllocator) ComponentID() uint64 {
	return a.component.Add(1) - 1
}

// PropertyID returns the next property identifier.
func (a *IDAllocator) PropertyID() uint64 {
	return a.property.Add(1) - 1
}

// SpecID returns the next component spec identifier.
func (a *IDAllocator) SpecID() uint64 {
	return a.spec.Add(1) - 1
}

// ObserveScene bumps the counters past every identifier found in scene so
// later allocations cannot collide with loaded data.
func (a *IDAllocator) ObserveScene(scene Scene) {
	for _, entity := range scene.Entities {
		bump(&a.entity, entity.ID)

		for _, component := range entity.Components {
			bump(&a.component, component.ID)
			a.observeProperties(component.Properties)
		}
	}
}

// ObserveSpecs bumps the spec and property counters past the identifiers in specs.
func (a *IDAllocator) ObserveSpecs(specs []ComponentSpec) {
	for _, spec := range specs {
		bump(&a.spec, spec.ID)
		a.observeProperties(spec.Definition)
	}
}

func (a *IDAllocator) observeProperties(properties []Property) {
	for _, property := range properties {
		bump(&a.property, property.ID)
		a.observeValue(property.Value)
	}
}

func (a *IDAllocator) observeValue(value Value) {
	switch data := value.Data.(type) {
	case Nested:
		a.observeProperties(data.Properties)
	case ValueList:
		a.observeValue(data.DefaultValue)

		for _, item := range data.Items {
			a.observeValue(item)
		}
	}
}

func bump(counter *atomic.Uint64, seen uint64) {
	for {
		current := counter.Load()
		if current > seen {
			return
		}

		if counter.CompareAndSwap(current, seen+1) {
			return
		}
	}
}
