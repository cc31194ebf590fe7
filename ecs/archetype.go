package ecs

import (
	"iter"
	"reflect"
	"slices"
	"sort"
	"unsafe"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype represents a unique combination of component types
type Archetype struct {
	id          uint32
	types       []reflect.Type
	columns     []componentColumn
	generations []uint32
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]componentColumn, len(types)),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.columns[idx] = factory()
	}

	return a
}

// Spawn appends one entity built from components, which must match the archetype's
// types one to one.
func (a *Archetype) Spawn(components []any) EntityId {
	index := -1
	for _, comp := range components {
		col := a.columnIndex(componentType(comp))
		if col == -1 {
			panic("component " + componentType(comp).String() + " does not belong to archetype")
		}
		pos := a.columns[col].Append(comp)
		if index != -1 && pos != index {
			panic("archetype columns out of step")
		}
		index = pos
	}
	if index > MaxEntityIndex {
		panic("archetype is full")
	}
	for len(a.generations) <= index {
		a.generations = append(a.generations, 0)
	}
	return a.entityId(index)
}

func (a *Archetype) entityId(index int) EntityId {
	return NewEntityId(a.id, uint32(index), a.generations[index])
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	for i, typ := range a.types {
		if typ == t {
			return i
		}
	}
	return -1
}

// GetComponent returns a pointer to the component of the given type, or nil
// when id is dead or lacks it.
func (a *Archetype) GetComponent(id EntityId, compType reflect.Type) any {
	idx := a.columnIndex(compType)
	if idx == -1 || !a.Alive(id) {
		return nil
	}
	return a.columns[idx].Get(int(id.Index()))
}

// Delete empties the entity's slot in every column and advances the slot's
// generation. Indices of other entities are unaffected. It reports whether the
// entity was alive.
func (a *Archetype) Delete(id EntityId) bool {
	if !a.Alive(id) {
		return false
	}
	index := int(id.Index())
	for _, col := range a.columns {
		col.Delete(index)
	}
	a.generations[index] = (a.generations[index] + 1) & MaxGeneration
	return true
}

// Alive reports whether id refers to the entity currently in its slot.
func (a *Archetype) Alive(id EntityId) bool {
	index := int(id.Index())
	return len(a.columns) > 0 &&
		index < len(a.generations) &&
		a.generations[index] == id.Generation() &&
		a.columns[0].Has(index)
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// Iter returns an iterator over all live EntityIds in this archetype
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(a.entityId(index)) {
				return
			}
		}
	}
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		if slices.Contains(types, t) {
			panic("duplicate component type " + t.String())
		}
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

// eface mirrors the runtime layout of an empty interface.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func typePointer(t reflect.Type) uintptr {
	return uintptr((*eface)(unsafe.Pointer(&t)).data)
}

// hashTypes generates an FNV-1a hash over a sorted slice of types
func hashTypes(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := typePointer(t)
		val := uint32(ptr)
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}

	return h
}
