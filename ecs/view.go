package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
	entityId bool
}

// View represents a query for entities with a specific combination of components.
// T must be a struct whose fields are pointers to component types; embedded
// pointer fields are always required, named ones may be tagged `ecs:"optional"`.
// A field of type EntityId (embedded or named) receives the entity's ID.
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			fields = append(fields, viewField{typ: entityIdType, offset: field.Offset, entityId: true})
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId: " + field.Name)
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag != "optional" || field.Anonymous {
				panic("invalid ecs tag value on " + field.Name + ": \"" + tag + "\"")
			}
			optional = true
		}

		fields = append(fields, viewField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}

	return &View[T]{storage: storage, fields: fields}
}

// matchesArchetype checks if an archetype contains all required component types
func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for _, f := range v.fields {
		if f.entityId || f.optional {
			continue
		}
		if !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// columnIndices maps each view field to a column of archetype (-1 when absent).
func (v *View[T]) columnIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.fields))
	for i, f := range v.fields {
		indices[i] = -1
		if !f.entityId {
			indices[i] = archetype.columnIndex(f.typ)
		}
	}
	return indices
}

func (v *View[T]) populate(ptr unsafe.Pointer, archetype *Archetype, entityIndex int, columns []int) bool {
	for i, f := range v.fields {
		fieldPtr := unsafe.Add(ptr, f.offset)

		if f.entityId {
			*(*EntityId)(fieldPtr) = archetype.entityId(entityIndex)
			continue
		}

		var component any
		if columns[i] != -1 {
			component = archetype.columns[columns[i]].Get(entityIndex)
		}
		if component == nil {
			if !f.optional {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = (*eface)(unsafe.Pointer(&component)).data
	}
	return true
}

// Fill populates ptr with the components of id. It returns false when the
// entity is dead or lacks a required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Alive(id) || !v.matchesArchetype(archetype) {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), archetype, int(id.Index()), v.columnIndices(archetype))
}

// Get returns a populated view struct for the given entity, or nil
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) iterArchetype(archetype *Archetype, yield func(T) bool) bool {
	if len(archetype.columns) == 0 {
		return true
	}
	columns := v.columnIndices(archetype)
	var result T
	for index := range archetype.columns[0].Iter() {
		if !v.populate(unsafe.Pointer(&result), archetype, index, columns) {
			continue
		}
		if !yield(result) {
			return false
		}
	}
	return true
}

// Iter returns an iterator over every entity matching the view, in archetype ID order.
func (v *View[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, archetype := range v.storage.GetArchetypes() {
			if !v.matchesArchetype(archetype) {
				continue
			}
			if !v.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}
