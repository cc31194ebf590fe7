package ecs

// EntityId packs the archetype ID (upper 32 bits), the slot generation
// (next 12 bits) and the slot index (lower 20 bits). A deleted slot gets a new
// generation, so ids of deleted entities never match the slot's next occupant.
type EntityId uint64

const (
	indexBits = 20

	// MaxEntityIndex is the largest slot index an archetype can hold.
	MaxEntityIndex = 1<<indexBits - 1
	// MaxGeneration is the largest generation before it wraps to zero.
	MaxGeneration = 1<<(32-indexBits) - 1
)

// NewEntityId creates an EntityId from an archetype ID, slot index and generation.
func NewEntityId(archetypeId, index, generation uint32) EntityId {
	low := (generation&MaxGeneration)<<indexBits | index&MaxEntityIndex
	return EntityId(uint64(archetypeId)<<32 | uint64(low))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the entity index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e) & MaxEntityIndex
}

// Generation extracts the slot generation from the entity ID.
func (e EntityId) Generation() uint32 {
	return uint32(e) >> indexBits
}

// System represents a behavior that runs once per frame inside a scheduler stage.
// Systems are plain structs; fields of type Query, Singleton or Events are bound
// to the storage when the system is registered.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is handed to every system executed during one Scheduler.Once call.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
	Stage     string
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
