package game

// Key is one of the keys the game listens to.
type Key uint8

const (
	KeyArrowLeft Key = iota
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyJ
	KeyL
	KeyI
	KeyK
	keyCount
)

// AllKeys lists every key the game polls.
func AllKeys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// Keyboard reports whether a key is currently held.
type Keyboard interface {
	IsKeyPressed(k Key) bool
}

// Direction is a set of held movement directions.
type Direction uint8

const (
	DirLeft Direction = 1 << iota
	DirRight
	DirUp
	DirDown
)

// Has reports whether d includes every direction in o.
func (d Direction) Has(o Direction) bool {
	return d&o == o
}

var bindings = []struct {
	dir  Direction
	keys [2]Key
}{
	{DirLeft, [2]Key{KeyArrowLeft, KeyJ}},
	{DirRight, [2]Key{KeyArrowRight, KeyL}},
	{DirUp, [2]Key{KeyArrowUp, KeyI}},
	{DirDown, [2]Key{KeyArrowDown, KeyK}},
}

// ReadDirections polls kb and returns the held directions. A nil keyboard holds nothing.
func ReadDirections(kb Keyboard) Direction {
	var held Direction
	if kb == nil {
		return held
	}
	for _, b := range bindings {
		if kb.IsKeyPressed(b.keys[0]) || kb.IsKeyPressed(b.keys[1]) {
			held |= b.dir
		}
	}
	return held
}

// KeysFor returns the two keys bound to a single direction.
func KeysFor(d Direction) [2]Key {
	for _, b := range bindings {
		if b.dir == d {
			return b.keys
		}
	}
	panic("game: no binding for direction")
}

// KeySet is a Keyboard backed by a set of held keys.
type KeySet map[Key]bool

func (s KeySet) IsKeyPressed(k Key) bool { return s[k] }
