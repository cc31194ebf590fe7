package game

import "image/color"

// Kind tags every object in the world. Presents and snowflakes are auto-movers,
// the player is steered by the keyboard.
type Kind uint8

const (
	KindPresent Kind = iota
	KindSnowflake
	KindPlayer
	kindCount
)

// Effect is what touching an object does to the session.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectScore
	EffectHurt
)

type kindInfo struct {
	name        string
	sprite      string
	placeholder color.RGBA
	effect      Effect
	spawnCount  int
}

var kindTable = [kindCount]kindInfo{
	KindPresent: {
		name:        "present",
		sprite:      "present.png",
		placeholder: color.RGBA{R: 214, G: 40, B: 57, A: 255},
		effect:      EffectScore,
		spawnCount:  PresentCount,
	},
	KindSnowflake: {
		name:        "snowflake",
		sprite:      "snowflake.png",
		placeholder: color.RGBA{R: 190, G: 230, B: 255, A: 255},
		effect:      EffectHurt,
		spawnCount:  SnowflakeCount,
	},
	KindPlayer: {
		name:        "santa",
		sprite:      "santa.png",
		placeholder: color.RGBA{R: 245, G: 245, B: 245, A: 255},
	},
}

func (k Kind) info() kindInfo {
	if k >= kindCount {
		panic("game: unknown kind")
	}
	return kindTable[k]
}

func (k Kind) String() string { return k.info().name }

// SpritePath is the asset file drawn for objects of this kind.
func (k Kind) SpritePath() string { return k.info().sprite }

// Placeholder is the colour used when the sprite asset is unavailable.
func (k Kind) Placeholder() color.RGBA { return k.info().placeholder }

// SpawnCount is how many objects of this kind a session starts with.
// The player is spawned separately and reports zero.
func (k Kind) SpawnCount() int { return k.info().spawnCount }

// Effect is applied to the session when the player touches an object of this kind.
func (k Kind) Effect() Effect { return k.info().effect }

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindPresent, KindSnowflake, KindPlayer}
}

// HeartSprite is the asset drawn for each remaining life.
const HeartSprite = "heart.png"
