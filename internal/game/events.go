package game

import "github.com/plus3/santa/ecs"

// Collision is sent when the player touches an object.
type Collision struct {
	Kind   Kind
	Entity ecs.EntityId
}

// ScoreChanged carries the score after a present was collected.
type ScoreChanged struct {
	Score uint32
}

// LivesChanged carries the lives left after a snowflake hit.
type LivesChanged struct {
	Lives uint32
}
