package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/plus3/santa/ecs"
)

// Stages run in this order every frame. Commands queued in a stage are applied
// before the next one starts.
const (
	StageMovement = "movement"
	StageBoundary = "boundary"
	StageInput    = "input"
	StageDetect   = "detect"
	StageEffects  = "effects"
	StageCleanup  = "cleanup"
	StageEvaluate = "evaluate"
	StageDebug    = "debug"
)

// Stages returns the stage names in execution order.
func Stages() []string {
	return []string{
		StageMovement,
		StageBoundary,
		StageInput,
		StageDetect,
		StageEffects,
		StageCleanup,
		StageEvaluate,
		StageDebug,
	}
}

type mover struct {
	*Position
	*AutoMover
}

type object struct {
	ecs.EntityId
	*Kind
	*Position
	*Collider
}

type playerView struct {
	ecs.EntityId
	*Player
	*Position
	*Collider
}

type confined struct {
	*Position
	*Collider
	Mover *AutoMover `ecs:"optional"`
}

type heartView struct {
	ecs.EntityId
	*Heart
}

func countKind(q *ecs.Query[object], k Kind) int {
	n := 0
	for o := range q.Iter() {
		if *o.Kind == k {
			n++
		}
	}
	return n
}

// MoveAutoMoversSystem advances every auto-mover at the session speed.
type MoveAutoMoversSystem struct {
	Movers  ecs.Query[mover]
	Session ecs.Singleton[Session]
}

func (s *MoveAutoMoversSystem) Execute(frame *ecs.UpdateFrame) {
	speed := s.Session.MustGet().Speed
	for m := range s.Movers.Iter() {
		Integrate(m.Position, *m.AutoMover, speed, frame.DeltaTime)
	}
}

// BounceSystem reflects auto-movers off the window edges.
type BounceSystem struct {
	Movers ecs.Query[mover]
	Window ecs.Singleton[Window]
}

func (s *BounceSystem) Execute(frame *ecs.UpdateFrame) {
	w := *s.Window.MustGet()
	for m := range s.Movers.Iter() {
		Reflect(*m.Position, m.AutoMover, HalfExtent, w)
	}
}

// ReadInputSystem polls Keyboard into the Controls singleton.
type ReadInputSystem struct {
	Keyboard Keyboard
	Controls ecs.Singleton[Controls]
}

func (s *ReadInputSystem) Execute(frame *ecs.UpdateFrame) {
	s.Controls.MustGet().Held = ReadDirections(s.Keyboard)
}

// MovePlayerSystem steers the player from the held directions.
type MovePlayerSystem struct {
	Players  ecs.Query[playerView]
	Controls ecs.Singleton[Controls]
	Session  ecs.Singleton[Session]
	Window   ecs.Singleton[Window]
}

func (s *MovePlayerSystem) Execute(frame *ecs.UpdateFrame) {
	held := s.Controls.MustGet().Held
	if held == 0 {
		return
	}
	p := s.Players.Single()
	Steer(p.Position, held, s.Session.MustGet().Speed, frame.DeltaTime, HalfExtent, *s.Window.MustGet())
}

// DetectCollisionsSystem sends a Collision for every object of kind Target
// touching the player. One instance is registered per target kind.
type DetectCollisionsSystem struct {
	Target     Kind
	Objects    ecs.Query[object]
	Players    ecs.Query[playerView]
	Collisions ecs.Events[Collision]
}

func (s *DetectCollisionsSystem) Execute(frame *ecs.UpdateFrame) {
	p := s.Players.Single()
	for o := range s.Objects.Iter() {
		if *o.Kind != s.Target {
			continue
		}
		if Touching(*p.Position, p.Radius, *o.Position, o.Radius) {
			s.Collisions.Send(Collision{Kind: s.Target, Entity: o.EntityId})
		}
	}
}

// CollisionEffectsSystem applies each collision to the session.
type CollisionEffectsSystem struct {
	Session    ecs.Singleton[Session]
	Collisions ecs.Events[Collision]
	Scores     ecs.Events[ScoreChanged]
	Lives      ecs.Events[LivesChanged]
	Logger     *log.Logger
}

func (s *CollisionEffectsSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.MustGet()
	for c := range s.Collisions.Read() {
		scored, hurt := Apply(session, c.Kind)
		if scored {
			s.Logger.Debug("present collected", "score", session.Score, "speed", session.Speed)
			s.Scores.Send(ScoreChanged{Score: session.Score})
		}
		if hurt {
			s.Logger.Debug("snowflake hit", "lives", session.Lives)
			s.Lives.Send(LivesChanged{Lives: session.Lives})
		}
	}
}

// UpdateScoreLabelSystem keeps the HUD text in step with the score.
type UpdateScoreLabelSystem struct {
	Label  ecs.Singleton[ScoreLabel]
	Scores ecs.Events[ScoreChanged]
}

func (s *UpdateScoreLabelSystem) Execute(frame *ecs.UpdateFrame) {
	var score uint32
	for ev := range s.Scores.Read() {
		score = ev.Score
	}
	s.Label.MustGet().Text = scoreText(score)
}

func scoreText(score uint32) string {
	return fmt.Sprintf("Score: %d", score)
}

// UpdateHeartsSystem removes the heart icons of lost lives.
type UpdateHeartsSystem struct {
	Hearts ecs.Query[heartView]
	Lives  ecs.Events[LivesChanged]
}

func (s *UpdateHeartsSystem) Execute(frame *ecs.UpdateFrame) {
	lives := uint32(InitialLives)
	for ev := range s.Lives.Read() {
		lives = ev.Lives
	}
	for h := range s.Hearts.Iter() {
		if h.Slot > lives {
			frame.Commands.Delete(h.EntityId)
		}
	}
}

// DespawnCollidedSystem removes every object the player touched this frame.
type DespawnCollidedSystem struct {
	Collisions ecs.Events[Collision]
}

func (s *DespawnCollidedSystem) Execute(frame *ecs.UpdateFrame) {
	for c := range s.Collisions.Read() {
		frame.Commands.Delete(c.Entity)
	}
}

// WinSystem ends the session once no presents are left.
type WinSystem struct {
	Session ecs.Singleton[Session]
	Objects ecs.Query[object]
	Out     io.Writer
	Logger  *log.Logger
}

func (s *WinSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.MustGet()
	if Evaluate(session, countKind(&s.Objects, KindPresent), false) == Won {
		announce(s.Out, s.Logger, session)
	}
}

// LoseSystem ends the session when the last life is gone. It only runs on
// frames that changed the lives counter.
type LoseSystem struct {
	Session ecs.Singleton[Session]
	Objects ecs.Query[object]
	Out     io.Writer
	Logger  *log.Logger
}

func (s *LoseSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.MustGet()
	if Evaluate(session, countKind(&s.Objects, KindPresent), true) == Lost {
		announce(s.Out, s.Logger, session)
	}
}

func announce(out io.Writer, logger *log.Logger, session *Session) {
	if out != nil {
		fmt.Fprintln(out, session.Outcome.Message())
	}
	logger.Info("session over", "outcome", session.Outcome, "score", session.Score, "lives", session.Lives)
}
