package game

// Outcome is how a session ended.
type Outcome uint8

const (
	Playing Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "playing"
	}
}

// Message is the line printed to stdout when the session ends with o.
func (o Outcome) Message() string {
	switch o {
	case Won:
		return "You win!"
	case Lost:
		return "You loose!"
	default:
		return ""
	}
}

// Session is the mutable state of one playthrough. Score only grows, Lives only
// shrinks and stops at zero, Speed stays positive.
type Session struct {
	Score   uint32
	Lives   uint32
	Speed   float64
	Outcome Outcome
}

// NewSession returns the state a playthrough starts with.
func NewSession() Session {
	return Session{
		Lives: InitialLives,
		Speed: InitialSpeed,
	}
}

// Over reports whether the session reached a terminal outcome.
func (s *Session) Over() bool {
	return s.Outcome != Playing
}

// CollectPresent scores one point and speeds the whole game up.
func (s *Session) CollectPresent() {
	s.Score++
	s.Speed += SpeedIncrement
}

// LoseLife takes one life. At zero lives it does nothing and returns false.
func (s *Session) LoseLife() bool {
	if s.Lives == 0 {
		return false
	}
	s.Lives--
	return true
}

// End records a terminal outcome. Only the first call has an effect.
func (s *Session) End(o Outcome) bool {
	if s.Over() || o == Playing {
		return false
	}
	s.Outcome = o
	return true
}
