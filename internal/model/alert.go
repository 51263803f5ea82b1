package model

// AlertLevel is the discrete progress state of an objective within one
// period. Levels are ordered NONE < YELLOW < RED; ACHIEVED is the
// terminal level for savings goals and shares RED's rank so that neither
// terminal level can be followed by another notification in the same
// period.
type AlertLevel string

const (
	AlertLevelNone     AlertLevel = "none"
	AlertLevelYellow   AlertLevel = "yellow"
	AlertLevelRed      AlertLevel = "red"
	AlertLevelAchieved AlertLevel = "achieved"
)

// alertLevelRanks orders levels for crossing detection.
var alertLevelRanks = map[AlertLevel]int{
	AlertLevelNone:     0,
	AlertLevelYellow:   1,
	AlertLevelRed:      2,
	AlertLevelAchieved: 2,
}

// Rank returns the ordering position of the level. Unknown values rank
// as NONE so a corrupt stored level can only cause an extra
// notification, never a suppressed one.
func (l AlertLevel) Rank() int {
	return alertLevelRanks[l]
}

// IsTerminal reports whether the level ends alerting for the current
// objective period. Only a period roll resets a terminal level.
func (l AlertLevel) IsTerminal() bool {
	return l == AlertLevelRed || l == AlertLevelAchieved
}

// AlertEvent describes a single level crossing that requires a
// notification. It is returned by the evaluator and dispatched by the
// objective service; the calculators themselves never perform I/O.
type AlertEvent struct {
	Level AlertLevel
}
