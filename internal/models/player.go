package models

// Positions used throughout the simulator. Roles group into interchangeable
// pairs for substitution purposes: PG/SG, SF/PF, and C which only covers C.
const (
	PositionPointGuard    = "PG"
	PositionShootingGuard = "SG"
	PositionSmallForward  = "SF"
	PositionPowerForward  = "PF"
	PositionCenter        = "C"
)

type Player struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Position string `gorm:"not null" json:"position"`
	Rating   int    `gorm:"not null" json:"rating"` // 0-99 overall skill
	TeamKey  string `gorm:"index" json:"team_key"`
}

func (Player) TableName() string {
	return "players"
}

// ValidPosition reports whether pos is one of the five recognized positions.
func ValidPosition(pos string) bool {
	switch pos {
	case PositionPointGuard, PositionShootingGuard, PositionSmallForward, PositionPowerForward, PositionCenter:
		return true
	}
	return false
}
