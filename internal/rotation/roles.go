package rotation

import "github.com/jstittsworth/courtsim/internal/models"

// roleGroup buckets positions into interchangeable groups: the two guard
// spots cover each other, the two forward spots cover each other, and center
// only covers center.
var roleGroup = map[string]string{
	models.PositionPointGuard:    "guard",
	models.PositionShootingGuard: "guard",
	models.PositionSmallForward:  "forward",
	models.PositionPowerForward:  "forward",
	models.PositionCenter:        "center",
}

// CompatibleRoles reports whether a player at position b can cover position a.
// The relation is symmetric.
func CompatibleRoles(a, b string) bool {
	ga, ok := roleGroup[a]
	if !ok {
		return false
	}
	gb, ok := roleGroup[b]
	if !ok {
		return false
	}
	return ga == gb
}
