package rotation

import "github.com/jstittsworth/courtsim/internal/models"

type subCandidate struct {
	player  models.Player
	stamina float64
}

// better orders candidates within a tier: highest stamina first, ties broken
// by rating then id, so selection is fully deterministic.
func (a subCandidate) better(b subCandidate) bool {
	if a.stamina != b.stamina {
		return a.stamina > b.stamina
	}
	if a.player.Rating != b.player.Rating {
		return a.player.Rating > b.player.Rating
	}
	return a.player.ID < b.player.ID
}

// pickReplacement chooses who checks in for an outgoing player. Candidates
// are benched, eligible, and not a starter whose tracked stand-in is still on
// the floor (those return only through the starter-return path). Preference
// tiers, best first:
//
//  1. role-compatible and fresh (stamina >= 90)
//  2. role-compatible, any stamina
//  3. any role, fresh
//  4. any role, any stamina
func (e *Engine) pickReplacement(out models.Player) (uint, bool) {
	var pool []subCandidate
	for _, id := range e.lineup.BenchIDs() {
		if !e.eligible(id) {
			continue
		}
		if e.lineup.IsStarter(id) {
			if si, ok := e.lineup.StandInFor(id); ok && e.lineup.IsActive(si) {
				continue
			}
		}
		p, _ := e.lineup.Player(id)
		pool = append(pool, subCandidate{player: p, stamina: e.stamina.Stamina(id)})
	}
	if len(pool) == 0 {
		return 0, false
	}

	tiers := []func(c subCandidate) bool{
		func(c subCandidate) bool {
			return CompatibleRoles(out.Position, c.player.Position) && c.stamina >= staminaFreshThreshold
		},
		func(c subCandidate) bool {
			return CompatibleRoles(out.Position, c.player.Position)
		},
		func(c subCandidate) bool {
			return c.stamina >= staminaFreshThreshold
		},
		func(c subCandidate) bool {
			return true
		},
	}

	for _, match := range tiers {
		best := -1
		for i, c := range pool {
			if !match(c) {
				continue
			}
			if best < 0 || c.better(pool[best]) {
				best = i
			}
		}
		if best >= 0 {
			return pool[best].player.ID, true
		}
	}
	return 0, false
}

// pickDowngrade chooses the weakest on-court player to make room for a
// reinsertion, preferring non-starters and, when asked, skipping the
// designated closers. Lowest rating goes first; ties break by stamina then
// id.
func (e *Engine) pickDowngrade(excludeClosers bool) (uint, bool) {
	best := uint(0)
	found := false
	var bestRating int
	var bestStamina float64

	consider := func(id uint) {
		p, _ := e.lineup.Player(id)
		st := e.stamina.Stamina(id)
		if !found || p.Rating < bestRating || (p.Rating == bestRating && st < bestStamina) ||
			(p.Rating == bestRating && st == bestStamina && id < best) {
			best, bestRating, bestStamina, found = id, p.Rating, st, true
		}
	}

	for _, id := range e.lineup.ActiveIDs() {
		if e.lineup.IsStarter(id) {
			continue
		}
		if excludeClosers && e.tactics.IsCloser(id) {
			continue
		}
		consider(id)
	}
	if !found {
		// Only starters (or closers) on the floor.
		for _, id := range e.lineup.ActiveIDs() {
			if excludeClosers && e.tactics.IsCloser(id) {
				continue
			}
			consider(id)
		}
	}
	return best, found
}
