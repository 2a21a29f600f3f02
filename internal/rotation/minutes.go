package rotation

import (
	"math"

	"github.com/jstittsworth/courtsim/internal/models"
)

const (
	// QuarterMinutes is the regulation quarter length.
	QuarterMinutes = 12.0

	redistributeExponent = 1.5
)

// MinutesPlan holds per-player minute targets for the game and for a single
// quarter. Per-quarter targets always sum to five times the quarter length
// (minus any deficit already redistributed away), so the team as a whole has
// exactly enough allocated minutes to keep five players on the floor.
type MinutesPlan struct {
	Quarter map[uint]float64
	Game    map[uint]float64

	quarterMinutes float64
}

// PlanMinutes allocates targets proportional to relative skill, capped at the
// quarter length per player. Overflow from capped players is pushed back onto
// the uncapped remainder until the allocation is feasible.
func PlanMinutes(roster []models.Player, quarterMinutes float64) *MinutesPlan {
	p := &MinutesPlan{
		Quarter:        make(map[uint]float64, len(roster)),
		Game:           make(map[uint]float64, len(roster)),
		quarterMinutes: quarterMinutes,
	}

	pool := quarterMinutes * 5
	capped := make(map[uint]bool, len(roster))
	remaining := pool

	for iter := 0; iter < len(roster); iter++ {
		ratingSum := 0
		for _, pl := range roster {
			if !capped[pl.ID] {
				ratingSum += pl.Rating
			}
		}
		if ratingSum == 0 {
			break
		}

		overflowed := false
		for _, pl := range roster {
			if capped[pl.ID] {
				continue
			}
			share := remaining * float64(pl.Rating) / float64(ratingSum)
			if share > quarterMinutes {
				p.Quarter[pl.ID] = quarterMinutes
				capped[pl.ID] = true
				overflowed = true
			} else {
				p.Quarter[pl.ID] = share
			}
		}
		if !overflowed {
			break
		}
		remaining = pool
		for id, capd := range capped {
			if capd {
				remaining -= p.Quarter[id]
			}
		}
	}

	for _, pl := range roster {
		p.Game[pl.ID] = p.Quarter[pl.ID] * 4
	}
	return p
}

// QuarterTarget returns the player's per-quarter minute target.
func (p *MinutesPlan) QuarterTarget(id uint) float64 {
	return p.Quarter[id]
}

// GameTarget returns the player's whole-game minute target.
func (p *MinutesPlan) GameTarget(id uint) float64 {
	return p.Game[id]
}

// TotalQuarter sums the per-quarter targets across the team.
func (p *MinutesPlan) TotalQuarter() float64 {
	total := 0.0
	for _, v := range p.Quarter {
		total += v
	}
	return total
}

// TotalGame sums the whole-game targets across the team.
func (p *MinutesPlan) TotalGame() float64 {
	total := 0.0
	for _, v := range p.Game {
		total += v
	}
	return total
}

// Redistribute moves a permanently removed player's unplayed game minutes
// onto the rest of the roster. Better players absorb disproportionately more:
// the weight is (rating - minimum roster rating + 1) raised to a fixed
// exponent above one. Total target minutes are conserved.
func (p *MinutesPlan) Redistribute(removed uint, remaining float64, roster []models.Player) {
	p.shift(p.Game, removed, remaining, roster)
}

// RedistributeQuarter does the same for the current quarter's targets.
func (p *MinutesPlan) RedistributeQuarter(removed uint, remaining float64, roster []models.Player) {
	p.shift(p.Quarter, removed, remaining, roster)
}

func (p *MinutesPlan) shift(targets map[uint]float64, removed uint, remaining float64, roster []models.Player) {
	if remaining <= 0 {
		return
	}

	minRating := math.MaxInt32
	for _, pl := range roster {
		if pl.ID == removed {
			continue
		}
		if pl.Rating < minRating {
			minRating = pl.Rating
		}
	}

	weightSum := 0.0
	weights := make([]float64, len(roster))
	for i, pl := range roster {
		if pl.ID == removed {
			continue
		}
		w := math.Pow(float64(pl.Rating-minRating+1), redistributeExponent)
		weights[i] = w
		weightSum += w
	}
	if weightSum == 0 {
		return
	}

	targets[removed] -= remaining
	for i, pl := range roster {
		if pl.ID == removed {
			continue
		}
		targets[pl.ID] += remaining * weights[i] / weightSum
	}
}

// MinutesBook tracks minutes actually played: whole game, current quarter,
// and continuously since the player's last trip through a substitution.
type MinutesBook struct {
	total      map[uint]float64
	quarter    map[uint]float64
	continuous map[uint]float64
}

func NewMinutesBook() *MinutesBook {
	return &MinutesBook{
		total:      make(map[uint]float64),
		quarter:    make(map[uint]float64),
		continuous: make(map[uint]float64),
	}
}

// Accumulate credits elapsed seconds to every player currently on the floor.
func (b *MinutesBook) Accumulate(activeIDs []uint, seconds float64) {
	minutes := seconds / 60
	for _, id := range activeIDs {
		b.total[id] += minutes
		b.quarter[id] += minutes
		b.continuous[id] += minutes
	}
}

// ResetShift zeroes continuous time for both participants of a substitution.
func (b *MinutesBook) ResetShift(out, in uint) {
	b.continuous[out] = 0
	b.continuous[in] = 0
}

// StartQuarter zeroes the per-quarter counters. Continuous time carries over
// a quarter break: a player who stays on the floor keeps their shift going.
func (b *MinutesBook) StartQuarter() {
	b.quarter = make(map[uint]float64)
}

func (b *MinutesBook) TotalPlayed(id uint) float64 {
	return b.total[id]
}

func (b *MinutesBook) QuarterPlayed(id uint) float64 {
	return b.quarter[id]
}

func (b *MinutesBook) Continuous(id uint) float64 {
	return b.continuous[id]
}
