package rotation

import (
	"fmt"
	"sort"

	"github.com/jstittsworth/courtsim/internal/models"
)

// LineupManager owns the active/bench partition of one team's roster. The
// roster itself is an immutable arena; the partition is a five-slot array of
// player ids plus a bench list, and Substitute is the only mutator.
//
// It also owns the starter replacement relation: while a member of the
// starting five is benched, the manager tracks which player currently
// occupies their deployment, in both directions.
type LineupManager struct {
	roster []models.Player
	byID   map[uint]int // player id -> roster index

	active [5]uint
	bench  []uint

	starters     map[uint]bool
	starterOrder [5]uint

	standIn  map[uint]uint // benched starter id -> active stand-in id
	standFor map[uint]uint // active stand-in id -> benched starter id
}

// NewLineupManager builds a lineup from a roster of at least five players.
// If startingFive is nil the top five by rating start (ties broken by id).
// A supplied starting five must be exactly five distinct roster members.
func NewLineupManager(roster []models.Player, startingFive []uint) (*LineupManager, error) {
	if len(roster) < 5 {
		return nil, &ConfigError{Reason: fmt.Sprintf("roster has %d players, need at least 5", len(roster))}
	}

	m := &LineupManager{
		roster:   make([]models.Player, len(roster)),
		byID:     make(map[uint]int, len(roster)),
		starters: make(map[uint]bool, 5),
		standIn:  make(map[uint]uint),
		standFor: make(map[uint]uint),
	}
	copy(m.roster, roster)
	for i, p := range m.roster {
		if _, dup := m.byID[p.ID]; dup {
			return nil, &ConfigError{Reason: fmt.Sprintf("duplicate player id %d in roster", p.ID)}
		}
		m.byID[p.ID] = i
	}

	if startingFive == nil {
		startingFive = defaultStartingFive(m.roster)
	}
	if len(startingFive) != 5 {
		return nil, &ConfigError{Reason: fmt.Sprintf("starting five has %d players", len(startingFive))}
	}
	seen := make(map[uint]bool, 5)
	for i, id := range startingFive {
		if _, ok := m.byID[id]; !ok {
			return nil, &ConfigError{Reason: fmt.Sprintf("starter %d is not on the roster", id)}
		}
		if seen[id] {
			return nil, &ConfigError{Reason: fmt.Sprintf("starter %d listed twice", id)}
		}
		seen[id] = true
		m.active[i] = id
		m.starterOrder[i] = id
		m.starters[id] = true
	}

	for _, p := range m.roster {
		if !seen[p.ID] {
			m.bench = append(m.bench, p.ID)
		}
	}

	return m, nil
}

func defaultStartingFive(roster []models.Player) []uint {
	ranked := make([]models.Player, len(roster))
	copy(ranked, roster)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].ID < ranked[j].ID
	})
	five := make([]uint, 5)
	for i := 0; i < 5; i++ {
		five[i] = ranked[i].ID
	}
	return five
}

// Roster returns a copy of the full roster in arena order.
func (m *LineupManager) Roster() []models.Player {
	out := make([]models.Player, len(m.roster))
	copy(out, m.roster)
	return out
}

// Active returns copies of the five players on the floor, in slot order.
func (m *LineupManager) Active() []models.Player {
	out := make([]models.Player, 5)
	for i, id := range m.active {
		out[i] = m.roster[m.byID[id]]
	}
	return out
}

// ActiveIDs returns the ids of the five players on the floor, in slot order.
func (m *LineupManager) ActiveIDs() []uint {
	out := make([]uint, 5)
	copy(out, m.active[:])
	return out
}

// Bench returns copies of the benched players.
func (m *LineupManager) Bench() []models.Player {
	out := make([]models.Player, len(m.bench))
	for i, id := range m.bench {
		out[i] = m.roster[m.byID[id]]
	}
	return out
}

// BenchIDs returns the ids of the benched players.
func (m *LineupManager) BenchIDs() []uint {
	out := make([]uint, len(m.bench))
	copy(out, m.bench)
	return out
}

// Player looks up a roster member by id.
func (m *LineupManager) Player(id uint) (models.Player, bool) {
	idx, ok := m.byID[id]
	if !ok {
		return models.Player{}, false
	}
	return m.roster[idx], true
}

func (m *LineupManager) IsActive(id uint) bool {
	for _, a := range m.active {
		if a == id {
			return true
		}
	}
	return false
}

func (m *LineupManager) IsStarter(id uint) bool {
	return m.starters[id]
}

// StarterOrder returns the original starting five in slot order.
func (m *LineupManager) StarterOrder() []uint {
	out := make([]uint, 5)
	copy(out, m.starterOrder[:])
	return out
}

// StandInFor returns the player currently deployed in place of a benched
// starter, if that relation exists.
func (m *LineupManager) StandInFor(starter uint) (uint, bool) {
	id, ok := m.standIn[starter]
	return id, ok
}

// StarterFor returns the benched starter an active player is standing in
// for, if any.
func (m *LineupManager) StarterFor(standIn uint) (uint, bool) {
	id, ok := m.standFor[standIn]
	return id, ok
}

// Substitute swaps playerOut (on the floor) with playerIn (on the bench).
// playerIn takes playerOut's slot. On any precondition failure the partition
// is left byte-identical and ErrSubstitutionRejected is returned.
func (m *LineupManager) Substitute(playerOut, playerIn uint) error {
	slot := -1
	for i, id := range m.active {
		if id == playerOut {
			slot = i
			break
		}
	}
	if slot < 0 {
		return fmt.Errorf("%w: player %d is not on the floor", ErrSubstitutionRejected, playerOut)
	}
	benchPos := -1
	for i, id := range m.bench {
		if id == playerIn {
			benchPos = i
			break
		}
	}
	if benchPos < 0 {
		return fmt.Errorf("%w: player %d is not on the bench", ErrSubstitutionRejected, playerIn)
	}

	m.active[slot] = playerIn
	m.bench[benchPos] = playerOut

	// A starter stepping back on the floor closes out their own relation.
	if m.starters[playerIn] {
		if si, ok := m.standIn[playerIn]; ok {
			delete(m.standFor, si)
			delete(m.standIn, playerIn)
		}
	}

	if s, ok := m.standFor[playerOut]; ok {
		// The outgoing player was covering for a benched starter; the
		// incoming player inherits that deployment.
		delete(m.standFor, playerOut)
		m.standIn[s] = playerIn
		m.standFor[playerIn] = s
	} else if m.starters[playerOut] {
		m.standIn[playerOut] = playerIn
		m.standFor[playerIn] = playerOut
	}

	return nil
}

// Validate confirms the partition invariant: five on the floor, no overlap
// with the bench, and active plus bench covering the roster exactly.
func (m *LineupManager) Validate() error {
	seen := make(map[uint]bool, len(m.roster))
	for _, id := range m.active {
		if _, ok := m.byID[id]; !ok {
			return fmt.Errorf("active player %d is not on the roster", id)
		}
		if seen[id] {
			return fmt.Errorf("player %d appears twice in the lineup", id)
		}
		seen[id] = true
	}
	for _, id := range m.bench {
		if _, ok := m.byID[id]; !ok {
			return fmt.Errorf("benched player %d is not on the roster", id)
		}
		if seen[id] {
			return fmt.Errorf("player %d is both active and benched", id)
		}
		seen[id] = true
	}
	if len(seen) != len(m.roster) {
		return fmt.Errorf("partition covers %d of %d roster players", len(seen), len(m.roster))
	}
	return nil
}
