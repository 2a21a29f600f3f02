package providers

import (
	"context"

	"github.com/jstittsworth/courtsim/internal/models"
)

// Built-in demo league: four teams, ten players each. IDs are globally
// unique so mixed-team queries stay unambiguous.

var staticTeams = map[string]models.Team{
	"harbor":  {Key: "harbor", Name: "Harbor City Breakers", Abbrev: "HCB"},
	"summit":  {Key: "summit", Name: "Summit Ridge Owls", Abbrev: "SRO"},
	"ironton": {Key: "ironton", Name: "Ironton Forge", Abbrev: "IRF"},
	"bayside": {Key: "bayside", Name: "Bayside Comets", Abbrev: "BSC"},
}

var staticRosters = map[string][]models.Player{
	"harbor": {
		{ID: 101, Name: "Darius Cole", Position: models.PositionPointGuard, Rating: 91, TeamKey: "harbor"},
		{ID: 102, Name: "Trey Vandermeer", Position: models.PositionShootingGuard, Rating: 88, TeamKey: "harbor"},
		{ID: 103, Name: "Malik Osei", Position: models.PositionSmallForward, Rating: 90, TeamKey: "harbor"},
		{ID: 104, Name: "Jonas Bergkamp", Position: models.PositionPowerForward, Rating: 85, TeamKey: "harbor"},
		{ID: 105, Name: "Victor Nwosu", Position: models.PositionCenter, Rating: 87, TeamKey: "harbor"},
		{ID: 106, Name: "Reggie Calloway", Position: models.PositionPointGuard, Rating: 78, TeamKey: "harbor"},
		{ID: 107, Name: "Sam Littlefield", Position: models.PositionShootingGuard, Rating: 76, TeamKey: "harbor"},
		{ID: 108, Name: "Andre Boucher", Position: models.PositionSmallForward, Rating: 74, TeamKey: "harbor"},
		{ID: 109, Name: "Pete Kowalski", Position: models.PositionPowerForward, Rating: 72, TeamKey: "harbor"},
		{ID: 110, Name: "Lukas Riedel", Position: models.PositionCenter, Rating: 73, TeamKey: "harbor"},
	},
	"summit": {
		{ID: 201, Name: "Isaiah Kern", Position: models.PositionPointGuard, Rating: 89, TeamKey: "summit"},
		{ID: 202, Name: "Bobby Tran", Position: models.PositionShootingGuard, Rating: 90, TeamKey: "summit"},
		{ID: 203, Name: "Emeka Duru", Position: models.PositionSmallForward, Rating: 86, TeamKey: "summit"},
		{ID: 204, Name: "Grant Holloway", Position: models.PositionPowerForward, Rating: 88, TeamKey: "summit"},
		{ID: 205, Name: "Stefan Ilic", Position: models.PositionCenter, Rating: 85, TeamKey: "summit"},
		{ID: 206, Name: "Cory Whitfield", Position: models.PositionPointGuard, Rating: 77, TeamKey: "summit"},
		{ID: 207, Name: "Dez Archibald", Position: models.PositionShootingGuard, Rating: 75, TeamKey: "summit"},
		{ID: 208, Name: "Noah Lindqvist", Position: models.PositionSmallForward, Rating: 76, TeamKey: "summit"},
		{ID: 209, Name: "Hugo Mbemba", Position: models.PositionPowerForward, Rating: 71, TeamKey: "summit"},
		{ID: 210, Name: "Wes Gantry", Position: models.PositionCenter, Rating: 70, TeamKey: "summit"},
	},
	"ironton": {
		{ID: 301, Name: "Quincy Marsh", Position: models.PositionPointGuard, Rating: 84, TeamKey: "ironton"},
		{ID: 302, Name: "Felix Okafor", Position: models.PositionShootingGuard, Rating: 86, TeamKey: "ironton"},
		{ID: 303, Name: "Dante Reyes", Position: models.PositionSmallForward, Rating: 88, TeamKey: "ironton"},
		{ID: 304, Name: "Oskar Lindgren", Position: models.PositionPowerForward, Rating: 83, TeamKey: "ironton"},
		{ID: 305, Name: "Big John Tatum", Position: models.PositionCenter, Rating: 89, TeamKey: "ironton"},
		{ID: 306, Name: "Marcel Dubois", Position: models.PositionPointGuard, Rating: 74, TeamKey: "ironton"},
		{ID: 307, Name: "Tommy Salerno", Position: models.PositionShootingGuard, Rating: 73, TeamKey: "ironton"},
		{ID: 308, Name: "Ray Whitcomb", Position: models.PositionSmallForward, Rating: 75, TeamKey: "ironton"},
		{ID: 309, Name: "Janek Novak", Position: models.PositionPowerForward, Rating: 72, TeamKey: "ironton"},
		{ID: 310, Name: "Clive Barrington", Position: models.PositionCenter, Rating: 71, TeamKey: "ironton"},
	},
	"bayside": {
		{ID: 401, Name: "Zeke Fontaine", Position: models.PositionPointGuard, Rating: 87, TeamKey: "bayside"},
		{ID: 402, Name: "Marcus Bellamy", Position: models.PositionShootingGuard, Rating: 85, TeamKey: "bayside"},
		{ID: 403, Name: "Kofi Mensah", Position: models.PositionSmallForward, Rating: 89, TeamKey: "bayside"},
		{ID: 404, Name: "Rasmus Toft", Position: models.PositionPowerForward, Rating: 86, TeamKey: "bayside"},
		{ID: 405, Name: "Gideon Strand", Position: models.PositionCenter, Rating: 84, TeamKey: "bayside"},
		{ID: 406, Name: "Ty Beaumont", Position: models.PositionPointGuard, Rating: 76, TeamKey: "bayside"},
		{ID: 407, Name: "Ellis Vance", Position: models.PositionShootingGuard, Rating: 74, TeamKey: "bayside"},
		{ID: 408, Name: "Juan Carrillo", Position: models.PositionSmallForward, Rating: 73, TeamKey: "bayside"},
		{ID: 409, Name: "Brock Henley", Position: models.PositionPowerForward, Rating: 75, TeamKey: "bayside"},
		{ID: 410, Name: "Abe Danforth", Position: models.PositionCenter, Rating: 70, TeamKey: "bayside"},
	},
}

// BuiltinTeams returns the demo league teams, ordered by key.
func BuiltinTeams() []models.Team {
	teams, _ := NewStaticRosterProvider().Teams(context.Background())
	return teams
}

// BuiltinPlayers returns every demo league player, grouped by team.
func BuiltinPlayers() []models.Player {
	var players []models.Player
	for _, team := range BuiltinTeams() {
		roster := staticRosters[team.Key]
		players = append(players, roster...)
	}
	return players
}
