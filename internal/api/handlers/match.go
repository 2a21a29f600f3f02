package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jstittsworth/courtsim/internal/models"
	"github.com/jstittsworth/courtsim/internal/providers"
	"github.com/jstittsworth/courtsim/internal/rotation"
	"github.com/jstittsworth/courtsim/internal/services"
	"github.com/jstittsworth/courtsim/internal/sim"
	"github.com/jstittsworth/courtsim/pkg/config"
	"github.com/jstittsworth/courtsim/pkg/database"
	"github.com/jstittsworth/courtsim/pkg/utils"
)

type MatchHandler struct {
	db       *database.DB
	cache    *services.MatchCache
	hub      *services.LiveHub
	provider providers.RosterProvider
	cfg      *config.Config
}

func NewMatchHandler(db *database.DB, cache *services.MatchCache, hub *services.LiveHub, provider providers.RosterProvider, cfg *config.Config) *MatchHandler {
	return &MatchHandler{
		db:       db,
		cache:    cache,
		hub:      hub,
		provider: provider,
		cfg:      cfg,
	}
}

type SimulateRequest struct {
	HomeTeam    string `json:"home_team" binding:"required"`
	AwayTeam    string `json:"away_team" binding:"required"`
	Seed        int64  `json:"seed"`
	Pace        string `json:"pace"`
	HomeClosers []uint `json:"home_closers"`
	AwayClosers []uint `json:"away_closers"`
}

// Simulate runs a full match and returns the result. Identical requests are
// served from cache; every fresh run is persisted.
func (h *MatchHandler) Simulate(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "invalid simulation request", err.Error())
		return
	}
	if req.HomeTeam == req.AwayTeam {
		utils.SendValidationError(c, "a team cannot play itself", "")
		return
	}
	pace := req.Pace
	if pace == "" {
		pace = h.cfg.DefaultPace
	}

	cacheKey := h.cache.Key(req.HomeTeam, req.AwayTeam, req.Seed, pace)
	if cached, err := h.cache.Get(c.Request.Context(), cacheKey); err == nil && cached != nil {
		utils.SendSuccess(c, gin.H{"cached": true, "result": cached})
		return
	}

	homeRoster, err := h.provider.Roster(c.Request.Context(), req.HomeTeam)
	if err != nil {
		utils.SendNotFound(c, "unknown home team: "+req.HomeTeam)
		return
	}
	awayRoster, err := h.provider.Roster(c.Request.Context(), req.AwayTeam)
	if err != nil {
		utils.SendNotFound(c, "unknown away team: "+req.AwayTeam)
		return
	}

	match, err := sim.NewMatch(
		sim.TeamConfig{
			Key:     req.HomeTeam,
			Name:    req.HomeTeam,
			Roster:  homeRoster,
			Tactics: buildTactics(pace, req.HomeClosers, homeRoster),
		},
		sim.TeamConfig{
			Key:     req.AwayTeam,
			Name:    req.AwayTeam,
			Roster:  awayRoster,
			Tactics: buildTactics(pace, req.AwayClosers, awayRoster),
		},
		sim.Options{
			Seed:           req.Seed,
			QuarterMinutes: h.cfg.QuarterMinutes,
			InjuryRate:     h.cfg.InjuryRate,
		},
	)
	if err != nil {
		var cfgErr *rotation.ConfigError
		if errors.As(err, &cfgErr) {
			utils.SendValidationError(c, "invalid roster configuration", cfgErr.Error())
			return
		}
		utils.SendInternalError(c, "failed to set up match")
		return
	}
	match.OnUpdate(h.hub.BroadcastUpdate)

	result, err := match.Run()
	if err != nil {
		logrus.Errorf("simulation failed: %v", err)
		utils.SendInternalError(c, "simulation failed")
		return
	}

	record, err := services.BuildMatchRecord(uuid.NewString(), req.Seed, pace, result)
	if err != nil {
		utils.SendInternalError(c, "failed to encode match result")
		return
	}
	if err := h.db.Create(record).Error; err != nil {
		logrus.Errorf("failed to persist match %s: %v", record.ID, err)
	}
	if err := h.cache.Set(c.Request.Context(), cacheKey, result); err != nil {
		logrus.Warnf("failed to cache match result: %v", err)
	}

	utils.SendSuccess(c, gin.H{"match_id": record.ID, "result": result})
}

// buildTactics marks the top-rated players as scoring options and validates
// requested closers against the roster.
func buildTactics(pace string, closers []uint, roster []models.Player) rotation.Tactics {
	onRoster := make(map[uint]bool, len(roster))
	for _, p := range roster {
		onRoster[p.ID] = true
	}

	var validClosers []uint
	for _, id := range closers {
		if onRoster[id] {
			validClosers = append(validClosers, id)
		}
	}

	// Default scoring options: the two highest-rated players.
	best, second := uint(0), uint(0)
	bestR, secondR := -1, -1
	for _, p := range roster {
		if p.Rating > bestR {
			second, secondR = best, bestR
			best, bestR = p.ID, p.Rating
		} else if p.Rating > secondR {
			second, secondR = p.ID, p.Rating
		}
	}
	options := []uint{best}
	if second != 0 {
		options = append(options, second)
	}
	if len(validClosers) == 0 {
		validClosers = options
	}

	return rotation.Tactics{
		Pace:           rotation.Pace(pace),
		ScoringOptions: options,
		Closers:        validClosers,
	}
}

// List returns stored matches, newest first.
func (h *MatchHandler) List(c *gin.Context) {
	var matches []models.Match
	if err := h.db.Order("created_at DESC").Limit(50).Find(&matches).Error; err != nil {
		utils.SendInternalError(c, "failed to load matches")
		return
	}
	utils.SendSuccess(c, matches)
}

// Get returns one stored match by id.
func (h *MatchHandler) Get(c *gin.Context) {
	var match models.Match
	if err := h.db.First(&match, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "match not found")
			return
		}
		utils.SendInternalError(c, "failed to load match")
		return
	}
	utils.SendSuccess(c, match)
}

// Events returns the substitution log of a stored match.
func (h *MatchHandler) Events(c *gin.Context) {
	var match models.Match
	if err := h.db.Select("id", "events").First(&match, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "match not found")
			return
		}
		utils.SendInternalError(c, "failed to load match")
		return
	}
	c.Data(http.StatusOK, "application/json", match.Events)
}

// Teams lists the rosters available for simulation.
func (h *MatchHandler) Teams(c *gin.Context) {
	teams, err := h.provider.Teams(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "failed to load teams")
		return
	}
	utils.SendSuccess(c, teams)
}
