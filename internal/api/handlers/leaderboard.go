package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/internal/s5_export"
	"github.com/vivekpatel25/acac-war/pkg/logger"
	"github.com/vivekpatel25/acac-war/pkg/redis"
)

var divisionName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// LeaderboardHandler serves exported leaderboards, read through the Redis cache
// ⭐ SSOT: 리더보드 API 핸들러는 이 구조체에서만
type LeaderboardHandler struct {
	outputDir string
	season    int
	cache     *redis.Cache
	logger    *logger.Logger
}

// NewLeaderboardHandler creates a handler over the export directory.
// season is the default when the request does not pass ?season=.
func NewLeaderboardHandler(outputDir string, season int, cache *redis.Cache, log *logger.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		outputDir: outputDir,
		season:    season,
		cache:     cache,
		logger:    log,
	}
}

// LeaderboardResponse is the body of GET /api/leaderboards/{division}
type LeaderboardResponse struct {
	Division string                     `json:"division"`
	Season   int                        `json:"season"`
	Rows     []contracts.LeaderboardRow `json:"rows"`
}

// ListDivisions returns the divisions exported for a season
// GET /api/leaderboards
func (h *LeaderboardHandler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	season, ok := h.seasonParam(w, r)
	if !ok {
		return
	}

	pattern := filepath.Join(h.outputDir, fmt.Sprintf("leaderboard_*_%d.csv", season))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list leaderboards")
		respondError(w, http.StatusInternalServerError, "Failed to list leaderboards")
		return
	}

	suffix := fmt.Sprintf("_%d.csv", season)
	divisions := make([]string, 0, len(matches))
	for _, m := range matches {
		d := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), "leaderboard_"), suffix)
		if divisionName.MatchString(d) {
			divisions = append(divisions, d)
		}
	}
	sort.Strings(divisions)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season":    season,
		"divisions": divisions,
	})
}

// GetLeaderboard returns the ranked rows of one division
// GET /api/leaderboards/{division}
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	division, season, ok := h.partition(w, r)
	if !ok {
		return
	}

	path := s5_export.OutputPath(h.outputDir, division, season)
	var rows []contracts.LeaderboardRow
	err := h.cache.GetOrSet(r.Context(), redis.LeaderboardKey(season, division), &rows, redis.TTLShort, func() (interface{}, error) {
		return s5_export.ReadLeaderboard(path)
	})
	if errors.Is(err, os.ErrNotExist) {
		respondError(w, http.StatusNotFound, "Leaderboard not found")
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("division", division).Error("Failed to read leaderboard")
		respondError(w, http.StatusInternalServerError, "Failed to read leaderboard")
		return
	}
	if rows == nil {
		rows = []contracts.LeaderboardRow{}
	}

	respondJSON(w, http.StatusOK, LeaderboardResponse{Division: division, Season: season, Rows: rows})
}

// GetMeta returns when a division was last exported and its row count
// GET /api/leaderboards/{division}/meta
func (h *LeaderboardHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	division, season, ok := h.partition(w, r)
	if !ok {
		return
	}

	var meta s5_export.Meta
	found, err := h.cache.Get(r.Context(), redis.LeaderboardMetaKey(season, division), &meta)
	if err != nil {
		h.logger.WithError(err).Warn("Meta cache read failed")
	}
	if found {
		respondJSON(w, http.StatusOK, meta)
		return
	}

	path := s5_export.OutputPath(h.outputDir, division, season)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		respondError(w, http.StatusNotFound, "Leaderboard not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to stat leaderboard")
		return
	}

	rows, err := s5_export.ReadLeaderboard(path)
	if err != nil {
		h.logger.WithError(err).WithField("division", division).Error("Failed to read leaderboard")
		respondError(w, http.StatusInternalServerError, "Failed to read leaderboard")
		return
	}

	respondJSON(w, http.StatusOK, s5_export.Meta{
		Division:  division,
		Season:    season,
		Rows:      len(rows),
		UpdatedAt: info.ModTime().UTC(),
	})
}

func (h *LeaderboardHandler) partition(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	division := mux.Vars(r)["division"]
	if !divisionName.MatchString(division) {
		respondError(w, http.StatusBadRequest, "Invalid division")
		return "", 0, false
	}
	season, ok := h.seasonParam(w, r)
	return division, season, ok
}

func (h *LeaderboardHandler) seasonParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("season")
	if raw == "" {
		return h.season, true
	}
	season, err := strconv.Atoi(raw)
	if err != nil || season <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid season")
		return 0, false
	}
	return season, true
}
