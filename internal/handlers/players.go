package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jorgeberrex/mars-api/internal/leaderboard"
	"github.com/jorgeberrex/mars-api/internal/models"
)

type PreLoginRequest struct {
	Player models.SimplePlayer `json:"player" validate:"required"`
	IP     string              `json:"ip" validate:"required"`
}

type PreLoginResponse struct {
	New               bool                `json:"new"`
	Allowed           bool                `json:"allowed"`
	Player            *models.Player      `json:"player"`
	ActivePunishments []models.Punishment `json:"activePunishments"`
}

// PreLogin resolves a joining player's profile and active punishments
// before the proxy lets them through. Bans make Allowed false; the proxy
// enforces the verdict.
func (h *Handler) PreLogin(w http.ResponseWriter, r *http.Request) {
	var req PreLoginRequest
	if !h.decode(w, r, &req) {
		return
	}
	if chi.URLParam(r, "playerId") != req.Player.ID {
		h.errorResponse(w, ErrValidation, "URL and body player ids do not match")
		return
	}
	ctx := r.Context()
	ip := h.hashIP(req.IP)

	player, err := h.store.PlayerByID(ctx, req.Player.ID)
	if err != nil {
		h.logger.Errorw("Prelogin lookup failed", "playerId", req.Player.ID, "error", err)
		h.errorResponse(w, ErrValidation, "Player lookup failed")
		return
	}

	if player == nil {
		now := nowMillis()
		player = &models.Player{
			ID:            req.Player.ID,
			Name:          req.Player.Name,
			NameLower:     lower(req.Player.Name),
			IPs:           []string{ip},
			FirstJoinedAt: now,
			LastJoinedAt:  now,
			RankIDs:       []string{},
			TagIDs:        []string{},
			Stats:         models.NewPlayerStats(),
			GamemodeStats: map[models.Gamemode]models.PlayerStats{},
			Notes:         []models.StaffNote{},
		}
		if err := h.store.EnsurePlayerNameUniqueness(ctx, player.Name, player.ID); err != nil {
			h.logger.Errorw("Name uniqueness sweep failed", "player", player.Name, "error", err)
		}
		if err := h.players.Set(ctx, player.Name, player, true); err != nil {
			h.logger.Errorw("Prelogin save failed", "playerId", player.ID, "error", err)
			h.errorResponse(w, ErrValidation, "Player save failed")
			return
		}
		h.jsonResponse(w, http.StatusCreated, PreLoginResponse{
			New:               true,
			Allowed:           true,
			Player:            player,
			ActivePunishments: []models.Punishment{},
		})
		return
	}

	// Returning player: refresh identity and record the address.
	player.Name = req.Player.Name
	player.NameLower = lower(req.Player.Name)
	if !contains(player.IPs, ip) {
		player.IPs = append(player.IPs, ip)
	}

	active, err := h.store.ActivePlayerPunishments(ctx, player)
	if err != nil {
		h.logger.Errorw("Punishment lookup failed", "playerId", player.ID, "error", err)
		h.errorResponse(w, ErrValidation, "Punishment lookup failed")
		return
	}
	ipBans, err := h.store.IPBans(ctx, ip)
	if err != nil {
		h.logger.Errorw("IP ban lookup failed", "playerId", player.ID, "error", err)
		h.errorResponse(w, ErrValidation, "Punishment lookup failed")
		return
	}
	for _, ban := range ipBans {
		if ban.Target.ID != player.ID {
			active = append(active, ban)
		}
	}

	allowed := true
	for i := range active {
		if active[i].IsBan() {
			allowed = false
			break
		}
	}

	if err := h.store.EnsurePlayerNameUniqueness(ctx, player.Name, player.ID); err != nil {
		h.logger.Errorw("Name uniqueness sweep failed", "player", player.Name, "error", err)
	}
	if err := h.players.Set(ctx, player.Name, player, true); err != nil {
		h.logger.Errorw("Prelogin save failed", "playerId", player.ID, "error", err)
		h.errorResponse(w, ErrValidation, "Player save failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, PreLoginResponse{
		New:               false,
		Allowed:           allowed,
		Player:            player,
		ActivePunishments: active,
	})
}

type LoginRequest struct {
	Player models.SimplePlayer `json:"player" validate:"required"`
	IP     string              `json:"ip" validate:"required"`
}

type LoginResponse struct {
	ActiveSession *models.Session `json:"activeSession"`
}

// Login opens a session once the player has fully joined a server.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}
	if chi.URLParam(r, "playerId") != req.Player.ID {
		h.errorResponse(w, ErrValidation, "URL and body player ids do not match")
		return
	}
	ctx := r.Context()

	player, err := h.players.Get(ctx, req.Player.Name)
	if err != nil {
		h.logger.Errorw("Login lookup failed", "player", req.Player.Name, "error", err)
		h.errorResponse(w, ErrValidation, "Player lookup failed")
		return
	}
	if player == nil || player.ID != req.Player.ID {
		h.errorResponse(w, ErrPlayerMissing, "Player has not completed prelogin")
		return
	}

	session := &models.Session{
		ID:        uuid.New().String(),
		IP:        h.hashIP(req.IP),
		Player:    player.ToSimple(),
		ServerID:  callingServerID(r),
		CreatedAt: nowMillis(),
	}
	if err := h.store.InsertSession(ctx, session); err != nil {
		h.logger.Errorw("Session insert failed", "playerId", player.ID, "error", err)
		h.errorResponse(w, ErrValidation, "Session save failed")
		return
	}

	// Default ranks apply on every join so newly flagged ranks reach
	// existing players too.
	defaults, err := h.store.DefaultRanks(ctx)
	if err != nil {
		h.logger.Warnw("Default rank lookup failed", "error", err)
	}
	for _, rank := range defaults {
		if !contains(player.RankIDs, rank.ID) {
			player.RankIDs = append(player.RankIDs, rank.ID)
		}
	}

	player.LastJoinedAt = session.CreatedAt
	player.LastSessionID = &session.ID
	if err := h.players.Set(ctx, player.Name, player, true); err != nil {
		h.logger.Errorw("Login save failed", "playerId", player.ID, "error", err)
		h.errorResponse(w, ErrValidation, "Player save failed")
		return
	}

	h.jsonResponse(w, http.StatusCreated, LoginResponse{ActiveSession: session})
}

type LogoutRequest struct {
	Player    models.SimplePlayer `json:"player" validate:"required"`
	SessionID string              `json:"sessionId" validate:"required"`
	Playtime  int64               `json:"playtime"`
}

// Logout closes the session and folds the visit into lifetime playtime.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if !h.decode(w, r, &req) {
		return
	}
	ctx := r.Context()

	player, err := h.players.Get(ctx, req.Player.Name)
	if err != nil || player == nil {
		h.errorResponse(w, ErrPlayerMissing, "Unknown player")
		return
	}
	session, err := h.store.SessionForPlayer(ctx, player, req.SessionID)
	if err != nil {
		h.logger.Errorw("Session lookup failed", "sessionId", req.SessionID, "error", err)
		h.errorResponse(w, ErrValidation, "Session lookup failed")
		return
	}
	if session == nil {
		h.errorResponse(w, ErrSessionMissing, "No such session for player")
		return
	}
	if !session.IsActive() {
		h.errorResponse(w, ErrSessionInactive, "Session already ended")
		return
	}

	now := nowMillis()
	session.EndedAt = &now
	player.Stats.ServerPlaytime += req.Playtime

	if delta := clampPlaytimeDelta(req.Playtime); delta > 0 {
		h.boards.Increment(ctx, leaderboard.ScoreServerPlaytime, player.IDName(), delta)
	}
	if rec := player.Stats.Records.LongestSession; rec == nil || req.Playtime > rec.Length {
		player.Stats.Records.LongestSession = &models.SessionRecord{
			SessionID: session.ID,
			Length:    req.Playtime,
		}
	}

	if err := h.store.SaveSession(ctx, session); err != nil {
		h.logger.Errorw("Session save failed", "sessionId", session.ID, "error", err)
		h.errorResponse(w, ErrValidation, "Session save failed")
		return
	}
	if err := h.players.Set(ctx, player.Name, player, true); err != nil {
		h.logger.Errorw("Logout save failed", "playerId", player.ID, "error", err)
		h.errorResponse(w, ErrValidation, "Player save failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]any{"session": session})
}

// profilePositionBoards are the metrics surfaced as all-time positions on
// the profile screen; playtime and chat volume stay internal.
var profilePositionBoards = func() []leaderboard.ScoreType {
	out := make([]leaderboard.ScoreType, 0, len(leaderboard.AllScoreTypes))
	for _, st := range leaderboard.AllScoreTypes {
		switch st {
		case leaderboard.ScoreMessagesSent, leaderboard.ScoreServerPlaytime, leaderboard.ScoreGamePlaytime:
			continue
		}
		out = append(out, st)
	}
	return out
}()

// PlayerProfile returns the sanitized profile, optionally with all-time
// leaderboard positions.
func (h *Handler) PlayerProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player, err := h.players.Get(ctx, chi.URLParam(r, "playerId"))
	if err != nil {
		h.errorResponse(w, ErrValidation, "Player lookup failed")
		return
	}
	if player == nil {
		h.errorResponse(w, ErrPlayerMissing, "No such player")
		return
	}

	response := map[string]any{"player": player.SanitizedCopy()}
	if r.URL.Query().Get("includeLeaderboardPositions") == "true" {
		positions := make(map[leaderboard.ScoreType]int64, len(profilePositionBoards))
		for _, st := range profilePositionBoards {
			pos, err := h.boards.Board(st).Position(ctx, leaderboard.PeriodAllTime, player.IDName())
			if err != nil {
				h.logger.Warnw("Position lookup failed", "board", st, "error", err)
				pos = -1
			}
			positions[st] = pos
		}
		response["leaderboardPositions"] = positions
	}
	h.jsonResponse(w, http.StatusOK, response)
}

// PlayerLookup is the staff view: full profile, punishment history and
// optionally alt accounts sharing an address.
func (h *Handler) PlayerLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player, err := h.players.Get(ctx, chi.URLParam(r, "playerId"))
	if err != nil {
		h.errorResponse(w, ErrValidation, "Player lookup failed")
		return
	}
	if player == nil {
		h.errorResponse(w, ErrPlayerMissing, "No such player")
		return
	}

	punishments, err := h.store.PlayerPunishments(ctx, player)
	if err != nil {
		h.logger.Errorw("Punishment lookup failed", "playerId", player.ID, "error", err)
		h.errorResponse(w, ErrValidation, "Punishment lookup failed")
		return
	}

	response := map[string]any{"player": player, "punishments": punishments}
	if r.URL.Query().Get("includeAlts") == "true" {
		alts, err := h.store.AltsForPlayer(ctx, player)
		if err != nil {
			h.logger.Warnw("Alt lookup failed", "playerId", player.ID, "error", err)
		}
		if alts == nil {
			alts = []models.Player{}
		}
		response["alts"] = alts
	}
	h.jsonResponse(w, http.StatusOK, response)
}

// PlayerPunishments lists the player's full punishment history.
func (h *Handler) PlayerPunishments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player, err := h.players.Get(ctx, chi.URLParam(r, "playerId"))
	if err != nil || player == nil {
		h.errorResponse(w, ErrPlayerMissing, "No such player")
		return
	}
	punishments, err := h.store.PlayerPunishments(ctx, player)
	if err != nil {
		h.errorResponse(w, ErrValidation, "Punishment lookup failed")
		return
	}
	if punishments == nil {
		punishments = []models.Punishment{}
	}
	h.jsonResponse(w, http.StatusOK, punishments)
}

type IssuePunishmentRequest struct {
	Reason    models.PunishmentReason `json:"reason" validate:"required"`
	Offence   int                     `json:"offence"`
	Action    models.PunishmentAction `json:"action" validate:"required"`
	Note      *string                 `json:"note"`
	Punisher  *models.SimplePlayer    `json:"punisher"`
	TargetIPs []string                `json:"targetIps"`
	Silent    bool                    `json:"silent"`
}

// IssuePunishment records a new punishment against the player.
func (h *Handler) IssuePunishment(w http.ResponseWriter, r *http.Request) {
	var req IssuePunishmentRequest
	if !h.decode(w, r, &req) {
		return
	}
	ctx := r.Context()

	player, err := h.players.Get(ctx, chi.URLParam(r, "playerId"))
	if err != nil || player == nil {
		h.errorResponse(w, ErrPlayerMissing, "No such player")
		return
	}

	targetIPs := req.TargetIPs
	if targetIPs == nil {
		targetIPs = player.IPs
	}

	var serverID *string
	if id := callingServerID(r); id != "" {
		serverID = &id
	}

	pun := &models.Punishment{
		ID:        uuid.New().String(),
		Reason:    req.Reason,
		IssuedAt:  nowMillis(),
		Silent:    req.Silent,
		Offence:   req.Offence,
		Action:    req.Action,
		Note:      req.Note,
		Punisher:  req.Punisher,
		Target:    player.ToSimple(),
		TargetIPs: targetIPs,
		ServerID:  serverID,
	}
	if err := h.store.InsertPunishment(ctx, pun); err != nil {
		h.logger.Errorw("Punishment insert failed", "playerId", player.ID, "error", err)
		h.errorResponse(w, ErrValidation, "Punishment save failed")
		return
	}

	h.webhooks.SendPunishment(pun)
	h.jsonResponse(w, http.StatusCreated, pun)
}

type AddNoteRequest struct {
	Author  models.SimplePlayer `json:"author" validate:"required"`
	Content string              `json:"content" validate:"required"`
}

// AddNote appends a staff note; ids are monotonically assigned per player.
func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req AddNoteRequest
	if !h.decode(w, r, &req) {
		return
	}
	ctx := r.Context()

	player, err := h.players.Get(ctx, chi.URLParam(r, "playerId"))
	if err != nil || player == nil {
		h.errorResponse(w, ErrPlayerMissing, "No such player")
		return
	}

	maxID := 0
	for _, note := range player.Notes {
		if note.ID > maxID {
			maxID = note.ID
		}
	}
	note := models.StaffNote{
		ID:        maxID + 1,
		Author:    req.Author,
		Content:   req.Content,
		CreatedAt: nowMillis(),
	}
	player.Notes = append(player.Notes, note)

	if err := h.players.Set(ctx, player.Name, player, true); err != nil {
		h.errorResponse(w, ErrValidation, "Player save failed")
		return
	}
	h.webhooks.SendNoteAdded(player, &note)
	h.jsonResponse(w, http.StatusCreated, player)
}

// DeleteNote removes a staff note by its per-player id.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player, err := h.players.Get(ctx, chi.URLParam(r, "playerId"))
	if err != nil || player == nil {
		h.errorResponse(w, ErrPlayerMissing, "No such player")
		return
	}
	noteID, err := strconv.Atoi(chi.URLParam(r, "noteId"))
	if err != nil {
		h.errorResponse(w, ErrValidation, "Invalid note id")
		return
	}

	idx := -1
	for i, note := range player.Notes {
		if note.ID == noteID {
			idx = i
			break
		}
	}
	if idx == -1 {
		h.errorResponse(w, ErrNoteMissing, "No such note")
		return
	}
	deleted := player.Notes[idx]
	player.Notes = append(player.Notes[:idx], player.Notes[idx+1:]...)

	if err := h.players.Set(ctx, player.Name, player, true); err != nil {
		h.errorResponse(w, ErrValidation, "Player save failed")
		return
	}
	h.webhooks.SendNoteDeleted(player, &deleted)
	h.jsonResponse(w, http.StatusOK, player)
}

type SetActiveTagRequest struct {
	TagID *string `json:"tagId"`
}

// SetActiveTag switches the displayed tag; nil clears it.
func (h *Handler) SetActiveTag(w http.ResponseWriter, r *http.Request) {
	var req SetActiveTagRequest
	if !h.decode(w, r, &req) {
		return
	}
	ctx := r.Context()

	player, err := h.players.Get(ctx, chi.URLParam(r, "playerId"))
	if err != nil || player == nil {
		h.errorResponse(w, ErrPlayerMissing, "No such player")
		return
	}

	if req.TagID != nil && !contains(player.TagIDs, *req.TagID) {
		h.errorResponse(w, ErrTagNotPresent, "Player does not own this tag")
		return
	}
	if equalOptional(player.ActiveTagID, req.TagID) {
		h.jsonResponse(w, http.StatusOK, player)
		return
	}

	player.ActiveTagID = req.TagID
	if err := h.players.Set(ctx, player.Name, player, true); err != nil {
		h.errorResponse(w, ErrValidation, "Player save failed")
		return
	}
	h.jsonResponse(w, http.StatusOK, player)
}

// AddPlayerTag grants a tag to the player.
func (h *Handler) AddPlayerTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player, err := h.players.Get(ctx, chi.URLParam(r, "playerId"))
	if err != nil || player == nil {
		h.errorResponse(w, ErrPlayerMissing, "No such player")
		return
	}
	tag, err := h.store.TagByID(ctx, chi.URLParam(r, "tagId"))
	if err != nil || tag == nil {
		h.errorResponse(w, ErrTagMissing, "No such tag")
		return
	}
	if contains(player.TagIDs, tag.ID) {
		h.errorResponse(w, ErrTagAlreadyPresent, "Player already owns this tag")
		return
	}

	player.TagIDs = append(player.TagIDs, tag.ID)
	if err := h.players.Set(ctx, player.Name, player, true); err != nil {
		h.errorResponse(w, ErrValidation, "Player save failed")
		return
	}
	h.jsonResponse(w, http.StatusOK, player)
}

// RemovePlayerTag revokes a tag, clearing it from the active slot if worn.
func (h *Handler) RemovePlayerTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player, err := h.players.Get(ctx, chi.URLParam(r, "playerId"))
	if err != nil || player == nil {
		h.errorResponse(w, ErrPlayerMissing, "No such player")
		return
	}
	tagID := chi.URLParam(r, "tagId")
	if !contains(player.TagIDs, tagID) {
		h.errorResponse(w, ErrTagNotPresent, "Player does not own this tag")
		return
	}

	player.TagIDs = remove(player.TagIDs, tagID)
	if player.ActiveTagID != nil && *player.ActiveTagID == tagID {
		player.ActiveTagID = nil
	}
	if err := h.players.Set(ctx, player.Name, player, true); err != nil {
		h.errorResponse(w, ErrValidation, "Player save failed")
		return
	}
	h.jsonResponse(w, http.StatusOK, player)
}

// AddPlayerRank grants a rank to the player.
func (h *Handler) AddPlayerRank(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player, err := h.players.Get(ctx, chi.URLParam(r, "playerId"))
	if err != nil || player == nil {
		h.errorResponse(w, ErrPlayerMissing, "No such player")
		return
	}
	rank, err := h.store.RankByID(ctx, chi.URLParam(r, "rankId"))
	if err != nil || rank == nil {
		h.errorResponse(w, ErrRankMissing, "No such rank")
		return
	}
	if contains(player.RankIDs, rank.ID) {
		h.errorResponse(w, ErrRankAlreadyPresent, "Player already has this rank")
		return
	}

	player.RankIDs = append(player.RankIDs, rank.ID)
	if err := h.players.Set(ctx, player.Name, player, true); err != nil {
		h.errorResponse(w, ErrValidation, "Player save failed")
		return
	}
	h.jsonResponse(w, http.StatusOK, player)
}

// RemovePlayerRank revokes a rank from the player.
func (h *Handler) RemovePlayerRank(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player, err := h.players.Get(ctx, chi.URLParam(r, "playerId"))
	if err != nil || player == nil {
		h.errorResponse(w, ErrPlayerMissing, "No such player")
		return
	}
	rankID := chi.URLParam(r, "rankId")
	if !contains(player.RankIDs, rankID) {
		h.errorResponse(w, ErrRankNotPresent, "Player does not have this rank")
		return
	}

	player.RankIDs = remove(player.RankIDs, rankID)
	if err := h.players.Set(ctx, player.Name, player, true); err != nil {
		h.errorResponse(w, ErrValidation, "Player save failed")
		return
	}
	h.jsonResponse(w, http.StatusOK, player)
}

type SetActiveJoinSoundRequest struct {
	SoundID *string `json:"soundId"`
}

// SetActiveJoinSound picks the player's join sound; nil clears it.
func (h *Handler) SetActiveJoinSound(w http.ResponseWriter, r *http.Request) {
	var req SetActiveJoinSoundRequest
	if !h.decode(w, r, &req) {
		return
	}
	ctx := r.Context()

	player, err := h.players.Get(ctx, chi.URLParam(r, "playerId"))
	if err != nil || player == nil {
		h.errorResponse(w, ErrPlayerMissing, "No such player")
		return
	}
	if req.SoundID != nil && !h.knownJoinSound(*req.SoundID) {
		h.errorResponse(w, ErrValidation, "Unknown join sound")
		return
	}

	player.ActiveJoinSoundID = req.SoundID
	if err := h.players.Set(ctx, player.Name, player, true); err != nil {
		h.errorResponse(w, ErrValidation, "Player save failed")
		return
	}
	h.jsonResponse(w, http.StatusOK, player)
}

func (h *Handler) knownJoinSound(id string) bool {
	for _, sound := range h.cfg.Data.JoinSounds {
		if sound.ID == id {
			return true
		}
	}
	return false
}

// clampPlaytimeDelta caps board increments at uint32 range; corrupt or
// overflowing values count as zero rather than poisoning a board.
func clampPlaytimeDelta(v int64) int64 {
	if v < 0 || v > math.MaxUint32 {
		return 0
	}
	return v
}

func contains(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}

func remove(list []string, target string) []string {
	out := list[:0]
	for _, item := range list {
		if item != target {
			out = append(out, item)
		}
	}
	return out
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
