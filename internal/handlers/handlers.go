package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jorgeberrex/mars-api/internal/config"
	"github.com/jorgeberrex/mars-api/internal/leaderboard"
	"github.com/jorgeberrex/mars-api/internal/models"
)

// MaxBodySize limits request bodies to 1MB.
const MaxBodySize = 1048576

// Store is the slice of the database the HTTP layer uses; satisfied by
// *database.Database and by hand mocks in tests.
type Store interface {
	PlayerByID(ctx context.Context, id string) (*models.Player, error)
	PlayerByIDOrName(ctx context.Context, text string) (*models.Player, error)
	SavePlayer(ctx context.Context, player *models.Player) error
	EnsurePlayerNameUniqueness(ctx context.Context, name, keepID string) error
	PlayerPunishments(ctx context.Context, player *models.Player) ([]models.Punishment, error)
	ActivePlayerPunishments(ctx context.Context, player *models.Player) ([]models.Punishment, error)
	IPBans(ctx context.Context, ip string) ([]models.Punishment, error)
	AltsForPlayer(ctx context.Context, player *models.Player) ([]models.Player, error)
	PlayersWithRank(ctx context.Context, rankID string) ([]models.Player, error)
	PlayersWithTag(ctx context.Context, tagID string) ([]models.Player, error)

	InsertSession(ctx context.Context, session *models.Session) error
	SaveSession(ctx context.Context, session *models.Session) error
	SessionForPlayer(ctx context.Context, player *models.Player, sessionID string) (*models.Session, error)
	OpenServerSessions(ctx context.Context, serverID string) ([]models.Session, error)

	InsertPunishment(ctx context.Context, pun *models.Punishment) error
	PunishmentByID(ctx context.Context, id string) (*models.Punishment, error)
	SavePunishment(ctx context.Context, pun *models.Punishment) error

	AllRanks(ctx context.Context) ([]models.Rank, error)
	RankByID(ctx context.Context, id string) (*models.Rank, error)
	RankByName(ctx context.Context, name string) (*models.Rank, error)
	SaveRank(ctx context.Context, rank *models.Rank) error
	DeleteRank(ctx context.Context, id string) error
	DefaultRanks(ctx context.Context) ([]models.Rank, error)

	AllTags(ctx context.Context) ([]models.Tag, error)
	TagByID(ctx context.Context, id string) (*models.Tag, error)
	TagByName(ctx context.Context, name string) (*models.Tag, error)
	SaveTag(ctx context.Context, tag *models.Tag) error
	DeleteTag(ctx context.Context, id string) error

	AllLevels(ctx context.Context) ([]models.Level, error)
	LevelByIDOrName(ctx context.Context, text string) (*models.Level, error)
	LevelByName(ctx context.Context, name string) (*models.Level, error)
	SaveLevel(ctx context.Context, level *models.Level) error
}

// PlayerCache is the cached player store; *database.Cache[models.Player]
// satisfies it structurally.
type PlayerCache interface {
	Get(ctx context.Context, key string) (*models.Player, error)
	Set(ctx context.Context, key string, player *models.Player, persist bool) error
}

type MatchCache interface {
	Get(ctx context.Context, key string) (*models.Match, error)
	SetWithExpiry(ctx context.Context, key string, match *models.Match, persist bool, ttl time.Duration) error
}

// Notifier sends the Discord moderation notifications.
type Notifier interface {
	SendReport(target, reporter, reason, serverID string)
	SendPunishment(pun *models.Punishment)
	SendPunishmentReverted(pun *models.Punishment)
	SendNoteAdded(player *models.Player, note *models.StaffNote)
	SendNoteDeleted(player *models.Player, note *models.StaffNote)
}

type Config struct {
	AppConfig *config.Config
	Store     Store
	Players   PlayerCache
	Matches   MatchCache
	Redis     *redis.Client
	Boards    *leaderboard.BoardSet
	Webhooks  Notifier
	Logger    *zap.SugaredLogger
}

type Handler struct {
	cfg      *config.Config
	store    Store
	players  PlayerCache
	matches  MatchCache
	redis    *redis.Client
	boards   *leaderboard.BoardSet
	webhooks Notifier

	logger    *zap.SugaredLogger
	validator *validator.Validate
}

func New(cfg Config) *Handler {
	return &Handler{
		cfg:       cfg.AppConfig,
		store:     cfg.Store,
		players:   cfg.Players,
		matches:   cfg.Matches,
		redis:     cfg.Redis,
		boards:    cfg.Boards,
		webhooks:  cfg.Webhooks,
		logger:    cfg.Logger,
		validator: validator.New(),
	}
}

// Routes mounts the full HTTP surface. Everything under /mc requires the
// API token; status and metrics stay open.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Mars-Server-ID"},
		MaxAge:         300,
	}))

	r.Get("/status", h.Status)
	r.Get("/healthz", h.Status)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/mc", func(r chi.Router) {
		r.Use(h.AuthMiddleware)

		r.Route("/players", func(r chi.Router) {
			r.Post("/{playerId}/prelogin", h.PreLogin)
			r.Post("/{playerId}/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/{playerId}/profile", h.PlayerProfile)
			r.Get("/{playerId}/lookup", h.PlayerLookup)
			r.Get("/{playerId}/punishments", h.PlayerPunishments)
			r.Post("/{playerId}/punishments", h.IssuePunishment)
			r.Post("/{playerId}/notes", h.AddNote)
			r.Delete("/{playerId}/notes/{noteId}", h.DeleteNote)
			r.Post("/{playerId}/active_tag", h.SetActiveTag)
			r.Put("/{playerId}/tags/{tagId}", h.AddPlayerTag)
			r.Delete("/{playerId}/tags/{tagId}", h.RemovePlayerTag)
			r.Put("/{playerId}/ranks/{rankId}", h.AddPlayerRank)
			r.Delete("/{playerId}/ranks/{rankId}", h.RemovePlayerRank)
			r.Post("/{playerId}/active_join_sound", h.SetActiveJoinSound)
		})

		r.Route("/punishments", func(r chi.Router) {
			r.Get("/types", h.PunishmentTypes)
			r.Get("/{punishmentId}", h.GetPunishment)
			r.Post("/{punishmentId}/revert", h.RevertPunishment)
		})

		r.Route("/ranks", func(r chi.Router) {
			r.Get("/", h.ListRanks)
			r.Post("/", h.CreateRank)
			r.Put("/{rankId}", h.UpdateRank)
			r.Delete("/{rankId}", h.DeleteRank)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.ListTags)
			r.Post("/", h.CreateTag)
			r.Put("/{tagId}", h.UpdateTag)
			r.Delete("/{tagId}", h.DeleteTag)
		})

		r.Route("/maps", func(r chi.Router) {
			r.Get("/", h.ListMaps)
			r.Post("/", h.UpsertMaps)
			r.Get("/{mapId}", h.GetMap)
		})

		r.Get("/matches/{matchId}", h.GetMatch)
		r.Get("/leaderboards/{scoreType}/{period}", h.LeaderboardEntries)

		r.Route("/servers", func(r chi.Router) {
			r.Post("/{serverId}/startup", h.ServerStartup)
			r.Get("/{serverId}/status", h.ServerStatus)
			r.Get("/{serverId}/events", h.ServerEvents)
		})

		r.Get("/broadcasts", h.Broadcasts)
		r.Get("/levels/colors", h.LevelColors)
		r.Get("/perks/join_sounds", h.JoinSounds)
		r.Post("/reports", h.CreateReport)
	})

	return r
}
