package database

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/jorgeberrex/mars-api/internal/models"
)

const databaseName = "mars-api"

// Database wraps the Mongo handle with typed collection accessors and the
// handful of cross-collection queries the API needs.
type Database struct {
	Mongo       *mongo.Database
	Players     *mongo.Collection
	Sessions    *mongo.Collection
	Punishments *mongo.Collection
	Ranks       *mongo.Collection
	Tags        *mongo.Collection
	Matches     *mongo.Collection
	Levels      *mongo.Collection
	Deaths      *mongo.Collection

	logger *zap.SugaredLogger
}

// Connect dials Mongo with small timeouts and pings before returning; a
// dead database at boot is a hard failure.
func Connect(ctx context.Context, url string, logger *zap.SugaredLogger) (*Database, error) {
	opts := options.Client().
		ApplyURI(url).
		SetMinPoolSize(2).
		SetMaxPoolSize(8).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	db := client.Database(databaseName)
	if err := db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("could not connect to the database, is it running: %w", err)
	}

	logger.Infow("Connected to database", "database", databaseName)
	return &Database{
		Mongo:       db,
		Players:     db.Collection("player"),
		Sessions:    db.Collection("session"),
		Punishments: db.Collection("punishment"),
		Ranks:       db.Collection("rank"),
		Tags:        db.Collection("tag"),
		Matches:     db.Collection("match"),
		Levels:      db.Collection("level"),
		Deaths:      db.Collection("death"),
		logger:      logger,
	}, nil
}

// Save upserts a whole document by its id.
func Save(ctx context.Context, coll *mongo.Collection, id string, doc any) error {
	opts := options.Update().SetUpsert(true)
	_, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": doc}, opts)
	return err
}

func InsertOne(ctx context.Context, coll *mongo.Collection, doc any) error {
	_, err := coll.InsertOne(ctx, doc)
	return err
}

func DeleteByID(ctx context.Context, coll *mongo.Collection, id string) error {
	_, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// FindByID returns (nil, nil) when no document matches.
func FindByID[T any](ctx context.Context, coll *mongo.Collection, id string) (*T, error) {
	return findOne[T](ctx, coll, bson.M{"_id": id})
}

// FindByName matches on the lowercased name index field.
func FindByName[T any](ctx context.Context, coll *mongo.Collection, name string) (*T, error) {
	return findOne[T](ctx, coll, bson.M{"nameLower": lower(name)})
}

// FindByIDOrName resolves either form of identifier in a single query.
func FindByIDOrName[T any](ctx context.Context, coll *mongo.Collection, text string) (*T, error) {
	return findOne[T](ctx, coll, bson.M{"$or": bson.A{
		bson.M{"nameLower": lower(text)},
		bson.M{"_id": text},
	}})
}

// All returns every document in the collection.
func All[T any](ctx context.Context, coll *mongo.Collection) ([]T, error) {
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var doc T
	err := coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func findMany[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsurePlayerNameUniqueness renames any other account squatting on the
// name; the original owner reclaims it on their next login.
func (d *Database) EnsurePlayerNameUniqueness(ctx context.Context, name, keepID string) error {
	tempName := fmt.Sprintf(">WZPlayer%d", rand.Intn(1001))
	_, err := d.Players.UpdateMany(ctx, bson.M{
		"nameLower": lower(name),
		"_id":       bson.M{"$ne": keepID},
	}, bson.M{
		"$set": bson.M{"name": tempName, "nameLower": tempName},
	})
	return err
}

func (d *Database) PlayerPunishments(ctx context.Context, player *models.Player) ([]models.Punishment, error) {
	return findMany[models.Punishment](ctx, d.Punishments, bson.M{"target.id": player.ID})
}

// ActivePlayerPunishments filters to still-binding punishments, oldest first.
func (d *Database) ActivePlayerPunishments(ctx context.Context, player *models.Player) ([]models.Punishment, error) {
	puns, err := d.PlayerPunishments(ctx, player)
	if err != nil {
		return nil, err
	}
	active := puns[:0]
	for i := range puns {
		if puns[i].IsActive() {
			active = append(active, puns[i])
		}
	}
	for i := 1; i < len(active); i++ {
		for j := i; j > 0 && active[j].IssuedAt < active[j-1].IssuedAt; j-- {
			active[j], active[j-1] = active[j-1], active[j]
		}
	}
	return active, nil
}

// IPBans returns active IP bans covering the given (hashed) address.
func (d *Database) IPBans(ctx context.Context, ip string) ([]models.Punishment, error) {
	puns, err := findMany[models.Punishment](ctx, d.Punishments, bson.M{
		"targetIps":   ip,
		"action.kind": models.PunishmentKindIPBan,
	})
	if err != nil {
		return nil, err
	}
	active := puns[:0]
	for i := range puns {
		if puns[i].IsActive() {
			active = append(active, puns[i])
		}
	}
	return active, nil
}

func (d *Database) SessionForPlayer(ctx context.Context, player *models.Player, sessionID string) (*models.Session, error) {
	return findOne[models.Session](ctx, d.Sessions, bson.M{"_id": sessionID, "player.id": player.ID})
}

// OpenServerSessions finds sessions a crashed server never closed.
func (d *Database) OpenServerSessions(ctx context.Context, serverID string) ([]models.Session, error) {
	return findMany[models.Session](ctx, d.Sessions, bson.M{"serverId": serverID, "endedAt": nil})
}

// AltsForPlayer finds other accounts sharing any of the player's addresses.
func (d *Database) AltsForPlayer(ctx context.Context, player *models.Player) ([]models.Player, error) {
	if len(player.IPs) == 0 {
		return nil, nil
	}
	return findMany[models.Player](ctx, d.Players, bson.M{
		"ips": bson.M{"$in": player.IPs},
		"_id": bson.M{"$ne": player.ID},
	})
}

// DefaultRanks are applied to every player on login.
func (d *Database) DefaultRanks(ctx context.Context) ([]models.Rank, error) {
	return findMany[models.Rank](ctx, d.Ranks, bson.M{"applyOnJoin": true})
}

// PlayersWithRank lists players referencing a rank, for cascade deletes.
func (d *Database) PlayersWithRank(ctx context.Context, rankID string) ([]models.Player, error) {
	return findMany[models.Player](ctx, d.Players, bson.M{"rankIds": rankID})
}

// PlayersWithTag lists players referencing a tag, for cascade deletes.
func (d *Database) PlayersWithTag(ctx context.Context, tagID string) ([]models.Player, error) {
	return findMany[models.Player](ctx, d.Players, bson.M{"tagIds": tagID})
}

// InsertDeaths bulk-inserts death documents; used by the async worker so
// per-kill writes batch into one round trip.
func (d *Database) InsertDeaths(ctx context.Context, deaths []models.Death) error {
	if len(deaths) == 0 {
		return nil
	}
	docs := make([]any, len(deaths))
	for i := range deaths {
		docs[i] = deaths[i]
	}
	_, err := d.Deaths.InsertMany(ctx, docs)
	return err
}

func lower(s string) string {
	return strings.ToLower(s)
}
