package database

import (
	"context"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// Typed accessors over the generic helpers. The HTTP layer consumes these
// through an interface so handler tests can run against hand mocks.

func (d *Database) PlayerByID(ctx context.Context, id string) (*models.Player, error) {
	return FindByID[models.Player](ctx, d.Players, id)
}

func (d *Database) PlayerByIDOrName(ctx context.Context, text string) (*models.Player, error) {
	return FindByIDOrName[models.Player](ctx, d.Players, text)
}

func (d *Database) SavePlayer(ctx context.Context, player *models.Player) error {
	return Save(ctx, d.Players, player.ID, player)
}

func (d *Database) AllPlayers(ctx context.Context) ([]models.Player, error) {
	return All[models.Player](ctx, d.Players)
}

func (d *Database) InsertSession(ctx context.Context, session *models.Session) error {
	return InsertOne(ctx, d.Sessions, session)
}

func (d *Database) SaveSession(ctx context.Context, session *models.Session) error {
	return Save(ctx, d.Sessions, session.ID, session)
}

func (d *Database) InsertPunishment(ctx context.Context, pun *models.Punishment) error {
	return InsertOne(ctx, d.Punishments, pun)
}

func (d *Database) PunishmentByID(ctx context.Context, id string) (*models.Punishment, error) {
	return FindByID[models.Punishment](ctx, d.Punishments, id)
}

func (d *Database) SavePunishment(ctx context.Context, pun *models.Punishment) error {
	return Save(ctx, d.Punishments, pun.ID, pun)
}

func (d *Database) AllRanks(ctx context.Context) ([]models.Rank, error) {
	return All[models.Rank](ctx, d.Ranks)
}

func (d *Database) RankByID(ctx context.Context, id string) (*models.Rank, error) {
	return FindByID[models.Rank](ctx, d.Ranks, id)
}

func (d *Database) RankByName(ctx context.Context, name string) (*models.Rank, error) {
	return FindByName[models.Rank](ctx, d.Ranks, name)
}

func (d *Database) SaveRank(ctx context.Context, rank *models.Rank) error {
	return Save(ctx, d.Ranks, rank.ID, rank)
}

func (d *Database) DeleteRank(ctx context.Context, id string) error {
	return DeleteByID(ctx, d.Ranks, id)
}

func (d *Database) AllTags(ctx context.Context) ([]models.Tag, error) {
	return All[models.Tag](ctx, d.Tags)
}

func (d *Database) TagByID(ctx context.Context, id string) (*models.Tag, error) {
	return FindByID[models.Tag](ctx, d.Tags, id)
}

func (d *Database) TagByName(ctx context.Context, name string) (*models.Tag, error) {
	return FindByName[models.Tag](ctx, d.Tags, name)
}

func (d *Database) SaveTag(ctx context.Context, tag *models.Tag) error {
	return Save(ctx, d.Tags, tag.ID, tag)
}

func (d *Database) DeleteTag(ctx context.Context, id string) error {
	return DeleteByID(ctx, d.Tags, id)
}

func (d *Database) AllLevels(ctx context.Context) ([]models.Level, error) {
	return All[models.Level](ctx, d.Levels)
}

func (d *Database) LevelByIDOrName(ctx context.Context, text string) (*models.Level, error) {
	return FindByIDOrName[models.Level](ctx, d.Levels, text)
}

func (d *Database) LevelByName(ctx context.Context, name string) (*models.Level, error) {
	return FindByName[models.Level](ctx, d.Levels, name)
}

func (d *Database) SaveLevel(ctx context.Context, level *models.Level) error {
	return Save(ctx, d.Levels, level.ID, level)
}
