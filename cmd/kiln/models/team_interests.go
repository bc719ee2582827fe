package models

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/kiln/pkg/db"
	"github.com/dmitrymomot/kiln/pkg/model"
)

// TeamInterestsTable is the table name.
const TeamInterestsTable = "team_interests"

// teamInterestColumns is the write whitelist. id is generated by the database.
var teamInterestColumns = []string{"description", "active", "deleted"}

var teamInterestSchemas = map[string]model.Schema{
	db.DriverPostgres: `CREATE TABLE team_interests (
		id BIGSERIAL PRIMARY KEY,
		description TEXT NOT NULL,
		active SMALLINT NOT NULL DEFAULT 1,
		deleted SMALLINT NOT NULL DEFAULT 0
	)`,
	db.DriverSQLite: `CREATE TABLE team_interests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
}

// DefaultInterests are inserted into an empty table by Seed.
var DefaultInterests = []string{"Motorsports", "Movies", "Music"}

// TeamInterests is the interests a team member can pick from.
type TeamInterests struct {
	*model.Table
	driver string
}

// NewTeamInterests binds the team_interests table to database.
func NewTeamInterests(database *db.Database, log *slog.Logger) *TeamInterests {
	return &TeamInterests{
		Table:  model.New(database.Conn, TeamInterestsTable, teamInterestColumns, model.WithLogger(log)),
		driver: database.Driver(),
	}
}

// Ensure creates the table when it is missing and seeds it when it is empty.
func (t *TeamInterests) Ensure(ctx context.Context) error {
	schema, ok := teamInterestSchemas[t.driver]
	if !ok {
		schema = teamInterestSchemas[db.DriverPostgres]
	}
	if _, err := t.Exists(ctx, true, schema); err != nil {
		return err
	}
	return t.Seed(ctx)
}

// Seed inserts DefaultInterests when the table has no rows.
func (t *TeamInterests) Seed(ctx context.Context) error {
	_, err := t.SelectOne(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrNoRows) {
		return err
	}

	rows := make([]model.Record, 0, len(DefaultInterests))
	for _, d := range DefaultInterests {
		rows = append(rows, model.Record{"description": d})
	}
	return t.InsertMany(ctx, rows)
}

// Active lists interests that are active and not deleted.
func (t *TeamInterests) Active(ctx context.Context) ([]model.Record, error) {
	return t.Select(ctx,
		model.Fields("id", "description"),
		model.Where(model.Record{"active": 1, "deleted": 0}),
	)
}

// Find returns one interest by id.
func (t *TeamInterests) Find(ctx context.Context, id int64) (model.Record, error) {
	return t.SelectOne(ctx, model.Where(model.Record{"id": id}))
}

// Create inserts an interest and returns its id.
func (t *TeamInterests) Create(ctx context.Context, rec model.Record) (any, error) {
	return t.InsertReturning(ctx, rec, "id")
}

// Modify updates the interest with id. A missing id yields an error matching
// model.ErrNoRows.
func (t *TeamInterests) Modify(ctx context.Context, id int64, rec model.Record) error {
	if _, err := t.Find(ctx, id); err != nil {
		return err
	}
	rec["id"] = id
	return t.Update(ctx, rec)
}

// SoftDelete flags the interest as deleted.
func (t *TeamInterests) SoftDelete(ctx context.Context, id int64) error {
	return t.Modify(ctx, id, model.Record{"deleted": 1})
}
