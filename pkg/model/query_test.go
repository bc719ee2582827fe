package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kiln/pkg/model"
)

func TestQueryBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		query  model.Query
		sql    string
		params []string
	}{
		{
			name:  "select all",
			query: model.Query{Action: model.ActionSelect, Table: "member"},
			sql:   `SELECT * FROM "member"`,
		},
		{
			name: "select fields with where and limit",
			query: model.Query{
				Action:  model.ActionSelect,
				Table:   "member",
				Columns: []string{"id", "email_address"},
				Where:   []string{"active", "deleted"},
				Limit:   1,
			},
			sql:    `SELECT "id", "email_address" FROM "member" WHERE "active" = @active AND "deleted" = @deleted LIMIT 1`,
			params: []string{"active", "deleted"},
		},
		{
			name:  "count",
			query: model.Query{Action: model.ActionCount, Table: "member"},
			sql:   `SELECT COUNT(1) FROM "member"`,
		},
		{
			name: "insert with returning",
			query: model.Query{
				Action:    model.ActionInsert,
				Table:     "invite_codes",
				Columns:   []string{"user_id", "invite_code"},
				Returning: []string{"id"},
			},
			sql:    `INSERT INTO "invite_codes" ("user_id", "invite_code") VALUES (@user_id, @invite_code) RETURNING "id"`,
			params: []string{"user_id", "invite_code"},
		},
		{
			name: "update reuses a parameter shared by set and where",
			query: model.Query{
				Action:  model.ActionUpdate,
				Table:   "member",
				Columns: []string{"id", "active"},
				Where:   []string{"id"},
			},
			sql:    `UPDATE "member" SET "id" = @id, "active" = @active WHERE "id" = @id`,
			params: []string{"id", "active"},
		},
		{
			name:   "delete",
			query:  model.Query{Action: model.ActionDelete, Table: "member", Where: []string{"id"}},
			sql:    `DELETE FROM "member" WHERE "id" = @id`,
			params: []string{"id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stmt, err := tt.query.Build()
			require.NoError(t, err)
			require.Equal(t, tt.sql, stmt.SQL)
			require.Equal(t, tt.params, stmt.Params)
		})
	}
}

func TestQueryBuildRejects(t *testing.T) {
	t.Parallel()

	t.Run("injected table name", func(t *testing.T) {
		t.Parallel()

		_, err := model.Query{Action: model.ActionSelect, Table: `member"; DROP TABLE member; --`}.Build()
		require.ErrorIs(t, err, model.ErrInvalidIdentifier)
	})

	t.Run("injected column name", func(t *testing.T) {
		t.Parallel()

		_, err := model.Query{
			Action:  model.ActionSelect,
			Table:   "member",
			Columns: []string{"id", "1=1 OR id"},
		}.Build()
		require.ErrorIs(t, err, model.ErrInvalidIdentifier)
	})

	t.Run("star mixed with columns", func(t *testing.T) {
		t.Parallel()

		_, err := model.Query{
			Action:  model.ActionSelect,
			Table:   "member",
			Columns: []string{"*", "id"},
		}.Build()
		require.ErrorIs(t, err, model.ErrInvalidIdentifier)
	})

	t.Run("insert without columns", func(t *testing.T) {
		t.Parallel()

		_, err := model.Query{Action: model.ActionInsert, Table: "member"}.Build()
		require.ErrorIs(t, err, model.ErrNoColumns)
	})

	t.Run("update without where", func(t *testing.T) {
		t.Parallel()

		_, err := model.Query{Action: model.ActionUpdate, Table: "member", Columns: []string{"active"}}.Build()
		require.ErrorIs(t, err, model.ErrNoPredicates)
	})

	t.Run("delete without where", func(t *testing.T) {
		t.Parallel()

		_, err := model.Query{Action: model.ActionDelete, Table: "member"}.Build()
		require.ErrorIs(t, err, model.ErrNoPredicates)
	})

	t.Run("unknown action", func(t *testing.T) {
		t.Parallel()

		_, err := model.Query{Action: model.Action(42), Table: "member"}.Build()
		require.ErrorIs(t, err, model.ErrUnknownAction)
	})
}

func TestStatementBind(t *testing.T) {
	t.Parallel()

	stmt := model.Statement{SQL: "ignored", Params: []string{"a", "b"}}

	t.Run("ignores extra keys", func(t *testing.T) {
		t.Parallel()

		params, err := stmt.Bind(model.Record{"a": 1, "b": nil, "c": 3})
		require.NoError(t, err)
		require.Equal(t, model.Params{"a": 1, "b": nil}, params)
	})

	t.Run("fails on missing key", func(t *testing.T) {
		t.Parallel()

		_, err := stmt.Bind(model.Record{"a": 1})
		require.ErrorIs(t, err, model.ErrMissingValue)
	})
}

func TestQuoteIdentifier(t *testing.T) {
	t.Parallel()

	require.Equal(t, `"member"`, model.QuoteIdentifier("member"))
	require.Equal(t, `"a""b"`, model.QuoteIdentifier(`a"b`))
}
