package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "filled_slots").
		From("contests").
		Where(Eq("match_id", "m1"), In("status", Values([]string{"upcoming", "live"})), IsNull("deleted_at")).
		OrderBy("filled_slots DESC", "ordinal").
		Limit(10).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, filled_slots FROM contests WHERE match_id = $1 AND status IN ($2, $3) AND deleted_at IS NULL ORDER BY filled_slots DESC, ordinal LIMIT 10 FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !reflect.DeepEqual(args, []any{"m1", "upcoming", "live"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("teams").Where(In("public_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM teams WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query=%q args=%v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("participations").
		Columns("public_id", "user_id").
		Values("p1", "u1").
		Suffix("ON CONFLICT (user_id, contest_public_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO participations (public_id, user_id) VALUES ($1, $2) ON CONFLICT (user_id, contest_public_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "p1" || args[1] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_ConditionalAdmit(t *testing.T) {
	query, args, err := Update("contests").
		SetExpr("filled_slots", "filled_slots + 1").
		SetExpr("participants", "array_append(participants, ?)", "u1").
		Where(Eq("public_id", "c1"), Expr("filled_slots < capacity"), Expr("NOT (? = ANY(participants))", "u1")).
		Returning("filled_slots").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE contests SET filled_slots = filled_slots + 1, participants = array_append(participants, $1) WHERE public_id = $2 AND filled_slots < capacity AND NOT ($3 = ANY(participants)) RETURNING filled_slots"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !reflect.DeepEqual(args, []any{"u1", "c1", "u1"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID      string `db:"public_id"`
		Points  int    `db:"points"`
		Skipped string `db:"-"`
		hidden  string
	}

	query, args, err := InsertModel("outcomes", row{ID: "o1", Points: 10, hidden: "x"}, "RETURNING id")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}
	if query != "INSERT INTO outcomes (public_id, points) VALUES ($1, $2) RETURNING id" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		PlayerID string  `db:"player_id"`
		Points   float64 `db:"points"`
	}

	query, args, err := InsertModels("player_performances", []row{{"p1", 12}, {"p2", 4.5}}, "")
	if err != nil {
		t.Fatalf("insert models: %v", err)
	}
	if query != "INSERT INTO player_performances (player_id, points) VALUES ($1, $2), ($3, $4)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 4 || args[2] != "p2" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[row]("player_performances", nil, ""); err == nil {
		t.Fatalf("expected error for empty rows")
	}
}
