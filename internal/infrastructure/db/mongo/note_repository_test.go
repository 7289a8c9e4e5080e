package mongo

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/notekeeper/notes-api/internal/core/ports"
)

func boolPtr(b bool) *bool { return &b }

func searchClauses(t *testing.T, query bson.M) (title, content primitive.Regex) {
	t.Helper()
	or, ok := query["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected two-clause $or, got %+v", query["$or"])
	}
	title, ok = or[0].(bson.M)["title"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex title clause, got %+v", or[0])
	}
	content, ok = or[1].(bson.M)["content"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex content clause, got %+v", or[1])
	}
	return title, content
}

func TestListQuery_OwnerOnly(t *testing.T) {
	query := listQuery(ports.ListNotesFilter{Email: "a@x.com"})

	want := bson.M{"email": "a@x.com"}
	if !reflect.DeepEqual(query, want) {
		t.Fatalf("expected owner-only query, got %+v", query)
	}
}

func TestListQuery_StatusFlags(t *testing.T) {
	query := listQuery(ports.ListNotesFilter{
		Email:      "a@x.com",
		IsArchived: boolPtr(false),
		IsTrashed:  boolPtr(true),
	})

	if query["is_archived"] != false {
		t.Fatalf("expected is_archived=false, got %v", query["is_archived"])
	}
	if query["is_trashed"] != true {
		t.Fatalf("expected is_trashed=true, got %v", query["is_trashed"])
	}
}

func TestListQuery_SearchCaseInsensitive(t *testing.T) {
	query := listQuery(ports.ListNotesFilter{Email: "a@x.com", Search: "MiLk"})

	title, content := searchClauses(t, query)
	if title.Options != "i" || content.Options != "i" {
		t.Fatalf("expected case-insensitive match, got options %q / %q", title.Options, content.Options)
	}
	if title.Pattern != "MiLk" || content.Pattern != "MiLk" {
		t.Fatalf("unexpected patterns: %q / %q", title.Pattern, content.Pattern)
	}
}

func TestListQuery_SearchQuotesMetacharacters(t *testing.T) {
	query := listQuery(ports.ListNotesFilter{Email: "a@x.com", Search: "a.*b"})

	title, content := searchClauses(t, query)
	want := `a\.\*b`
	if title.Pattern != want || content.Pattern != want {
		t.Fatalf("expected quoted pattern %q, got %q / %q", want, title.Pattern, content.Pattern)
	}
}

func TestListFindOptions_InsertionOrder(t *testing.T) {
	opts := listFindOptions()

	want := bson.D{{Key: "_id", Value: 1}}
	if !reflect.DeepEqual(opts.Sort, want) {
		t.Fatalf("expected ascending _id sort, got %+v", opts.Sort)
	}
}
