package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/notekeeper/notes-api/internal/core/domain"
	"github.com/notekeeper/notes-api/internal/core/ports"
)

const collectionNotes = "notes"

type NoteRepository struct {
	coll *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{coll: db.Collection(collectionNotes)}
}

type mongoNote struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Email      string             `bson:"email"`
	Title      string             `bson:"title"`
	Content    string             `bson:"content"`
	IsTodo     bool               `bson:"is_todo"`
	Todos      []domain.TodoItem  `bson:"todos"`
	IsArchived bool               `bson:"is_archived"`
	IsTrashed  bool               `bson:"is_trashed"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func toDomain(mn *mongoNote) *domain.Note {
	todos := mn.Todos
	if todos == nil {
		todos = []domain.TodoItem{}
	}
	return &domain.Note{
		ID:         mn.ID.Hex(),
		Email:      mn.Email,
		Title:      mn.Title,
		Content:    mn.Content,
		IsTodo:     mn.IsTodo,
		Todos:      todos,
		IsArchived: mn.IsArchived,
		IsTrashed:  mn.IsTrashed,
		CreatedAt:  mn.CreatedAt.UTC(),
		UpdatedAt:  mn.UpdatedAt.UTC(),
	}
}

// ownedFilter builds the {_id, email} filter every single-note operation
// uses. A malformed id cannot match anything, so it reports not found.
func ownedFilter(email, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}
	return bson.M{"_id": oid, "email": email}, nil
}

// Create inserts a new note document and returns its generated id.
func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoNote{
		Email:      note.Email,
		Title:      note.Title,
		Content:    note.Content,
		IsTodo:     note.IsTodo,
		Todos:      note.Todos,
		IsArchived: note.IsArchived,
		IsTrashed:  note.IsTrashed,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert note: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert note: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *NoteRepository) FindByID(ctx context.Context, email, id string) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(email, id)
	if err != nil {
		return nil, err
	}

	var mn mongoNote
	if err := r.coll.FindOne(ctx, filter).Decode(&mn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return toDomain(&mn), nil
}

// listQuery builds the filter document for List. The search term matches
// title or content case-insensitively; it is quoted so user input cannot
// inject regex syntax.
func listQuery(filter ports.ListNotesFilter) bson.M {
	query := bson.M{"email": filter.Email}
	if filter.IsArchived != nil {
		query["is_archived"] = *filter.IsArchived
	}
	if filter.IsTrashed != nil {
		query["is_trashed"] = *filter.IsTrashed
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"content": pattern},
		}
	}
	return query
}

// listFindOptions pins results to insertion (_id) order. Natural order is
// not stable once updates rewrite documents.
func listFindOptions() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
}

// List returns the owner's notes matching the status filters, in insertion
// (_id) order.
func (r *NoteRepository) List(ctx context.Context, filter ports.ListNotesFilter) ([]*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, listQuery(filter), listFindOptions())
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cur.Close(ctx)

	notes := []*domain.Note{}
	for cur.Next(ctx) {
		var mn mongoNote
		if err := cur.Decode(&mn); err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		notes = append(notes, toDomain(&mn))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// UpdateContent overwrites title and content in place. Status flags and
// the checklist are deliberately left untouched.
func (r *NoteRepository) UpdateContent(ctx context.Context, email, id, title, content string) error {
	update := bson.M{"$set": bson.M{
		"title":      title,
		"content":    content,
		"updated_at": time.Now().UTC(),
	}}
	return r.updateOwned(ctx, email, id, update)
}

func (r *NoteRepository) SetArchived(ctx context.Context, email, id string, archived bool) error {
	return r.setFlag(ctx, email, id, "is_archived", archived)
}

func (r *NoteRepository) SetTrashed(ctx context.Context, email, id string, trashed bool) error {
	return r.setFlag(ctx, email, id, "is_trashed", trashed)
}

func (r *NoteRepository) setFlag(ctx context.Context, email, id, field string, value bool) error {
	update := bson.M{"$set": bson.M{
		field:        value,
		"updated_at": time.Now().UTC(),
	}}
	return r.updateOwned(ctx, email, id, update)
}

func (r *NoteRepository) updateOwned(ctx context.Context, email, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(email, id)
	if err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// Delete removes a note permanently. The filter insists on is_trashed, so
// deleting an active or merely archived note reports not found.
func (r *NoteRepository) Delete(ctx context.Context, email, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(email, id)
	if err != nil {
		return err
	}
	filter["is_trashed"] = true

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// EnsureIndexes creates the owner index used by every list query.
func (r *NoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	})
	return err
}
