package forms

import (
	"context"
	"errors"
	"log"
	"regexp"
	"time"

	"Backend-Formcraft/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	FormsCollectionName     = "forms"
	ResponsesCollectionName = "form_responses"
)

// MongoStore stores forms and responses in two collections.
type MongoStore struct {
	forms     *mongo.Collection
	responses *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		forms:     db.Collection(FormsCollectionName),
		responses: db.Collection(ResponsesCollectionName),
	}
}

// EnsureIndexes creates the indexes the list queries rely on.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.forms.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "updatedAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return err
	}
	_, err = s.responses.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "formId", Value: 1}, {Key: "submittedAt", Value: -1}},
	})
	return err
}

// formRow keeps schema raw so a corrupted schema degrades to the empty
// schema instead of failing the whole read.
type formRow struct {
	ID          string            `bson:"_id"`
	OwnerID     string            `bson:"ownerId"`
	Title       string            `bson:"title"`
	Description string            `bson:"description"`
	Status      models.FormStatus `bson:"status"`
	Schema      bson.RawValue     `bson:"schema"`
	CreatedAt   time.Time         `bson:"createdAt"`
	UpdatedAt   time.Time         `bson:"updatedAt"`
}

func (r formRow) record() models.FormRecord {
	schema := models.DefaultFormSchema()
	var decoded models.FormSchema
	if err := r.Schema.Unmarshal(&decoded); err == nil {
		schema = models.SanitizeFormSchema(decoded)
	} else if r.Schema.Type != 0 {
		log.Printf("⚠️ [MongoStore] form %s has an unreadable schema, using empty schema: %v", r.ID, err)
	}
	return models.FormRecord{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Schema:      schema,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type responseRow struct {
	ID          string        `bson:"_id"`
	FormID      string        `bson:"formId"`
	Answers     bson.RawValue `bson:"answers"`
	SubmittedAt time.Time     `bson:"submittedAt"`
	IP          *string       `bson:"ip,omitempty"`
	UserAgent   *string       `bson:"userAgent,omitempty"`
}

func (r responseRow) record() models.FormResponse {
	answers := models.AnswerMap{}
	var decoded models.AnswerMap
	if err := r.Answers.Unmarshal(&decoded); err == nil && decoded != nil {
		answers = decoded
	}
	return models.FormResponse{
		ID:          r.ID,
		FormID:      r.FormID,
		Answers:     answers,
		SubmittedAt: r.SubmittedAt,
		IP:          r.IP,
		UserAgent:   r.UserAgent,
	}
}

func (s *MongoStore) ListFormsByOwner(ctx context.Context, ownerID string, params models.FormListParams) ([]models.FormRecord, error) {
	filter := bson.M{"ownerId": ownerID}
	if params.Status != "" {
		filter["status"] = params.Status
	}
	if params.Search != "" {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(params.Search), "$options": "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	if params.Limit > 0 {
		opts.SetLimit(int64(params.Limit))
	}

	cursor, err := s.forms.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []formRow
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make([]models.FormRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.record())
	}
	return out, nil
}

func (s *MongoStore) GetForm(ctx context.Context, id string) (*models.FormRecord, error) {
	var row formRow
	err := s.forms.FindOne(ctx, bson.M{"_id": id}).Decode(&row)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rec := row.record()
	return &rec, nil
}

func (s *MongoStore) InsertForm(ctx context.Context, form *models.FormRecord) error {
	_, err := s.forms.InsertOne(ctx, form)
	return err
}

func (s *MongoStore) UpdateForm(ctx context.Context, id, ownerID string, upd models.FormUpdate, expectedUpdatedAt *time.Time) (*models.FormRecord, error) {
	set := bson.M{"updatedAt": upd.UpdatedAt}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Schema != nil {
		set["schema"] = *upd.Schema
	}

	filter := bson.M{"_id": id, "ownerId": ownerID}
	if expectedUpdatedAt != nil {
		filter["updatedAt"] = *expectedUpdatedAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var row formRow
	err := s.forms.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&row)
	if err == nil {
		rec := row.record()
		return &rec, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if expectedUpdatedAt == nil {
		return nil, ErrNotFound
	}
	// tell a stale token apart from a missing form
	n, cerr := s.forms.CountDocuments(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if cerr != nil {
		return nil, cerr
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrConflict
}

func (s *MongoStore) DeleteForm(ctx context.Context, id, ownerID string) error {
	res, err := s.forms.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) InsertResponse(ctx context.Context, resp *models.FormResponse) error {
	_, err := s.responses.InsertOne(ctx, resp)
	return err
}

func (s *MongoStore) ListResponses(ctx context.Context, formID string, limit int) ([]models.FormResponse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := s.responses.Find(ctx, bson.M{"formId": formID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []responseRow
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make([]models.FormResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.record())
	}
	return out, nil
}

func (s *MongoStore) CountResponses(ctx context.Context, formID string) (int64, error) {
	return s.responses.CountDocuments(ctx, bson.M{"formId": formID})
}

func (s *MongoStore) DeleteResponsesByForm(ctx context.Context, formID string) error {
	_, err := s.responses.DeleteMany(ctx, bson.M{"formId": formID})
	return err
}
