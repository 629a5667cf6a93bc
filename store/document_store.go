package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"feedback-portal-backend/model"
)

// feedbackDoc is the document layout of a feedback record.
type feedbackDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     *string            `bson:"email"`
	Phone     *string            `bson:"phone"`
	Category  string             `bson:"category"`
	Rating    int                `bson:"rating"`
	Message   string             `bson:"message"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type adminDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// DocumentStore implements Store on MongoDB. Only the equality predicates
// are pushed into the engine's native filter; substring search, ordering,
// pagination, grouping and averaging are local reductions over the fetched
// superset, so both store variants expose one semantic.
type DocumentStore struct {
	client   *mongo.Client
	feedback *mongo.Collection
	admins   *mongo.Collection
}

// NewDocumentStore wraps a connected client. Collection names mirror the
// relational tables.
func NewDocumentStore(client *mongo.Client, database string) *DocumentStore {
	db := client.Database(database)
	return &DocumentStore{
		client:   client,
		feedback: db.Collection("feedback"),
		admins:   db.Collection("admins"),
	}
}

func (s *DocumentStore) Insert(ctx context.Context, rec model.Feedback) (string, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := feedbackDoc{
		Name:      rec.Name,
		Email:     rec.Email,
		Phone:     rec.Phone,
		Category:  rec.Category,
		Rating:    rec.Rating,
		Message:   rec.Message,
		Status:    rec.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := s.feedback.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert feedback: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert feedback: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *DocumentStore) Get(ctx context.Context, id string) (*model.Feedback, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc feedbackDoc
	err = s.feedback.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	rec := docToModel(doc)
	return &rec, nil
}

func (s *DocumentStore) Update(ctx context.Context, id string, fields UpdateFields) (*model.Feedback, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	set := bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)}
	if fields.Name != nil {
		set["name"] = *fields.Name
	}
	if fields.Email != nil {
		set["email"] = nullable(*fields.Email)
	}
	if fields.Phone != nil {
		set["phone"] = nullable(*fields.Phone)
	}
	if fields.Category != nil {
		set["category"] = *fields.Category
	}
	if fields.Rating != nil {
		set["rating"] = *fields.Rating
	}
	if fields.Message != nil {
		set["message"] = *fields.Message
	}
	if fields.Status != nil {
		set["status"] = *fields.Status
	}

	var doc feedbackDoc
	err = s.feedback.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update feedback: %w", err)
	}
	rec := docToModel(doc)
	return &rec, nil
}

func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.feedback.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DocumentStore) List(ctx context.Context, f Filter, offset, limit int) ([]model.Feedback, error) {
	docs, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	docs = pageWindow(docs, offset, limit)
	out := make([]model.Feedback, 0, len(docs))
	for _, d := range docs {
		out = append(out, docToModel(d))
	}
	return out, nil
}

func (s *DocumentStore) Count(ctx context.Context, f Filter) (int64, error) {
	docs, err := s.fetch(ctx, f)
	if err != nil {
		return 0, err
	}
	return int64(len(docs)), nil
}

func (s *DocumentStore) GroupCount(ctx context.Context, field string) (map[string]int64, error) {
	if field != "status" && field != "category" && field != "rating" {
		return nil, ErrInvalidField
	}
	docs, err := s.fetch(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	return groupDocs(docs, field), nil
}

func (s *DocumentStore) Average(ctx context.Context, field string) (float64, bool, error) {
	if field != "rating" {
		return 0, false, ErrInvalidField
	}
	docs, err := s.fetch(ctx, Filter{})
	if err != nil {
		return 0, false, err
	}
	avg, ok := averageRating(docs)
	return avg, ok, nil
}

func (s *DocumentStore) CountByDay(ctx context.Context, since time.Time) ([]DayCount, error) {
	docs, err := s.fetch(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	return countDocsByDay(docs, since), nil
}

func (s *DocumentStore) FindAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var doc adminDoc
	err := s.admins.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &model.Admin{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    normalizeTime(doc.CreatedAt),
	}, nil
}

func (s *DocumentStore) SeedAdmin(ctx context.Context, username, passwordHash string) error {
	if _, err := s.admins.DeleteOne(ctx, bson.M{"username": "admin"}); err != nil {
		return fmt.Errorf("remove legacy admin: %w", err)
	}
	_, err := s.admins.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{
			"$set":         bson.M{"username": username, "password_hash": passwordHash},
			"$setOnInsert": bson.M{"created_at": time.Now().UTC()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *DocumentStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// fetch pulls the equality-filtered superset from the engine and finishes
// the filter locally: substring search, then the canonical descending order.
func (s *DocumentStore) fetch(ctx context.Context, f Filter) ([]feedbackDoc, error) {
	native := bson.M{}
	if f.Status != "" {
		native["status"] = f.Status
	}
	if f.Category != "" {
		native["category"] = f.Category
	}
	cur, err := s.feedback.Find(ctx, native)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	var docs []feedbackDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}
	docs = filterSearch(docs, f.Search)
	sortDocsDesc(docs)
	return docs, nil
}

// matchesSearch applies the contains predicate across name, message and
// email, folding case with asciiLower so the result agrees with the
// relational variant's LOWER() LIKE. A null email never matches.
func matchesSearch(d feedbackDoc, q string) bool {
	if q == "" {
		return true
	}
	q = asciiLower(q)
	if strings.Contains(asciiLower(d.Name), q) {
		return true
	}
	if strings.Contains(asciiLower(d.Message), q) {
		return true
	}
	if d.Email != nil && strings.Contains(asciiLower(*d.Email), q) {
		return true
	}
	return false
}

func filterSearch(docs []feedbackDoc, q string) []feedbackDoc {
	if q == "" {
		return docs
	}
	out := docs[:0]
	for _, d := range docs {
		if matchesSearch(d, q) {
			out = append(out, d)
		}
	}
	return out
}

// sortDocsDesc orders by created_at descending with an id-descending
// tiebreak, matching the relational ORDER BY.
func sortDocsDesc(docs []feedbackDoc) {
	sort.SliceStable(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		}
		return docs[i].ID.Hex() > docs[j].ID.Hex()
	})
}

// pageWindow slices the offset/limit window out of the ordered set. A
// limit <= 0 means everything from offset onward.
func pageWindow(docs []feedbackDoc, offset, limit int) []feedbackDoc {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(docs) {
		return nil
	}
	docs = docs[offset:]
	if limit > 0 && limit < len(docs) {
		docs = docs[:limit]
	}
	return docs
}

func groupDocs(docs []feedbackDoc, field string) map[string]int64 {
	out := make(map[string]int64)
	for _, d := range docs {
		switch field {
		case "status":
			out[d.Status]++
		case "category":
			out[d.Category]++
		case "rating":
			out[strconv.Itoa(d.Rating)]++
		}
	}
	return out
}

func averageRating(docs []feedbackDoc) (float64, bool) {
	if len(docs) == 0 {
		return 0, false
	}
	var sum int
	for _, d := range docs {
		sum += d.Rating
	}
	return float64(sum) / float64(len(docs)), true
}

func countDocsByDay(docs []feedbackDoc, since time.Time) []DayCount {
	byDay := make(map[string]int64)
	for _, d := range docs {
		if d.CreatedAt.Before(since) {
			continue
		}
		byDay[d.CreatedAt.UTC().Format("2006-01-02")]++
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	out := make([]DayCount, 0, len(days))
	for _, day := range days {
		out = append(out, DayCount{Date: day, Count: byDay[day]})
	}
	return out
}

func docToModel(d feedbackDoc) model.Feedback {
	return model.Feedback{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Category:  d.Category,
		Rating:    d.Rating,
		Message:   d.Message,
		Status:    d.Status,
		CreatedAt: normalizeTime(d.CreatedAt),
		UpdatedAt: normalizeTime(d.UpdatedAt),
	}
}
