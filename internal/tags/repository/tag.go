package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	tagerrors "budgetly/internal/tags/errors"
	"budgetly/pkg/config"
	mongotx "budgetly/pkg/db/mongo"
	"budgetly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Tags"
)

type TagRepository interface {
	Create(ctx context.Context, t *model.Tag) error
	FindByID(ctx context.Context, id string) (*model.Tag, error)
	FindByTag(ctx context.Context, tag string) (*model.Tag, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Tag, error)
	Update(ctx context.Context, id string, t *model.Tag) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoTagRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoTagRepository(cfg *config.Config, client *mongo.Client) TagRepository {
	db := client.Database(cfg.MongoDatabaseName)
	return &mongoTagRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(client),
	}
}

func (r *mongoTagRepository) Create(ctx context.Context, t *model.Tag) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	t.CreatedAt = now
	t.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, t)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid.Hex()
	}
	return nil
}

func (r *mongoTagRepository) FindByID(ctx context.Context, id string) (*model.Tag, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", tagerrors.ErrInvalidID, id)
	}

	var t model.Tag
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", tagerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return &t, nil
}

func (r *mongoTagRepository) FindByTag(ctx context.Context, tag string) (*model.Tag, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var t model.Tag
	if err := r.collection.FindOne(ctx, bson.M{"tag": tag}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", tagerrors.ErrNotFound, tag)
		}
		return nil, fmt.Errorf("failed to find tag by name: %w", err)
	}
	return &t, nil
}

func (r *mongoTagRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Tag, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "tag", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer cursor.Close(ctx)

	tags := []*model.Tag{}
	if err = cursor.All(ctx, &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}

// Update replaces the stored tag fields. Nil optional fields are unset so a
// cleared location does not linger in the document.
func (r *mongoTagRepository) Update(ctx context.Context, id string, t *model.Tag) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", tagerrors.ErrInvalidID, id)
	}

	t.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	set := bson.M{
		"tag":        t.Tag,
		"updated_at": t.UpdatedAt,
	}
	unset := bson.M{}
	optional := map[string]any{
		"date":        t.Date,
		"description": t.Description,
		"location":    t.Location,
	}
	for key, v := range optional {
		if isNil(v) {
			unset[key] = ""
		} else {
			set[key] = v
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", tagerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoTagRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", tagerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", tagerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoTagRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count tags: %w", err)
	}
	return count, nil
}

func (r *mongoTagRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func isNil(v any) bool {
	switch p := v.(type) {
	case *time.Time:
		return p == nil
	case *string:
		return p == nil
	case *model.Location:
		return p == nil
	}
	return v == nil
}
