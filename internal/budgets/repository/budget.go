package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	budgeterrors "budgetly/internal/budgets/errors"
	"budgetly/pkg/config"
	mongotx "budgetly/pkg/db/mongo"
	"budgetly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Budgets"
)

type BudgetRepository interface {
	Create(ctx context.Context, b *model.Budget) error
	FindByID(ctx context.Context, id string) (*model.Budget, error)
	FindByName(ctx context.Context, name string) (*model.Budget, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Budget, error)
	Update(ctx context.Context, id string, b *model.Budget) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBudgetRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBudgetRepository(cfg *config.Config, client *mongo.Client) BudgetRepository {
	db := client.Database(cfg.MongoDatabaseName)
	return &mongoBudgetRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(client),
	}
}

func (r *mongoBudgetRepository) Create(ctx context.Context, b *model.Budget) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	b.CreatedAt = now
	b.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, b)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBudgetRepository) FindByID(ctx context.Context, id string) (*model.Budget, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", budgeterrors.ErrInvalidID, id)
	}

	var b model.Budget
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", budgeterrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	return &b, nil
}

func (r *mongoBudgetRepository) FindByName(ctx context.Context, name string) (*model.Budget, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var b model.Budget
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", budgeterrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to find budget by name: %w", err)
	}

	return &b, nil
}

func (r *mongoBudgetRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Budget, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer cursor.Close(ctx)

	budgets := []*model.Budget{}
	if err = cursor.All(ctx, &budgets); err != nil {
		return nil, fmt.Errorf("failed to decode budgets: %w", err)
	}
	return budgets, nil
}

func (r *mongoBudgetRepository) Update(ctx context.Context, id string, b *model.Budget) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", budgeterrors.ErrInvalidID, id)
	}

	b.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	set := bson.M{
		"name":       b.Name,
		"active":     b.Active,
		"order":      b.Order,
		"updated_at": b.UpdatedAt,
	}
	unset := bson.M{}
	if b.Notes != nil {
		set["notes"] = *b.Notes
	} else {
		unset["notes"] = ""
	}
	if b.AutoBudget != nil {
		set["auto_budget"] = b.AutoBudget
	} else {
		unset["auto_budget"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", budgeterrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoBudgetRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", budgeterrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", budgeterrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoBudgetRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count budgets: %w", err)
	}
	return count, nil
}

func (r *mongoBudgetRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
