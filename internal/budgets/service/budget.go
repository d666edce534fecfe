package service

import (
	"context"
	"errors"
	"sync"

	budgeterrors "budgetly/internal/budgets/errors"
	"budgetly/internal/budgets/repository"
	"budgetly/internal/budgets/validator"
	"budgetly/pkg/config"
	apperrors "budgetly/pkg/errors"
	"budgetly/pkg/kafka"
	"budgetly/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type BudgetService interface {
	Create(ctx context.Context, b *model.Budget, data map[string]any) error
	GetByID(ctx context.Context, id string) (*model.Budget, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Budget, int64, error)
	Update(ctx context.Context, id string, update model.BudgetUpdate, data map[string]any) (*model.Budget, error)
	Delete(ctx context.Context, id string) error
}

type budgetService struct {
	repo      repository.BudgetRepository
	validator *validator.BudgetValidator
	events    *kafka.Emitter
	cfg       *config.Config
}

func NewBudgetService(
	repo repository.BudgetRepository,
	validator *validator.BudgetValidator,
	events *kafka.Emitter,
	cfg *config.Config,
) BudgetService {
	return &budgetService{
		repo:      repo,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

func (s *budgetService) Create(ctx context.Context, b *model.Budget, data map[string]any) error {
	if err := s.validate(b, data); err != nil {
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.ensureUniqueName(sessCtx, b.Name, ""); err != nil {
			return err
		}
		return s.repo.Create(sessCtx, b)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		s.cfg.Log.Error("Failed to create budget",
			"name", b.Name,
			"error", err,
		)
		return apperrors.Internal("Failed to create budget", err)
	}

	s.cfg.Log.Info("Budget created successfully",
		"id", b.ID,
		"name", b.Name,
		"auto_budget", b.AutoBudget != nil,
	)
	s.events.Emit(ctx, kafka.EventBudgetStored, b.ID, b)
	return nil
}

func (s *budgetService) GetByID(ctx context.Context, id string) (*model.Budget, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Budget ID cannot be empty")
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve budget")
	}
	return b, nil
}

func (s *budgetService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Budget, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var budgets []*model.Budget
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count budgets", "error", err)
			errCount = apperrors.Internal("Failed to count budgets", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		budgets, err = s.repo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all budgets",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve budgets", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return budgets, count, nil
}

// Update merges the sent fields into the stored budget and validates the
// result. Cross-field auto-budget rules only run when the request carried
// the auto-budget block.
func (s *budgetService) Update(ctx context.Context, id string, update model.BudgetUpdate, data map[string]any) (*model.Budget, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Budget ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to check budget existence")
	}

	merged := update.Apply(*existing)
	if err := s.validate(&merged, data); err != nil {
		return nil, err
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if update.Name.Set {
			if err := s.ensureUniqueName(sessCtx, merged.Name, id); err != nil {
				return err
			}
		}
		if err := s.repo.Update(sessCtx, id, &merged); err != nil {
			return s.mapRepoError(err, id, "Failed to update budget")
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Failed to update budget", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update budget", err)
	}

	s.cfg.Log.Info("Budget updated successfully", "id", id, "name", merged.Name)
	s.events.Emit(ctx, kafka.EventBudgetStored, id, merged)
	return &merged, nil
}

func (s *budgetService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Budget ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete budget")
	}

	s.cfg.Log.Info("Budget deleted successfully", "id", id)
	s.events.Emit(ctx, kafka.EventBudgetDeleted, id, map[string]string{"id": id})
	return nil
}

func (s *budgetService) validate(b *model.Budget, data map[string]any) error {
	errs, err := s.validator.Validate(b, data)
	if err != nil {
		return apperrors.Internal("Failed to validate budget", err)
	}
	if len(errs) > 0 {
		s.cfg.Log.Warn("Budget validation failed",
			"name", b.Name,
			"fields", errs.Fields(),
		)
		return apperrors.FromValidation("Budget validation failed", errs)
	}
	return nil
}

func (s *budgetService) ensureUniqueName(ctx context.Context, name, selfID string) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, budgeterrors.ErrNotFound) {
			return nil
		}
		return apperrors.Internal("Failed to check for existing budgets", err)
	}
	if existing.ID != selfID {
		return apperrors.Conflict("Budget with the same name already exists")
	}
	return nil
}

func (s *budgetService) mapRepoError(err error, id, message string) error {
	if errors.Is(err, budgeterrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Budget", id)
	}
	if errors.Is(err, budgeterrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid budget ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}
