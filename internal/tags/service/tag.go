package service

import (
	"context"
	"errors"
	"sync"

	tagerrors "budgetly/internal/tags/errors"
	"budgetly/internal/tags/repository"
	"budgetly/internal/tags/validator"
	"budgetly/pkg/config"
	apperrors "budgetly/pkg/errors"
	"budgetly/pkg/kafka"
	"budgetly/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type TagService interface {
	Create(ctx context.Context, t *model.Tag) error
	GetByID(ctx context.Context, id string) (*model.Tag, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Tag, int64, error)
	Update(ctx context.Context, id string, update model.TagUpdate) (*model.Tag, error)
	Delete(ctx context.Context, id string) error
}

type tagService struct {
	repo      repository.TagRepository
	validator *validator.TagValidator
	events    *kafka.Emitter
	cfg       *config.Config
}

func NewTagService(
	repo repository.TagRepository,
	validator *validator.TagValidator,
	events *kafka.Emitter,
	cfg *config.Config,
) TagService {
	return &tagService{
		repo:      repo,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

func (s *tagService) Create(ctx context.Context, t *model.Tag) error {
	if err := s.validate(t); err != nil {
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.ensureUniqueTag(sessCtx, t.Tag, ""); err != nil {
			return err
		}
		return s.repo.Create(sessCtx, t)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		s.cfg.Log.Error("Failed to create tag", "tag", t.Tag, "error", err)
		return apperrors.Internal("Failed to create tag", err)
	}

	s.cfg.Log.Info("Tag created successfully",
		"id", t.ID,
		"tag", t.Tag,
		"location", t.Location != nil,
	)
	s.events.Emit(ctx, kafka.EventTagStored, t.ID, t)
	return nil
}

func (s *tagService) GetByID(ctx context.Context, id string) (*model.Tag, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Tag ID cannot be empty")
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve tag")
	}
	return t, nil
}

func (s *tagService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Tag, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var tags []*model.Tag
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count tags", "error", err)
			errCount = apperrors.Internal("Failed to count tags", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		tags, err = s.repo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all tags", "limit", limit, "offset", offset, "error", err)
			errFind = apperrors.Internal("Failed to retrieve tags", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return tags, count, nil
}

func (s *tagService) Update(ctx context.Context, id string, update model.TagUpdate) (*model.Tag, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Tag ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to check tag existence")
	}

	merged := update.Apply(*existing)
	if err := s.validate(&merged); err != nil {
		return nil, err
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if update.Tag.Set {
			if err := s.ensureUniqueTag(sessCtx, merged.Tag, id); err != nil {
				return err
			}
		}
		if err := s.repo.Update(sessCtx, id, &merged); err != nil {
			return s.mapRepoError(err, id, "Failed to update tag")
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Failed to update tag", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update tag", err)
	}

	s.cfg.Log.Info("Tag updated successfully",
		"id", id,
		"tag", merged.Tag,
		"location_changed", update.Location.Set,
	)
	s.events.Emit(ctx, kafka.EventTagStored, id, merged)
	return &merged, nil
}

func (s *tagService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Tag ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete tag")
	}

	s.cfg.Log.Info("Tag deleted successfully", "id", id)
	s.events.Emit(ctx, kafka.EventTagDeleted, id, map[string]string{"id": id})
	return nil
}

func (s *tagService) validate(t *model.Tag) error {
	errs, err := s.validator.Validate(t)
	if err != nil {
		return apperrors.Internal("Failed to validate tag", err)
	}
	if len(errs) > 0 {
		s.cfg.Log.Warn("Tag validation failed", "tag", t.Tag, "fields", errs.Fields())
		return apperrors.FromValidation("Tag validation failed", errs)
	}
	return nil
}

func (s *tagService) ensureUniqueTag(ctx context.Context, tag, selfID string) error {
	existing, err := s.repo.FindByTag(ctx, tag)
	if err != nil {
		if errors.Is(err, tagerrors.ErrNotFound) {
			return nil
		}
		return apperrors.Internal("Failed to check for existing tags", err)
	}
	if existing.ID != selfID {
		return apperrors.Conflict("Tag already exists")
	}
	return nil
}

func (s *tagService) mapRepoError(err error, id, message string) error {
	if errors.Is(err, tagerrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Tag", id)
	}
	if errors.Is(err, tagerrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid tag ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}
