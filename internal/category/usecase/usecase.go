package usecase

import (
	"context"

	"github.com/fekuna/omnipos-ledger/internal/apperror"
	"github.com/fekuna/omnipos-ledger/internal/category"
	"github.com/fekuna/omnipos-ledger/internal/category/dto"
	"github.com/fekuna/omnipos-ledger/internal/form"
	"github.com/fekuna/omnipos-ledger/internal/logger"
	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/fekuna/omnipos-ledger/internal/store"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	writer store.Writer
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, writer store.Writer, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		writer: writer,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	name, err := form.RequiredText("name", input.Name)
	if err != nil {
		return nil, err
	}

	cat := &model.Category{Name: name}
	err = uc.writer.Exclusive(ctx, func(ctx context.Context) error {
		unique, err := uc.repo.IsNameUnique(ctx, name, 0)
		if err != nil {
			return err
		}
		if !unique {
			return apperror.DuplicateKey("category", "name", name)
		}
		return uc.repo.Create(ctx, cat)
	})
	if err != nil {
		uc.logger.Error("failed to create category", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("category created", zap.Int64("category_id", cat.ID), zap.String("name", cat.Name))
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFound("category", id)
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return uc.repo.FindAll(ctx)
}

// RenameCategory changes the name only. Products keep the category string
// they were saved with.
func (uc *categoryUseCase) RenameCategory(ctx context.Context, input *dto.RenameCategoryInput) (*model.Category, error) {
	name, err := form.RequiredText("name", input.NewName)
	if err != nil {
		return nil, err
	}

	var cat *model.Category
	err = uc.writer.Exclusive(ctx, func(ctx context.Context) error {
		cat, err = uc.repo.FindByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if cat == nil {
			return apperror.NotFound("category", input.ID)
		}

		unique, err := uc.repo.IsNameUnique(ctx, name, cat.ID)
		if err != nil {
			return err
		}
		if !unique {
			return apperror.DuplicateKey("category", "name", name)
		}

		cat.Name = name
		return uc.repo.Update(ctx, cat)
	})
	if err != nil {
		uc.logger.Error("failed to rename category", zap.Int64("category_id", input.ID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("category renamed", zap.Int64("category_id", cat.ID), zap.String("name", cat.Name))
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64) error {
	err := uc.writer.Exclusive(ctx, func(ctx context.Context) error {
		cat, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if cat == nil {
			return apperror.NotFound("category", id)
		}

		count, err := uc.repo.CountProducts(ctx, cat.Name)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.InUse("category", count, "product(s)")
		}
		return uc.repo.Delete(ctx, id)
	})
	if err != nil {
		uc.logger.Error("failed to delete category", zap.Int64("category_id", id), zap.Error(err))
		return err
	}

	uc.logger.Info("category deleted", zap.Int64("category_id", id))
	return nil
}
