package usecase

import (
	"context"
	"fmt"

	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/domain/repository"
	"github.com/ecotrack-service/internal/pkg/errors"
	"github.com/ecotrack-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// AdminUseCase - управление пользователями, журнал действий, обслуживание
type AdminUseCase struct {
	store    repository.Store
	activity ActivityRecorder
	logger   *zap.Logger
}

// NewAdminUseCase создает новый экземпляр AdminUseCase
func NewAdminUseCase(store repository.Store, activity ActivityRecorder, logger *zap.Logger) *AdminUseCase {
	return &AdminUseCase{
		store:    store,
		activity: activity,
		logger:   logger,
	}
}

func (uc *AdminUseCase) Users(ctx context.Context) ([]domain.User, error) {
	users, err := uc.store.Repos().Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user. Admins cannot delete themselves or other admins;
// the deleted user's activity entries stay with user_id cleared. Returns the
// deleted username.
func (uc *AdminUseCase) DeleteUser(ctx context.Context, actor *domain.Identity, id int64, ip string) (string, error) {
	if actor != nil && actor.UserID == id {
		return "", errors.ErrSelfDeletion
	}

	var username string
	err := uc.store.WithinTx(ctx, func(tx repository.Repositories) error {
		user, err := tx.Users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				return errors.ErrUserNotFound
			}
			return err
		}
		if user.IsAdmin() {
			return errors.ErrAdminDeletion
		}
		username = user.Username

		if err := tx.Activity.DetachUser(ctx, id); err != nil {
			return err
		}
		return tx.Users.Delete(ctx, id)
	})
	if err != nil {
		return "", wrapUnlessApp("delete user", err)
	}

	uc.logger.Info("User deleted", zap.Int64("user_id", id), zap.String("username", username))

	recordActivity(ctx, uc.activity, uc.logger, actorID(actor), domain.ActionDeleteUser,
		fmt.Sprintf("Deleted user: %s", username), ip)

	return username, nil
}

// Activity - журнал действий, новые записи первыми
func (uc *AdminUseCase) Activity(ctx context.Context, req dto.ActivityListRequest) ([]domain.ActivityLog, error) {
	filter := domain.ActivityFilter{
		ActionType: req.Action,
		Limit:      domain.ClampLimit(req.Limit),
	}
	if req.UserID > 0 {
		id := req.UserID
		filter.UserID = &id
	}

	entries, err := uc.store.Repos().Activity.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return entries, nil
}

// RefreshSpeciesStats пересчитывает производные поля всех видов
func (uc *AdminUseCase) RefreshSpeciesStats(ctx context.Context, actor *domain.Identity, ip string) (int64, error) {
	var n int64
	err := uc.store.WithinTx(ctx, func(tx repository.Repositories) error {
		var err error
		n, err = tx.Species.RefreshAllStats(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("refresh species stats: %w", err)
	}

	uc.logger.Info("Species statistics refreshed", zap.Int64("species", n))

	recordActivity(ctx, uc.activity, uc.logger, actorID(actor), domain.ActionRefreshStats,
		fmt.Sprintf("Refreshed statistics for %d species", n), ip)

	return n, nil
}
