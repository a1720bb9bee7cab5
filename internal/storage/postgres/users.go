package postgres

import (
	"context"
	"fmt"
	"time"

	"ph-jobfinder-bot/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// UpsertUser registers a subscriber on first contact and returns true iff
// the row was newly created. An existing row is left untouched so
// re-running /start never resets filters or subscription.
func (s *Store) UpsertUser(ctx context.Context, userID int64, name string) (bool, error) {
	query := `
		INSERT INTO users (user_id, name, subscribed, filters, joined_at)
		VALUES ($1, $2, TRUE, $3, $4)
		ON CONFLICT (user_id) DO NOTHING
	`

	result, err := s.sess.
		InsertBySql(query, userID, name, models.FilterAll, time.Now()).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to upsert user",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return false, fmt.Errorf("upsert user: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

func (s *Store) GetUser(ctx context.Context, userID int64) (*models.Subscriber, error) {
	var user models.Subscriber

	err := s.sess.
		Select("*").
		From("users").
		Where("user_id = ?", userID).
		LoadOneContext(ctx, &user)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get user",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (s *Store) SetSubscribed(ctx context.Context, userID int64, subscribed bool) error {
	_, err := s.sess.
		Update("users").
		Set("subscribed", subscribed).
		Where("user_id = ?", userID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to set subscribed",
			zap.Int64("user_id", userID),
			zap.Bool("subscribed", subscribed),
			zap.Error(err),
		)
		return fmt.Errorf("set subscribed: %w", err)
	}

	s.logger.Info("subscription updated",
		zap.Int64("user_id", userID),
		zap.Bool("subscribed", subscribed),
	)

	return nil
}

// SetFilter stores a single category name or the "All" sentinel.
func (s *Store) SetFilter(ctx context.Context, userID int64, filter string) error {
	_, err := s.sess.
		Update("users").
		Set("filters", filter).
		Where("user_id = ?", userID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to set filter",
			zap.Int64("user_id", userID),
			zap.String("filter", filter),
			zap.Error(err),
		)
		return fmt.Errorf("set filter: %w", err)
	}

	s.logger.Info("filter updated",
		zap.Int64("user_id", userID),
		zap.String("filter", filter),
	)

	return nil
}

func (s *Store) GetSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	var users []models.Subscriber

	_, err := s.sess.
		Select("*").
		From("users").
		Where("subscribed = ?", true).
		LoadContext(ctx, &users)

	if err != nil {
		s.logger.Error("failed to get subscribers", zap.Error(err))
		return nil, fmt.Errorf("get subscribers: %w", err)
	}

	return users, nil
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("users").
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to count users", zap.Error(err))
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}

func (s *Store) CountSubscribed(ctx context.Context) (int, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("users").
		Where("subscribed = ?", true).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to count subscribers", zap.Error(err))
		return 0, fmt.Errorf("count subscribers: %w", err)
	}

	return count, nil
}

// DeleteUser removes the subscriber row entirely (the /deletedata flow).
func (s *Store) DeleteUser(ctx context.Context, userID int64) error {
	_, err := s.sess.
		DeleteFrom("users").
		Where("user_id = ?", userID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete user",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info("user data deleted", zap.Int64("user_id", userID))
	return nil
}
