package postgres

import (
	"context"
	"fmt"
	"time"

	"ph-jobfinder-bot/internal/models"

	"go.uber.org/zap"
)

// SaveJob inserts a posting if its link has never been seen. Returns true
// when the row was actually inserted, false for a duplicate. The first
// write for a link wins; later duplicates never overwrite it.
func (s *Store) SaveJob(ctx context.Context, job *models.JobPosting) (bool, error) {
	query := `
		INSERT INTO jobs (title, company, link, category, location, salary, source, date_found)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (link) DO NOTHING
	`

	result, err := s.sess.
		InsertBySql(query,
			job.Title,
			job.Company,
			job.Link,
			string(job.Category),
			job.Location,
			job.Salary,
			job.Source,
			time.Now(),
		).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to save job",
			zap.String("link", job.Link),
			zap.Error(err),
		)
		return false, fmt.Errorf("save job: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

func (s *Store) GetLatestJobs(ctx context.Context, limit int) ([]models.JobPosting, error) {
	var jobs []models.JobPosting

	_, err := s.sess.
		Select("*").
		From("jobs").
		OrderDesc("date_found").
		Limit(uint64(limit)).
		LoadContext(ctx, &jobs)

	if err != nil {
		s.logger.Error("failed to get latest jobs", zap.Error(err))
		return nil, fmt.Errorf("get latest jobs: %w", err)
	}

	return jobs, nil
}

func (s *Store) GetLatestJobsByCategory(ctx context.Context, category models.Category, limit int) ([]models.JobPosting, error) {
	var jobs []models.JobPosting

	_, err := s.sess.
		Select("*").
		From("jobs").
		Where("category = ?", string(category)).
		OrderDesc("date_found").
		Limit(uint64(limit)).
		LoadContext(ctx, &jobs)

	if err != nil {
		s.logger.Error("failed to get jobs by category",
			zap.String("category", string(category)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get jobs by category: %w", err)
	}

	return jobs, nil
}

func (s *Store) CountJobs(ctx context.Context) (int, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("jobs").
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to count jobs", zap.Error(err))
		return 0, fmt.Errorf("count jobs: %w", err)
	}

	return count, nil
}

func (s *Store) CountJobsToday(ctx context.Context) (int, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("jobs").
		Where("date_found >= CURRENT_DATE").
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to count today's jobs", zap.Error(err))
		return 0, fmt.Errorf("count jobs today: %w", err)
	}

	return count, nil
}

type SourceCount struct {
	Source string `db:"source"`
	Count  int    `db:"count"`
}

func (s *Store) CountBySource(ctx context.Context) ([]SourceCount, error) {
	var counts []SourceCount

	_, err := s.sess.
		Select("source", "COUNT(*) AS count").
		From("jobs").
		GroupBy("source").
		OrderDesc("count").
		LoadContext(ctx, &counts)

	if err != nil {
		s.logger.Error("failed to count jobs by source", zap.Error(err))
		return nil, fmt.Errorf("count by source: %w", err)
	}

	return counts, nil
}
