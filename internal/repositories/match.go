package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kodjobs/talent-matcher/internal/models"
)

// ErrPersistence wraps any database failure while writing a match row.
var ErrPersistence = errors.New("failed to persist match evaluation")

type MatchRepository interface {
	CreateEvaluation(ctx context.Context, candidateID, employerID int, requirement string, score int) (*models.Match, error)
	FindByEmployerID(ctx context.Context, employerID int) ([]models.Match, error)
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// CreateEvaluation inserts one evaluation row. Every call is an
// independent insert: repeat submissions of the same requirement keep
// the full audit history instead of overwriting it.
func (r *matchRepository) CreateEvaluation(ctx context.Context, candidateID, employerID int, requirement string, score int) (*models.Match, error) {
	match := &models.Match{
		UserID:      candidateID,
		EmployerID:  employerID,
		Requirement: requirement,
		Score:       score,
		IsMatch:     models.IsMatchingScore(score),
	}

	if err := r.db.WithContext(ctx).Create(match).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return match, nil
}

func (r *matchRepository) FindByEmployerID(ctx context.Context, employerID int) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.WithContext(ctx).
		Where(`"employerId" = ?`, employerID).
		Order("created_at DESC").
		Find(&matches).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find matches: %w", err)
	}

	return matches, nil
}
