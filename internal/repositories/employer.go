package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kodjobs/talent-matcher/internal/models"
)

// ErrEmployerNotFound is returned when an employer id does not resolve
// to an existing employer record.
var ErrEmployerNotFound = errors.New("employer not found")

type EmployerRepository interface {
	FindByID(id int) (*models.Employer, error)
}

type employerRepository struct {
	db *gorm.DB
}

func NewEmployerRepository(db *gorm.DB) EmployerRepository {
	return &employerRepository{db: db}
}

func (r *employerRepository) FindByID(id int) (*models.Employer, error) {
	var employer models.Employer
	if err := r.db.Where("id = ?", id).First(&employer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployerNotFound
		}
		return nil, fmt.Errorf("failed to find employer: %w", err)
	}
	return &employer, nil
}
