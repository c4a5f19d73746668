package service

import (
	"context"
	"fmt"
	"log/slog"

	"atrium/internal/config"
	"atrium/internal/domain"
	"atrium/internal/domain/models"
	"atrium/internal/domain/repositories"
	"atrium/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type departmentService struct {
	departmentRepo repositories.DepartmentRepository
	logger         *slog.Logger
}

// NewDepartmentService creates a new department service
func NewDepartmentService(
	departmentRepo repositories.DepartmentRepository,
	logger *slog.Logger,
) services.DepartmentService {
	return &departmentService{
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// Create inserts a department; a duplicate name conflicts
func (s *departmentService) Create(ctx context.Context, req *services.CreateDepartmentRequest) (*models.Department, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxDepartmentNameLength),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	department := &models.Department{Name: req.Name}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}

	s.logger.Info("department created", "id", department.ID, "name", department.Name)

	return department, nil
}

// List lists all departments
func (s *departmentService) List(ctx context.Context) ([]models.Department, error) {
	return s.departmentRepo.List(ctx)
}
