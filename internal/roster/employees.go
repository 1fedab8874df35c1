// ABOUTME: EmployeeService owns the AI employee roster
// ABOUTME: Validates inbound payloads and soft-deletes to preserve message history

package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/officehq/office-gateway/internal/office"
	"github.com/officehq/office-gateway/internal/store"
)

// ErrInvalid marks a request rejected by validation. Wrapped errors carry
// the field-level detail.
var ErrInvalid = errors.New("invalid request")

// CreateEmployeeRequest is the payload for creating an employee.
type CreateEmployeeRequest struct {
	Name         string   `json:"name" validate:"required,max=100"`
	Role         string   `json:"role" validate:"required,max=100"`
	Personality  string   `json:"personality" validate:"required,max=500"`
	Expertise    []string `json:"expertise"`
	LLMProvider  string   `json:"llm_provider" validate:"required,oneof=openai anthropic"`
	LLMModel     string   `json:"llm_model" validate:"required"`
	SystemPrompt string   `json:"system_prompt,omitempty"`
}

// EmployeeService manages the employee roster.
type EmployeeService struct {
	store    store.Store
	validate *validator.Validate
	logger   *slog.Logger
}

// NewEmployeeService creates an employee service over the given store.
func NewEmployeeService(st store.Store, logger *slog.Logger) *EmployeeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployeeService{
		store:    st,
		validate: validator.New(),
		logger:   logger.With("component", "roster"),
	}
}

// Create validates req and persists a new employee.
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*office.Employee, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	expertise := req.Expertise
	if expertise == nil {
		expertise = []string{}
	}

	emp := &office.Employee{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Role:         req.Role,
		Personality:  req.Personality,
		Expertise:    expertise,
		LLMProvider:  req.LLMProvider,
		LLMModel:     req.LLMModel,
		SystemPrompt: req.SystemPrompt,
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
	if err := s.store.CreateEmployee(ctx, emp); err != nil {
		return nil, fmt.Errorf("creating employee: %w", err)
	}

	s.logger.Info("employee created", "id", emp.ID, "name", emp.Name, "role", emp.Role)
	return emp, nil
}

// Get returns one employee by id.
func (s *EmployeeService) Get(ctx context.Context, id string) (*office.Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

// List returns all employees.
func (s *EmployeeService) List(ctx context.Context) ([]*office.Employee, error) {
	return s.store.ListEmployees(ctx)
}

// Delete soft-deletes an employee. Messages they sent keep rendering.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeactivateEmployee(ctx, id); err != nil {
		return err
	}
	s.logger.Info("employee deactivated", "id", id)
	return nil
}
