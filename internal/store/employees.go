// ABOUTME: SQLite operations for the employee roster
// ABOUTME: Deletes are soft (is_active=0) so message history keeps its senders

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/officehq/office-gateway/internal/office"
)

// CreateEmployee inserts a new employee.
// Returns ErrDuplicateID if the id is already taken.
func (s *SQLiteStore) CreateEmployee(ctx context.Context, emp *office.Employee) error {
	expertise, err := json.Marshal(emp.Expertise)
	if err != nil {
		return fmt.Errorf("encoding expertise: %w", err)
	}

	query := `
		INSERT INTO employees (id, name, role, personality, expertise, llm_provider, llm_model, system_prompt, created_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		emp.ID,
		emp.Name,
		emp.Role,
		emp.Personality,
		string(expertise),
		emp.LLMProvider,
		emp.LLMModel,
		nullableString(emp.SystemPrompt),
		emp.CreatedAt.UTC().Format(time.RFC3339Nano),
		boolToInt(emp.IsActive),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("inserting employee: %w", err)
	}

	s.logger.Debug("created employee", "id", emp.ID, "name", emp.Name)
	return nil
}

// GetEmployee retrieves an employee by id.
// Returns ErrNotFound if the employee doesn't exist.
func (s *SQLiteStore) GetEmployee(ctx context.Context, id string) (*office.Employee, error) {
	query := `
		SELECT id, name, role, personality, expertise, llm_provider, llm_model, system_prompt, created_at, is_active
		FROM employees
		WHERE id = ?
	`

	emp, err := scanEmployee(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying employee: %w", err)
	}
	return emp, nil
}

// ListEmployees returns all employees, active first, newest within each group.
func (s *SQLiteStore) ListEmployees(ctx context.Context) ([]*office.Employee, error) {
	query := `
		SELECT id, name, role, personality, expertise, llm_provider, llm_model, system_prompt, created_at, is_active
		FROM employees
		ORDER BY is_active DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying employees: %w", err)
	}
	defer rows.Close()

	var employees []*office.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// DeactivateEmployee soft-deletes an employee.
// Returns ErrNotFound if the employee doesn't exist.
func (s *SQLiteStore) DeactivateEmployee(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE employees SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivating employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deactivated employee", "id", id)
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*office.Employee, error) {
	var emp office.Employee
	var expertiseJSON, createdAtStr string
	var systemPrompt sql.NullString
	var isActive int

	err := row.Scan(
		&emp.ID,
		&emp.Name,
		&emp.Role,
		&emp.Personality,
		&expertiseJSON,
		&emp.LLMProvider,
		&emp.LLMModel,
		&systemPrompt,
		&createdAtStr,
		&isActive,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(expertiseJSON), &emp.Expertise); err != nil {
		return nil, fmt.Errorf("decoding expertise: %w", err)
	}
	emp.SystemPrompt = systemPrompt.String
	emp.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	emp.IsActive = isActive != 0
	return &emp, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
