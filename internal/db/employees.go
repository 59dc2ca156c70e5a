package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"notiguard/internal/models"
)

// UpsertEmployee creates or updates an employee by employee ID. Empty
// department, team and role values keep what is already stored.
func (d *DB) UpsertEmployee(ctx context.Context, e *models.Employee) error {
	query := `
		INSERT INTO employees (employee_id, sub, name, email, department, team, role)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7::text, 'employee'))
		ON CONFLICT (employee_id) DO UPDATE SET
			sub = COALESCE(EXCLUDED.sub, employees.sub),
			name = COALESCE(NULLIF(EXCLUDED.name, ''), employees.name),
			email = COALESCE(NULLIF(EXCLUDED.email, ''), employees.email),
			department = COALESCE(NULLIF(EXCLUDED.department, ''), employees.department),
			team = COALESCE(NULLIF(EXCLUDED.team, ''), employees.team),
			role = COALESCE($7::text, employees.role),
			updated_at = NOW()
		RETURNING name, email, department, team, role, created_at, updated_at
	`

	return d.Pool.QueryRow(ctx, query,
		e.EmployeeID,
		nullIfEmpty(e.Sub),
		e.Name,
		e.Email,
		e.Department,
		e.Team,
		nullIfEmpty(e.Role),
	).Scan(&e.Name, &e.Email, &e.Department, &e.Team, &e.Role, &e.CreatedAt, &e.UpdatedAt)
}

// GetEmployeeByID retrieves an employee by employee ID.
func (d *DB) GetEmployeeByID(ctx context.Context, employeeID string) (*models.Employee, error) {
	query := `
		SELECT employee_id, COALESCE(sub, ''), name, email, department, team, role, created_at, updated_at
		FROM employees WHERE employee_id = $1
	`

	var e models.Employee
	err := d.Pool.QueryRow(ctx, query, employeeID).Scan(
		&e.EmployeeID,
		&e.Sub,
		&e.Name,
		&e.Email,
		&e.Department,
		&e.Team,
		&e.Role,
		&e.CreatedAt,
		&e.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}
