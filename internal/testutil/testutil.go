// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"notiguard/internal/db"
	"notiguard/internal/models"
)

// TestDB creates a test database connection and returns a cleanup function.
// Uses TEST_DATABASE_URL and skips the test when it is not set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanupTestData(ctx, database.Pool)

	cleanup := func() {
		cleanupTestData(ctx, database.Pool)
		database.Close()
	}

	return database, cleanup
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, pool *pgxpool.Pool) {
	// Delete in order to respect foreign keys
	pool.Exec(ctx, "DELETE FROM popup_logs")
	pool.Exec(ctx, "DELETE FROM popups")
	pool.Exec(ctx, "DELETE FROM inquiries")
	pool.Exec(ctx, "DELETE FROM chat_logs")
	pool.Exec(ctx, "DELETE FROM notices")
	pool.Exec(ctx, "DELETE FROM employees")
}

// CreateTestEmployee creates a test employee and returns it.
func CreateTestEmployee(t *testing.T, database *db.DB, employeeID, team, role string) *models.Employee {
	t.Helper()

	e := &models.Employee{
		EmployeeID: employeeID,
		Name:       "테스트 " + employeeID,
		Email:      employeeID + "@example.com",
		Team:       team,
		Role:       role,
	}
	if err := database.UpsertEmployee(context.Background(), e); err != nil {
		t.Fatalf("failed to create test employee: %v", err)
	}
	return e
}

// CreateTestNotice creates a test notice effective on the given date.
func CreateTestNotice(t *testing.T, database *db.DB, title, body string, effective time.Time) *models.Notice {
	t.Helper()

	n := &models.Notice{
		Title:         title,
		Body:          body,
		Department:    "경영관리본부",
		EffectiveDate: effective,
		Category:      "일반",
	}
	if err := database.CreateNotice(context.Background(), n); err != nil {
		t.Fatalf("failed to create test notice: %v", err)
	}
	return n
}
