package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/go-cmp/cmp"

	"notiguard/internal/config"
	"notiguard/internal/models"
)

func TestEmployeeFromClaims(t *testing.T) {
	cfg := &config.Config{
		OIDCEmployeeIDClaim: "preferred_username",
		OIDCDepartmentClaim: "department",
		OIDCTeamClaim:       "team",
		AdminIDs:            []string{"E0001"},
	}

	tests := []struct {
		name   string
		claims map[string]any
		want   *models.Employee
	}{
		{
			name: "full claims",
			claims: map[string]any{
				"sub":                "abc-123",
				"preferred_username": "E1001",
				"name":               "김철수",
				"email":              "kim@example.com",
				"department":         "생산본부",
				"team":               []any{"생산팀", "품질팀"},
			},
			want: &models.Employee{
				EmployeeID: "E1001", Sub: "abc-123", Name: "김철수", Email: "kim@example.com",
				Department: "생산본부", Team: "생산팀",
			},
		},
		{
			name:   "admin id",
			claims: map[string]any{"sub": "s", "preferred_username": "E0001"},
			want:   &models.Employee{EmployeeID: "E0001", Sub: "s", Role: models.RoleAdmin},
		},
		{
			name:   "falls back to sub",
			claims: map[string]any{"sub": "only-sub", "team": 42},
			want:   &models.Employee{EmployeeID: "only-sub", Sub: "only-sub"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := employeeFromClaims(tt.claims, cfg)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("employeeFromClaims() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func TestProbeHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		pingErr    error
		wantStatus int
	}{
		{"liveness", "/livez", errors.New("down"), fiber.StatusOK},
		{"ready", "/healthz", nil, fiber.StatusOK},
		{"not ready", "/healthz", errors.New("down"), fiber.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewProbeHandler(fakePinger{err: tt.pingErr})
			app := fiber.New()
			app.Get("/livez", h.Liveness)
			app.Get("/healthz", h.Readiness)

			req, _ := http.NewRequest("GET", tt.path, nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestMergeBranding(t *testing.T) {
	cfg := &config.Config{SiteTitle: "NotiGuard", BaseURL: "https://notice.example.com"}

	data := MergeBranding(fiber.Map{"Title": "x"}, cfg, &models.Employee{Role: models.RoleAdmin})
	if data["SiteTitle"] != "NotiGuard" || data["IsAdmin"] != true || data["Title"] != "x" {
		t.Errorf("MergeBranding() = %v", data)
	}

	anon := MergeBranding(fiber.Map{}, cfg, nil)
	if _, ok := anon["Employee"]; ok {
		t.Error("anonymous branding should not carry an employee")
	}
}
