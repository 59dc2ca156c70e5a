package db

import (
	"context"
	"errors"
	"testing"

	"notiguard/internal/models"
)

func TestLatestUnacknowledgedPopup_Targeting(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	emp := &models.Employee{EmployeeID: "E1", Department: "생산본부", Team: "품질팀"}
	if err := db.UpsertEmployee(ctx, emp); err != nil {
		t.Fatalf("UpsertEmployee() error = %v", err)
	}
	notice := seedNotices(t, db, models.Notice{Title: "n"})[0]

	popups := []models.Popup{
		{NoticeID: notice.ID, Title: "department target", TargetDepartments: []string{"생산본부"}},
		{NoticeID: notice.ID, Title: "other team", TargetDepartments: []string{"생산본부"}, TargetTeams: []string{"생산팀"}},
		{NoticeID: notice.ID, Title: "no target"},
	}
	for i := range popups {
		if err := db.CreatePopup(ctx, &popups[i]); err != nil {
			t.Fatalf("CreatePopup() error = %v", err)
		}
	}

	got, err := db.LatestUnacknowledgedPopup(ctx, "E1")
	if err != nil {
		t.Fatalf("LatestUnacknowledgedPopup() error = %v", err)
	}
	if got == nil || got.Title != "department target" {
		t.Fatalf("LatestUnacknowledgedPopup() = %+v, want department target", got)
	}

	if err := db.AcknowledgePopup(ctx, "E1", got.ID); err != nil {
		t.Fatalf("AcknowledgePopup() error = %v", err)
	}
	after, err := db.LatestUnacknowledgedPopup(ctx, "E1")
	if err != nil {
		t.Fatalf("LatestUnacknowledgedPopup() error = %v", err)
	}
	if after != nil {
		t.Errorf("LatestUnacknowledgedPopup() after ack = %+v, want nil", after)
	}
}

func TestLatestUnacknowledgedPopup_UnknownEmployee(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	got, err := db.LatestUnacknowledgedPopup(context.Background(), "nobody")
	if err != nil || got != nil {
		t.Errorf("LatestUnacknowledgedPopup() = %+v, %v, want nil, nil", got, err)
	}
}

func TestAcknowledgePopup_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	err := db.AcknowledgePopup(context.Background(), "E1", 424242)
	if !errors.Is(err, ErrPopupNotFound) {
		t.Errorf("AcknowledgePopup() error = %v, want ErrPopupNotFound", err)
	}
}
