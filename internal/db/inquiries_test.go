package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"notiguard/internal/models"
)

func TestInquiryLifecycle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := db.UpsertEmployee(ctx, &models.Employee{EmployeeID: "E1", Name: "김직원", Team: "생산팀"}); err != nil {
		t.Fatalf("UpsertEmployee() error = %v", err)
	}

	known := &models.Inquiry{EmployeeID: "E1", Department: "재경팀", Question: "카드 한도", Content: "본문"}
	guest := &models.Inquiry{EmployeeID: "visitor", Department: "품질팀", Question: "검사 기준", Content: "본문"}
	for _, inq := range []*models.Inquiry{known, guest} {
		if err := db.CreateInquiry(ctx, inq); err != nil {
			t.Fatalf("CreateInquiry() error = %v", err)
		}
		if inq.Status != models.InquiryPending {
			t.Errorf("CreateInquiry() status = %q, want pending", inq.Status)
		}
	}

	got, err := db.GetInquiryByID(ctx, guest.ID)
	if err != nil {
		t.Fatalf("GetInquiryByID() error = %v", err)
	}
	if got.EmployeeName != "게스트" {
		t.Errorf("EmployeeName = %q, want 게스트", got.EmployeeName)
	}

	byDept, err := db.ListInquiries(ctx, InquiryFilter{Department: "재경팀"})
	if err != nil {
		t.Fatalf("ListInquiries() error = %v", err)
	}
	if len(byDept) != 1 || byDept[0].EmployeeName != "김직원" || byDept[0].EmployeeTeam != "생산팀" {
		t.Errorf("ListInquiries(재경팀) = %+v", byDept)
	}

	if err := db.UpdateInquiryStatus(ctx, known.ID, models.InquiryCompleted); err != nil {
		t.Fatalf("UpdateInquiryStatus() error = %v", err)
	}

	pending, err := db.ListInquiries(ctx, InquiryFilter{Status: models.InquiryPending})
	if err != nil {
		t.Fatalf("ListInquiries() error = %v", err)
	}
	if len(pending) != 1 || pending[0].ID != guest.ID {
		t.Errorf("pending inquiries = %+v, want only the guest inquiry", pending)
	}

	grouped, err := db.PendingInquiriesByDepartment(ctx)
	if err != nil {
		t.Fatalf("PendingInquiriesByDepartment() error = %v", err)
	}
	if len(grouped) != 1 || len(grouped["품질팀"]) != 1 {
		t.Errorf("PendingInquiriesByDepartment() = %+v", grouped)
	}
}

func TestUpdateInquiryStatus_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	err := db.UpdateInquiryStatus(context.Background(), uuid.New(), models.InquiryCompleted)
	if !errors.Is(err, ErrInquiryNotFound) {
		t.Errorf("UpdateInquiryStatus() error = %v, want ErrInquiryNotFound", err)
	}
}
