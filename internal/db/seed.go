package db

import (
	"context"
	"fmt"
	"time"

	"notiguard/internal/models"
)

// SeedDevData inserts sample employees, notices and a popup for development.
// Skips seeding when notices already exist.
func (d *DB) SeedDevData(ctx context.Context) error {
	var count int
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM notices`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count notices: %w", err)
	}
	if count > 0 {
		return nil
	}

	employees := []models.Employee{
		{EmployeeID: "admin", Name: "관리자", Department: "경영관리본부", Team: "재경팀", Role: models.RoleAdmin},
		{EmployeeID: "E1001", Name: "김생산", Department: "생산본부", Team: "생산팀"},
		{EmployeeID: "E2001", Name: "이연구", Department: "연구개발본부", Team: "연구1팀"},
	}
	for i := range employees {
		if err := d.UpsertEmployee(ctx, &employees[i]); err != nil {
			return fmt.Errorf("failed to seed employee %s: %w", employees[i].EmployeeID, err)
		}
	}

	day := func(m time.Month, dom int) time.Time { return time.Date(2025, m, dom, 0, 0, 0, 0, time.UTC) }
	notices := []models.Notice{
		{
			Title:         "2025년 상반기 안전보건교육 실시 안내",
			Body:          "일시: 2025년 1월 24일(금) 14:00~16:00\n장소: 생산동 2층 대회의실\n대상: 생산본부 전 직원\n산업안전보건법에 따른 정기 교육으로 필수 참석 바랍니다.",
			Department:    "생산본부",
			EffectiveDate: day(time.January, 20),
			Category:      "교육",
		},
		{
			Title:         "연차휴가 사용 촉진 안내",
			Body:          "잔여 연차는 12월 31일까지 사용해야 하며 미사용 연차는 소멸됩니다. 휴가 신청은 그룹웨어 근태 메뉴에서 가능합니다.",
			Department:    "경영관리본부",
			EffectiveDate: day(time.January, 15),
			Category:      "인사",
		},
		{
			Title:         "법인카드 사용 및 경비 정산 기준 변경",
			Body:          "2월 1일부터 법인카드 사용 후 7일 이내 증빙을 등록해야 합니다. 기한을 넘긴 경비는 정산이 반려됩니다.",
			Department:    "재경팀",
			EffectiveDate: day(time.January, 10),
			Category:      "재무",
		},
		{
			Title:         "연구개발본부 특허 출원 교육",
			Body:          "일시: 2025년 2월 5일 10:00\n장소: 연구동 세미나실\n대상: 연구1팀, 연구2팀",
			Department:    "연구개발본부",
			EffectiveDate: day(time.January, 8),
			Category:      "교육",
		},
	}
	for i := range notices {
		if err := d.CreateNotice(ctx, &notices[i]); err != nil {
			return fmt.Errorf("failed to seed notice %q: %w", notices[i].Title, err)
		}
	}

	popup := models.Popup{
		NoticeID:          notices[0].ID,
		Title:             notices[0].Title,
		Content:           "안전보건교육은 필수 참석입니다.",
		TargetDepartments: []string{"생산본부"},
	}
	if err := d.CreatePopup(ctx, &popup); err != nil {
		return fmt.Errorf("failed to seed popup: %w", err)
	}

	return nil
}
