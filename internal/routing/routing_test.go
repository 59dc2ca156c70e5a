package routing

import (
	"testing"

	"notiguard/internal/config"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"법인카드 한도가 궁금합니다", "재경팀"},
		{"신규 프로젝트 설계 일정", "연구1팀"},
		{"연구2 과제 보고 양식", "연구1팀"}, // "연구" is listed first
		{"공장 가동 시간", "생산팀"},
		{"불량 검사 기준", "품질팀"},
		{"고객 수주 현황", "영업1팀"},
		{"연차 사용 규정", "경영관리본부"},
		{"오늘 점심 메뉴", "경영관리본부"},
		{"", "경영관리본부"},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			if got := Detect(tt.question); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.question, got, tt.want)
			}
		})
	}
}

func TestRouter_CaseInsensitive(t *testing.T) {
	r := New(&config.DepartmentsConfig{
		Default:     "총무팀",
		Departments: []config.DepartmentConfig{{Name: "IT팀", Email: "it@example.com"}},
		Routing:     []config.RoutingRule{{Department: "IT팀", Keywords: []string{"VPN"}}},
	})

	if got := r.Detect("vpn 접속이 안돼요"); got != "IT팀" {
		t.Errorf("Detect() = %q, want %q", got, "IT팀")
	}
}

func TestRouter_SkipsDepartmentsWithoutEmail(t *testing.T) {
	r := New(&config.DepartmentsConfig{
		Default: "경영관리본부",
		Departments: []config.DepartmentConfig{
			{Name: "경영관리본부", Email: "management@example.com", Teams: []config.TeamConfig{{Name: "재경팀"}}},
		},
		Routing: []config.RoutingRule{
			{Department: "재경팀", Keywords: []string{"급여"}},
			{Department: "경영관리본부", Keywords: []string{"급여"}},
		},
	})

	if got := r.Detect("급여 지급일"); got != "경영관리본부" {
		t.Errorf("Detect() = %q, want %q", got, "경영관리본부")
	}
	if r.Eligible("재경팀") {
		t.Error("team without an address reported eligible")
	}
}
