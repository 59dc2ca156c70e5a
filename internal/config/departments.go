package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DepartmentsConfig is the department directory loaded from departments.yaml.
// Divisions own teams; both can receive inquiries and both carry an email
// address.
type DepartmentsConfig struct {
	Default     string             `yaml:"default"`     // Routing target when nothing matches
	Departments []DepartmentConfig `yaml:"departments"` // Divisions in display order
	Routing     []RoutingRule      `yaml:"routing"`     // Checked in order, first match wins
}

// DepartmentConfig defines a division and its teams.
type DepartmentConfig struct {
	Name  string       `yaml:"name"`
	Email string       `yaml:"email"`
	Teams []TeamConfig `yaml:"teams,omitempty"`
}

// TeamConfig defines a team inside a division.
type TeamConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// RoutingRule sends questions mentioning any keyword to Department.
type RoutingRule struct {
	Department string   `yaml:"department"`
	Keywords   []string `yaml:"keywords"`
}

// DefaultDepartments returns the built-in directory used when no file exists.
func DefaultDepartments() *DepartmentsConfig {
	return &DepartmentsConfig{
		Default: "경영관리본부",
		Departments: []DepartmentConfig{
			{
				Name:  "경영관리본부",
				Email: "management@hyosung.com",
				Teams: []TeamConfig{{Name: "재경팀", Email: "finance@hyosung.com"}},
			},
			{
				Name:  "연구개발본부",
				Email: "rnd@hyosung.com",
				Teams: []TeamConfig{
					{Name: "연구1팀", Email: "rnd1@hyosung.com"},
					{Name: "연구2팀", Email: "rnd2@hyosung.com"},
				},
			},
			{
				Name:  "생산본부",
				Email: "production@hyosung.com",
				Teams: []TeamConfig{
					{Name: "생산팀", Email: "prod_team@hyosung.com"},
					{Name: "품질팀", Email: "quality@hyosung.com"},
				},
			},
			{
				Name:  "영업본부",
				Email: "sales@hyosung.com",
				Teams: []TeamConfig{
					{Name: "영업1팀", Email: "sales1@hyosung.com"},
					{Name: "영업2팀", Email: "sales2@hyosung.com"},
				},
			},
		},
		Routing: []RoutingRule{
			{Department: "재경팀", Keywords: []string{"재무", "회계", "비용", "경비", "세금", "카드", "급여", "예산"}},
			{Department: "연구1팀", Keywords: []string{"연구", "개발", "설계", "프로젝트", "기술"}},
			{Department: "연구2팀", Keywords: []string{"연구2", "연구 2"}},
			{Department: "생산팀", Keywords: []string{"생산", "제조", "공장", "생산성"}},
			{Department: "품질팀", Keywords: []string{"품질", "검사", "테스트", "불량"}},
			{Department: "영업1팀", Keywords: []string{"영업", "판매", "고객", "수주"}},
			{Department: "경영관리본부", Keywords: []string{"인사", "채용", "휴가", "연차", "복지", "총무", "시설"}},
		},
	}
}

// LoadDepartments loads the department directory from path.
// Returns the built-in directory if the file doesn't exist.
func LoadDepartments(path string) (*DepartmentsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultDepartments(), nil
		}
		return nil, err
	}

	var cfg DepartmentsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Default == "" {
		cfg.Default = DefaultDepartments().Default
	}
	if len(cfg.Departments) == 0 {
		cfg.Departments = DefaultDepartments().Departments
	}

	return &cfg, nil
}

// EmailFor returns the inquiry address of a division or team.
func (c *DepartmentsConfig) EmailFor(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, d := range c.Departments {
		if d.Name == name {
			return d.Email, d.Email != ""
		}
		for _, t := range d.Teams {
			if t.Name == name {
				return t.Email, t.Email != ""
			}
		}
	}
	return "", false
}

// Directory returns every division and team name that has an email address,
// divisions before their teams.
func (c *DepartmentsConfig) Directory() []string {
	if c == nil {
		return nil
	}
	var names []string
	for _, d := range c.Departments {
		if d.Email != "" {
			names = append(names, d.Name)
		}
		for _, t := range d.Teams {
			if t.Email != "" {
				names = append(names, t.Name)
			}
		}
	}
	return names
}

// DivisionOf returns the division a team belongs to. A division name returns
// itself.
func (c *DepartmentsConfig) DivisionOf(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, d := range c.Departments {
		if d.Name == name {
			return d.Name, true
		}
		for _, t := range d.Teams {
			if t.Name == name {
				return d.Name, true
			}
		}
	}
	return "", false
}
