// Package routing picks the department an inquiry should be addressed to.
package routing

import (
	"strings"

	"notiguard/internal/config"
)

// Router matches questions against an ordered keyword table.
type Router struct {
	rules    []config.RoutingRule
	eligible map[string]bool
	fallback string
}

// New builds a Router. Only rules naming a department with an email address
// in the directory can match.
func New(cfg *config.DepartmentsConfig) *Router {
	if cfg == nil {
		cfg = config.DefaultDepartments()
	}

	eligible := make(map[string]bool)
	for _, name := range cfg.Directory() {
		eligible[name] = true
	}

	rules := make([]config.RoutingRule, 0, len(cfg.Routing))
	for _, r := range cfg.Routing {
		lowered := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				lowered = append(lowered, k)
			}
		}
		rules = append(rules, config.RoutingRule{Department: r.Department, Keywords: lowered})
	}

	return &Router{rules: rules, eligible: eligible, fallback: cfg.Default}
}

// Detect returns the first eligible department whose keywords occur in the
// question, or the default department.
func (r *Router) Detect(question string) string {
	q := strings.ToLower(question)
	for _, rule := range r.rules {
		if !r.eligible[rule.Department] {
			continue
		}
		for _, k := range rule.Keywords {
			if strings.Contains(q, k) {
				return rule.Department
			}
		}
	}
	return r.fallback
}

// Eligible reports whether department can receive inquiries.
func (r *Router) Eligible(department string) bool {
	return r.eligible[department]
}

var defaultRouter = New(config.DefaultDepartments())

// Detect routes question with the built-in directory.
func Detect(question string) string {
	return defaultRouter.Detect(question)
}
