package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/locvowork/office_management_sample/internal/domain"
)

// Column limits from the office DDL.
const (
	maxDeptNameLen     = 100
	maxLocationLen     = 100
	maxPersonNameLen   = 100
	maxEmailLen        = 150
	maxBusinessNameLen = 150
	maxIndustryLen     = 100
)

var (
	MinSalaryAmount  = decimal.NewFromInt(30000)
	MaxSalaryAmount  = decimal.NewFromInt(150000)
	MinAnnualRevenue = decimal.NewFromInt(1_000_000)
	MaxAnnualRevenue = decimal.NewFromInt(50_000_000)
)

// maxUniqueAttempts bounds how often a colliding fake value is redrawn
// before a numeric suffix is used instead.
const maxUniqueAttempts = 25

// FakeGenerator produces synthetic office rows. Department names and
// employee emails are unique across everything one generator returns.
type FakeGenerator struct {
	faker     *gofakeit.Faker
	deptNames map[string]struct{}
	emails    map[string]struct{}
}

// NewFakeGenerator creates a generator. A zero seed draws a random one.
func NewFakeGenerator(seed uint64) *FakeGenerator {
	return &FakeGenerator{
		faker:     gofakeit.New(seed),
		deptNames: make(map[string]struct{}),
		emails:    make(map[string]struct{}),
	}
}

// Department returns a department with a company-style name and a city.
func (g *FakeGenerator) Department() domain.Department {
	name := uniqueValue(g.deptNames, func() string {
		return truncate(g.faker.Company(), maxDeptNameLen)
	}, func(v string, n int) string {
		suffix := fmt.Sprintf(" %d", n)
		return truncate(v, maxDeptNameLen-len(suffix)) + suffix
	})
	location := truncate(g.faker.City(), maxLocationLen)
	return domain.Department{Name: name, Location: &location}
}

// Employee returns an employee hired on hireDate and assigned to a
// department drawn uniformly from deptIDs, or to none when deptIDs is empty.
func (g *FakeGenerator) Employee(deptIDs []int64, hireDate time.Time) domain.Employee {
	email := uniqueValue(g.emails, func() string {
		return strings.ToLower(truncate(g.faker.Email(), maxEmailLen))
	}, func(v string, n int) string {
		local, host, ok := strings.Cut(v, "@")
		if !ok {
			return fmt.Sprintf("%s%d", v, n)
		}
		suffix := fmt.Sprintf("%d", n)
		return truncate(local, maxEmailLen-len(host)-len(suffix)-1) + suffix + "@" + host
	})

	e := domain.Employee{
		FirstName: truncate(g.faker.FirstName(), maxPersonNameLen),
		LastName:  truncate(g.faker.LastName(), maxPersonNameLen),
		Email:     email,
		HireDate:  hireDate,
	}
	if len(deptIDs) > 0 {
		id := g.PickID(deptIDs)
		e.DepartmentID = &id
	}
	return e
}

// Salary returns a salary for an employee drawn uniformly from empIDs.
// empIDs must not be empty.
func (g *FakeGenerator) Salary(empIDs []int64, effectiveFrom time.Time) domain.Salary {
	return domain.Salary{
		EmployeeID:    g.PickID(empIDs),
		Amount:        g.money(MinSalaryAmount, MaxSalaryAmount),
		EffectiveFrom: effectiveFrom,
	}
}

// Business returns a business with a random name, industry and revenue.
func (g *FakeGenerator) Business() domain.Business {
	industry := truncate(g.faker.JobTitle(), maxIndustryLen)
	return domain.Business{
		Name:     truncate(g.faker.Company(), maxBusinessNameLen),
		Industry: &industry,
		AnnualRevenue: decimal.NullDecimal{
			Decimal: g.money(MinAnnualRevenue, MaxAnnualRevenue),
			Valid:   true,
		},
	}
}

// PickID chooses uniformly among ids.
func (g *FakeGenerator) PickID(ids []int64) int64 {
	return ids[g.faker.Number(0, len(ids)-1)]
}

// money draws a uniform amount in [min, max] rounded to cents.
func (g *FakeGenerator) money(min, max decimal.Decimal) decimal.Decimal {
	v := decimal.NewFromFloat(g.faker.Float64Range(min.InexactFloat64(), max.InexactFloat64())).Round(2)
	if v.LessThan(min) {
		return min
	}
	if v.GreaterThan(max) {
		return max
	}
	return v
}

// uniqueValue draws from gen until it finds a value not in seen, falling back
// to withSuffix after maxUniqueAttempts collisions.
func uniqueValue(seen map[string]struct{}, gen func() string, withSuffix func(v string, n int) string) string {
	var v string
	for i := 0; i < maxUniqueAttempts; i++ {
		v = gen()
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			return v
		}
	}
	for n := 2; ; n++ {
		candidate := withSuffix(v, n)
		if _, dup := seen[candidate]; !dup {
			seen[candidate] = struct{}{}
			return candidate
		}
	}
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
