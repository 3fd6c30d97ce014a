// Package company is the company collaborator the simulation core reads
// during a tick: cash, direction, the employee roster, and the development
// capacity derived from software reliability and quality.
//
// The core only reads a Company. Mutators here are called by the driver in
// response to player commands.
package company

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tycoon-sim/tycoon/sim/bounded"
)

// Direction is the market the company sells into.
type Direction string

const (
	B2B   Direction = "B2B"
	B2C   Direction = "B2C"
	B2B2C Direction = "B2B2C"
)

// directionCycle is the order CycleDirection walks through.
var directionCycle = []Direction{B2B, B2C, B2B2C}

// IsValidDirection reports whether name is a recognized Direction.
func IsValidDirection(name string) bool {
	for _, d := range directionCycle {
		if string(d) == name {
			return true
		}
	}
	return false
}

// ErrUnknownEmployeeType is returned by Hire for a type outside the closed set.
var ErrUnknownEmployeeType = errors.New("unknown employee type")

// Company holds cash, direction and roster. Not safe for concurrent use.
type Company struct {
	cash      int64
	direction Direction
	employees map[uuid.UUID]Employee
}

// New creates a company with the given starting cash and direction.
func New(cash int64, direction Direction) *Company {
	if !IsValidDirection(string(direction)) {
		panic(fmt.Sprintf("unknown company direction %q", direction))
	}
	return &Company{
		cash:      cash,
		direction: direction,
		employees: make(map[uuid.UUID]Employee),
	}
}

// Hire adds an employee with a fresh id and returns it. An unknown type is
// rejected with ErrUnknownEmployeeType and the roster is left unchanged.
func (c *Company) Hire(typ EmployeeType, name string, age uint8, skill bounded.Percent, salary uint32, morale bounded.Percent) (Employee, error) {
	if !IsValidEmployeeType(string(typ)) {
		return Employee{}, fmt.Errorf("hire %q: %w %q", name, ErrUnknownEmployeeType, typ)
	}
	e := Employee{
		ID:     uuid.New(),
		Type:   typ,
		Name:   name,
		Age:    age,
		Skill:  skill,
		Salary: salary,
		Morale: morale,
	}
	c.employees[e.ID] = e
	return e, nil
}

// Fire removes the employee with id. Returns false if there was none.
func (c *Company) Fire(id uuid.UUID) bool {
	if _, ok := c.employees[id]; !ok {
		return false
	}
	delete(c.employees, id)
	return true
}

// Employees returns a copy of the roster keyed by employee id.
func (c *Company) Employees() map[uuid.UUID]Employee {
	out := make(map[uuid.UUID]Employee, len(c.employees))
	for id, e := range c.employees {
		out[id] = e
	}
	return out
}

// Headcount returns the number of employees per role. Every role is present.
func (c *Company) Headcount() map[Role]int {
	counts := make(map[Role]int, len(Roles))
	for _, r := range Roles {
		counts[r] = 0
	}
	for _, e := range c.employees {
		counts[e.Type.Role()]++
	}
	return counts
}

// Direction returns the market the company currently sells into.
func (c *Company) Direction() Direction {
	return c.direction
}

// CycleDirection moves to the next direction, wrapping around.
func (c *Company) CycleDirection() {
	for i, d := range directionCycle {
		if d == c.direction {
			c.direction = directionCycle[(i+1)%len(directionCycle)]
			return
		}
	}
}

// CashInBank returns the current balance.
func (c *Company) CashInBank() int64 {
	return c.cash
}

// AddCash deposits amount.
func (c *Company) AddCash(amount int64) {
	c.cash += amount
}

// RemoveCash subtracts amount. The balance may go negative (overdraft).
func (c *Company) RemoveCash(amount int64) {
	c.cash -= amount
}

// WeeklyPayroll is the sum of all salaries.
func (c *Company) WeeklyPayroll() int64 {
	var total int64
	for _, e := range c.employees {
		total += int64(e.Salary)
	}
	return total
}

// DevelopmentCapacity is the combined skill of the development role scaled
// by software reliability and quality. Pure; no state is changed.
func (c *Company) DevelopmentCapacity(reliability, quality bounded.Percent) float64 {
	var skill float64
	for _, e := range c.employees {
		if e.Type.Role() == RoleDevelopment {
			skill += float64(e.Skill)
		}
	}
	return skill * reliability.Fraction() * quality.Fraction()
}
