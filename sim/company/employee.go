package company

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tycoon-sim/tycoon/sim/bounded"
)

// EmployeeType is the job an employee is hired for. The set is closed.
type EmployeeType string

const (
	Developer       EmployeeType = "developer"
	Tester          EmployeeType = "tester"
	Administrator   EmployeeType = "administrator"
	Accountant      EmployeeType = "accountant"
	Marketer        EmployeeType = "marketer"
	Salesperson     EmployeeType = "salesperson"
	ProductManager  EmployeeType = "product-manager"
	ProductOwner    EmployeeType = "product-owner"
	CEO             EmployeeType = "ceo"
	CTO             EmployeeType = "cto"
	FinanceDirector EmployeeType = "finance-director"
	CMO             EmployeeType = "cmo"
	CPO             EmployeeType = "cpo"
)

// Role groups employee types for headcount reporting.
type Role string

const (
	RoleDevelopment    Role = "development"
	RoleTesting        Role = "testing"
	RoleAdministration Role = "administration"
	RoleMarketing      Role = "marketing"
	RoleSales          Role = "sales"
	RoleProduct        Role = "product"
)

// Roles lists every Role in display order.
var Roles = []Role{RoleDevelopment, RoleTesting, RoleAdministration, RoleMarketing, RoleSales, RoleProduct}

var roleOf = map[EmployeeType]Role{
	Developer:       RoleDevelopment,
	CTO:             RoleDevelopment,
	Tester:          RoleTesting,
	Administrator:   RoleAdministration,
	Accountant:      RoleAdministration,
	CEO:             RoleAdministration,
	FinanceDirector: RoleAdministration,
	Marketer:        RoleMarketing,
	CMO:             RoleMarketing,
	Salesperson:     RoleSales,
	ProductManager:  RoleProduct,
	ProductOwner:    RoleProduct,
	CPO:             RoleProduct,
}

// IsValidEmployeeType reports whether name is a recognized employee type.
func IsValidEmployeeType(name string) bool {
	_, ok := roleOf[EmployeeType(name)]
	return ok
}

// Role returns the reporting role of t. Panics on an unknown type; Hire
// keeps those off the roster.
func (t EmployeeType) Role() Role {
	r, ok := roleOf[t]
	if !ok {
		panic(fmt.Sprintf("unhandled employee type %q", t))
	}
	return r
}

// Employee is one member of the company roster.
type Employee struct {
	ID     uuid.UUID
	Type   EmployeeType
	Name   string
	Age    uint8
	Skill  bounded.Percent
	Salary uint32 // per week
	Morale bounded.Percent
}

func (e Employee) String() string {
	return fmt.Sprintf("%s (%s, skill %s)", e.Name, e.Type, e.Skill)
}
