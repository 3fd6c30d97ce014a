package sim

import (
	"time"

	"github.com/google/uuid"

	"github.com/tycoon-sim/tycoon/sim/bounded"
	"github.com/tycoon-sim/tycoon/sim/calendar"
	"github.com/tycoon-sim/tycoon/sim/company"
)

// CompanyView is the part of the company the core reads during a tick.
// *company.Company implements it.
type CompanyView interface {
	Employees() map[uuid.UUID]company.Employee
	Direction() company.Direction
	CashInBank() int64
	DevelopmentCapacity(reliability, quality bounded.Percent) float64
}

// SoftwareView is the read-only surface of Software.
type SoftwareView interface {
	LinesOfCode() uint32
	AgeOfCode() uint32
	ComplexityOfCode() bounded.Percent
	FeatureRichness() bounded.Percent
	EaseOfUse() bounded.Percent
	Components() uint16
	Services() uint16
	Dependencies() uint16
	CostOfService() uint32
	Architecture() Architecture
	CustomerSatisfaction() bounded.Percent
	Customers() uint32
	ActiveUsers() uint64
	CapacityPercentageActiveUsers() bounded.Percent
	PercentageFreeUsers() bounded.Percent
	MonetizationModel() MonetizationModel
	Releases() uint32
	LastReleaseYearWeek() calendar.YearWeek
	Reliability() bounded.Percent
	TechnicalDebt() bounded.Percent

	Quality() bounded.Percent
	UsabilityFactor() uint
	MarketPopularity(current calendar.YearWeek) uint
}

var (
	_ CompanyView  = (*company.Company)(nil)
	_ SoftwareView = (*Software)(nil)
)

// TickInfo describes the tick being processed.
type TickInfo struct {
	Tick     uint64            // game ticks after the advance
	YearWeek calendar.YearWeek // calendar point of Tick
	Now      time.Time         // wall-clock time the tick is recorded at
}
