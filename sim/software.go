package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tycoon-sim/tycoon/sim/bounded"
	"github.com/tycoon-sim/tycoon/sim/calendar"
)

// Architecture is the predominant architecture of the product.
type Architecture string

const (
	ProofOfConcept Architecture = "proof-of-concept"
	Monolith       Architecture = "monolith"
	Microservices  Architecture = "microservices"
	EventDriven    Architecture = "event-driven"
)

// MonetizationModel is how the product earns money.
type MonetizationModel string

const (
	OpenSource  MonetizationModel = "open-source"
	Freemium    MonetizationModel = "freemium"
	FreeTier    MonetizationModel = "free-tier"
	Proprietary MonetizationModel = "proprietary"
)

// ValidArchitectures is the set of recognized architecture names.
var ValidArchitectures = map[string]bool{
	string(ProofOfConcept): true, string(Monolith): true, string(Microservices): true, string(EventDriven): true,
}

// ValidMonetizationModels is the set of recognized monetization model names.
var ValidMonetizationModels = map[string]bool{
	string(OpenSource): true, string(Freemium): true, string(FreeTier): true, string(Proprietary): true,
}

// LinesPerDevDay is the output of one fully focused developer per day.
const LinesPerDevDay = 250

// complexityAfterFeatureWork is where feature work leaves code complexity.
const complexityAfterFeatureWork bounded.Percent = 50

// Software is the product being built and sold. Active users can be far more
// than customers depending on the company direction.
//
// Not safe for concurrent use.
type Software struct {
	linesOfCode      uint32
	ageOfCode        uint32 // weeks
	complexityOfCode bounded.Percent
	featureRichness  bounded.Percent
	easeOfUse        bounded.Percent
	components       uint16 // nominally 1..100, not enforced
	services         uint16 // nominally 1..100, not enforced
	dependencies     uint16 // nominally 1..100, not enforced
	costOfService    uint32
	architecture     Architecture

	customerSatisfaction          bounded.Percent
	customers                     uint32
	activeUsers                   uint64
	capacityPercentageActiveUsers bounded.Percent
	percentageFreeUsers           bounded.Percent
	monetizationModel             MonetizationModel

	releases            uint32
	lastReleaseYearWeek calendar.YearWeek
	reliability         bounded.Percent
	technicalDebt       bounded.Percent

	rng *rand.Rand
}

// SoftwareOption configures a Software at construction.
type SoftwareOption func(*Software)

// WithRNG sets the source of the random draws made by AddCustomers.
func WithRNG(rng *rand.Rand) SoftwareOption {
	return func(s *Software) {
		s.rng = rng
	}
}

// NewSoftware creates a product from its four seed values. Everything else
// starts at its default: proof-of-concept, proprietary, no customers, no
// releases, reliability 100. Panics if complexity is not a valid Percent.
func NewSoftware(linesOfCode, ageOfCode uint32, complexity bounded.Percent, costOfService uint32, opts ...SoftwareOption) *Software {
	if !complexity.Valid() {
		panic(fmt.Sprintf("NewSoftware: complexity %d outside 0..100", complexity))
	}
	s := &Software{
		linesOfCode:         linesOfCode,
		ageOfCode:           ageOfCode,
		complexityOfCode:    complexity,
		costOfService:       costOfService,
		architecture:        ProofOfConcept,
		monetizationModel:   Proprietary,
		lastReleaseYearWeek: Epoch,
		reliability:         bounded.Max,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewPartitionedRNG(NewSimulationKey(DefaultSeed)).ForSubsystem(SubsystemCustomers)
	}
	return s
}

// === Derived metrics ===

// Quality is 100 for code too small or simple to have quality problems
// (complexity < 10, fewer than 2 services, or fewer than 5 components) and 0
// otherwise. Development capacity depends on exactly these two values.
func (s *Software) Quality() bounded.Percent {
	if s.complexityOfCode < 10 || s.services < 2 || s.components < 5 {
		return bounded.Max
	}
	return bounded.Min
}

// UsabilityFactor averages ease of use and feature richness, less technical
// debt, floored at 0. Unreleased software has no usability.
func (s *Software) UsabilityFactor() uint {
	if s.releases == 0 {
		return 0
	}
	usability := (s.easeOfUse.Int()+s.featureRichness.Int())/2 - s.technicalDebt.Int()
	if usability < 0 {
		return 0
	}
	return uint(usability)
}

// MarketPopularity combines customers and active-user capacity, adjusted once
// by how long ago the last release was as seen from current.
func (s *Software) MarketPopularity(current calendar.YearWeek) uint {
	if s.releases == 0 {
		return 0
	}

	popularity := (uint(s.customers) + uint(s.capacityPercentageActiveUsers)) / 2

	weeks := calendar.WeeksBetween(s.lastReleaseYearWeek, current)
	switch {
	case weeks < 1:
	case weeks < 10:
		popularity += 15
	case weeks < 20:
		popularity += 5
	case weeks < 40:
		popularity /= 2
	default:
		popularity /= 4
	}
	return popularity
}

// === Mutators ===

// AddCustomers adds count customers. For B2B sales each customer brings a
// random number of active users, count*r1*r2*20 in total with r1 and r2
// uniform in [0,1); otherwise each customer is one active user. Overflowing
// either counter fails with ErrInvariantViolation and changes nothing.
func (s *Software) AddCustomers(count uint32, b2b bool) error {
	if count > math.MaxUint32-s.customers {
		return fmt.Errorf("%w: add %d customers to %d", ErrInvariantViolation, count, s.customers)
	}

	users := uint64(count)
	if b2b {
		randFactor := s.rng.Float64()
		randUsers := s.rng.Float64()
		users = uint64(float64(count) * randFactor * randUsers * 20)
	}
	if users > math.MaxUint64-s.activeUsers {
		return fmt.Errorf("%w: add %d active users to %d", ErrInvariantViolation, users, s.activeUsers)
	}

	s.customers += count
	s.activeUsers += users
	return nil
}

// RemoveCustomers removes count customers.
//
// Removing no more than the current customers clears both customers and
// active users. Removing more scales active users by the removal ratio and
// then subtracts count from customers; that subtraction always underflows, so
// this path fails with ErrDivisionByZero when the ratio cannot be formed and
// ErrInvariantViolation otherwise. A failed call changes nothing.
func (s *Software) RemoveCustomers(count uint32) error {
	if count <= s.customers {
		s.customers = 0
		s.activeUsers = 0
		return nil
	}

	if s.customers == 0 {
		return fmt.Errorf("%w: remove %d customers: ratio over 0 customers", ErrDivisionByZero, count)
	}
	factor := float64(count) / float64(s.customers)
	if divisor := uint64(float64(s.activeUsers) * factor); divisor == 0 {
		return fmt.Errorf("%w: remove %d customers: %d active users scale to 0", ErrDivisionByZero, count, s.activeUsers)
	}
	return fmt.Errorf("%w: remove %d customers exceeds %d", ErrInvariantViolation, count, s.customers)
}

// WorkOnFeatures adds the code written by numDevs developers spending
// devFocus percent of their time for days, and resets complexity to 50.
// Effective developers are rounded down before output is counted. If the
// code base would exceed MaxUint32 lines nothing changes and
// ErrInvariantViolation is returned.
func (s *Software) WorkOnFeatures(numDevs uint16, devFocus bounded.Percent, days uint16) error {
	effectiveDevs := uint64(numDevs) * uint64(devFocus) / 100
	lines := effectiveDevs * LinesPerDevDay * uint64(days)
	if total := uint64(s.linesOfCode) + lines; total > math.MaxUint32 {
		return fmt.Errorf("%w: feature work adds %d lines to %d", ErrInvariantViolation, lines, s.linesOfCode)
	}
	s.linesOfCode += uint32(lines)
	s.complexityOfCode = complexityAfterFeatureWork
	return nil
}

// Refactor is reserved for restructuring rules. Currently a no-op.
func (s *Software) Refactor() {}

// BugFix is reserved for defect rules. Currently a no-op.
func (s *Software) BugFix() {}

// AddLines grows the code base by lines. Overflow fails with
// ErrInvariantViolation.
func (s *Software) AddLines(lines uint32) error {
	if lines > math.MaxUint32-s.linesOfCode {
		return fmt.Errorf("%w: add %d lines to %d", ErrInvariantViolation, lines, s.linesOfCode)
	}
	s.linesOfCode += lines
	return nil
}

// RemoveLines shrinks the code base by lines. Removing more than exist fails
// with ErrInvariantViolation.
func (s *Software) RemoveLines(lines uint32) error {
	if lines > s.linesOfCode {
		return fmt.Errorf("%w: remove %d lines from %d", ErrInvariantViolation, lines, s.linesOfCode)
	}
	s.linesOfCode -= lines
	return nil
}

// AddAge ages the code by weeks. Overflow fails with ErrInvariantViolation.
func (s *Software) AddAge(weeks uint32) error {
	if weeks > math.MaxUint32-s.ageOfCode {
		return fmt.Errorf("%w: age %d weeks by %d", ErrInvariantViolation, s.ageOfCode, weeks)
	}
	s.ageOfCode += weeks
	return nil
}

// AddComplexity raises complexity. Going above 100 fails with
// ErrInvariantViolation.
func (s *Software) AddComplexity(complexity uint) error {
	v, err := s.complexityOfCode.Add(complexity)
	if err != nil {
		return fmt.Errorf("%w: add complexity: %w", ErrInvariantViolation, err)
	}
	s.complexityOfCode = v
	return nil
}

// RemoveComplexity lowers complexity. Going below 0 fails with
// ErrInvariantViolation.
func (s *Software) RemoveComplexity(complexity uint) error {
	v, err := s.complexityOfCode.Sub(complexity)
	if err != nil {
		return fmt.Errorf("%w: remove complexity: %w", ErrInvariantViolation, err)
	}
	s.complexityOfCode = v
	return nil
}

// ReduceReliability lowers reliability by n. Nothing in the model raises it.
func (s *Software) ReduceReliability(n uint) error {
	v, err := s.reliability.Sub(n)
	if err != nil {
		return fmt.Errorf("%w: reduce reliability: %w", ErrInvariantViolation, err)
	}
	s.reliability = v
	return nil
}

// Release ships a new version at the given calendar point.
func (s *Software) Release(at calendar.YearWeek) {
	s.releases++
	s.lastReleaseYearWeek = at
}

// SetArchitecture changes the architecture. Unknown names fail.
func (s *Software) SetArchitecture(a Architecture) error {
	if !ValidArchitectures[string(a)] {
		return fmt.Errorf("%w: unknown architecture %q", ErrInvariantViolation, a)
	}
	s.architecture = a
	return nil
}

// SetMonetizationModel changes how the product is sold. Unknown names fail.
func (s *Software) SetMonetizationModel(m MonetizationModel) error {
	if !ValidMonetizationModels[string(m)] {
		return fmt.Errorf("%w: unknown monetization model %q", ErrInvariantViolation, m)
	}
	s.monetizationModel = m
	return nil
}

// SetComponents sets the component count, loosely 1..100 and not enforced.
func (s *Software) SetComponents(n uint16) {
	s.components = n
}

// SetServices sets the service count, loosely 1..100 and not enforced.
func (s *Software) SetServices(n uint16) {
	s.services = n
}

// SetDependencies sets the dependency count, loosely 1..100 and not enforced.
func (s *Software) SetDependencies(n uint16) {
	s.dependencies = n
}

// SetCapacityPercentageActiveUsers sets the share of capacity used by active users.
func (s *Software) SetCapacityPercentageActiveUsers(p bounded.Percent) error {
	return setPercent(&s.capacityPercentageActiveUsers, "capacity percentage active users", p)
}

// SetFeatureRichness sets feature richness; p must be a valid Percent.
func (s *Software) SetFeatureRichness(p bounded.Percent) error {
	return setPercent(&s.featureRichness, "feature richness", p)
}

// SetEaseOfUse sets ease of use; p must be a valid Percent.
func (s *Software) SetEaseOfUse(p bounded.Percent) error {
	return setPercent(&s.easeOfUse, "ease of use", p)
}

// SetTechnicalDebt sets technical debt; p must be a valid Percent.
func (s *Software) SetTechnicalDebt(p bounded.Percent) error {
	return setPercent(&s.technicalDebt, "technical debt", p)
}

// SetPercentageFreeUsers sets share of users on a free plan; p must be a valid Percent.
func (s *Software) SetPercentageFreeUsers(p bounded.Percent) error {
	return setPercent(&s.percentageFreeUsers, "percentage free users", p)
}

// SetCustomerSatisfaction sets customer satisfaction; p must be a valid Percent.
func (s *Software) SetCustomerSatisfaction(p bounded.Percent) error {
	return setPercent(&s.customerSatisfaction, "customer satisfaction", p)
}

func setPercent(dst *bounded.Percent, name string, p bounded.Percent) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %s: %w: %d", ErrInvariantViolation, name, bounded.ErrOutOfRange, p)
	}
	*dst = p
	return nil
}

// === Accessors ===

func (s *Software) LinesOfCode() uint32                   { return s.linesOfCode }
func (s *Software) AgeOfCode() uint32                     { return s.ageOfCode }
func (s *Software) ComplexityOfCode() bounded.Percent     { return s.complexityOfCode }
func (s *Software) FeatureRichness() bounded.Percent      { return s.featureRichness }
func (s *Software) EaseOfUse() bounded.Percent            { return s.easeOfUse }
func (s *Software) Components() uint16                    { return s.components }
func (s *Software) Services() uint16                      { return s.services }
func (s *Software) Dependencies() uint16                  { return s.dependencies }
func (s *Software) CostOfService() uint32                 { return s.costOfService }
func (s *Software) Architecture() Architecture            { return s.architecture }
func (s *Software) CustomerSatisfaction() bounded.Percent { return s.customerSatisfaction }
func (s *Software) Customers() uint32                     { return s.customers }
func (s *Software) ActiveUsers() uint64                   { return s.activeUsers }
func (s *Software) PercentageFreeUsers() bounded.Percent  { return s.percentageFreeUsers }
func (s *Software) MonetizationModel() MonetizationModel  { return s.monetizationModel }
func (s *Software) Releases() uint32                      { return s.releases }
func (s *Software) Reliability() bounded.Percent          { return s.reliability }
func (s *Software) TechnicalDebt() bounded.Percent        { return s.technicalDebt }

func (s *Software) LastReleaseYearWeek() calendar.YearWeek {
	return s.lastReleaseYearWeek
}

func (s *Software) CapacityPercentageActiveUsers() bounded.Percent {
	return s.capacityPercentageActiveUsers
}
