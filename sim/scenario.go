package sim

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/tycoon-sim/tycoon/sim/bounded"
	"github.com/tycoon-sim/tycoon/sim/company"
)

// maxMarketScalar is the upper end of the documented market scalar range.
// Larger values are accepted with a warning.
const maxMarketScalar = 1000

// Scenario is the complete start state of a run: the world, the product, the
// company, and the seed for random draws.
type Scenario struct {
	Seed     int64            `yaml:"seed" toml:"seed"`
	World    WorldScenario    `yaml:"world" toml:"world"`
	Software SoftwareScenario `yaml:"software" toml:"software"`
	Company  CompanyScenario  `yaml:"company" toml:"company"`
}

// WorldScenario holds the market scalars and timing.
type WorldScenario struct {
	GlobalEconomicFactors uint16        `yaml:"global_economic_factors" toml:"global_economic_factors"`
	CompetitionInMarket   uint16        `yaml:"competition_in_market" toml:"competition_in_market"`
	JobMarket             uint16        `yaml:"job_market" toml:"job_market"`
	Speed                 time.Duration `yaml:"speed" toml:"speed"` // e.g. "100ms"
	InitialTicks          uint64        `yaml:"initial_ticks" toml:"initial_ticks"`
}

// SoftwareScenario holds the product's seed values. Percent-like fields are
// plain ints so that out-of-range input reaches Validate instead of wrapping.
type SoftwareScenario struct {
	LinesOfCode       uint32 `yaml:"lines_of_code" toml:"lines_of_code"`
	AgeOfCode         uint32 `yaml:"age_of_code" toml:"age_of_code"`
	ComplexityOfCode  int    `yaml:"complexity_of_code" toml:"complexity_of_code"`
	CostOfService     uint32 `yaml:"cost_of_service" toml:"cost_of_service"`
	Architecture      string `yaml:"architecture" toml:"architecture"`
	MonetizationModel string `yaml:"monetization_model" toml:"monetization_model"`
}

// CompanyScenario holds the company's opening balance, direction and staff.
type CompanyScenario struct {
	Cash      int64              `yaml:"cash" toml:"cash"`
	Direction string             `yaml:"direction" toml:"direction"`
	Employees []EmployeeScenario `yaml:"employees" toml:"employees"`
}

// EmployeeScenario describes one employee hired at the start of a run.
type EmployeeScenario struct {
	Type   string `yaml:"type" toml:"type"`
	Name   string `yaml:"name" toml:"name"`
	Age    int    `yaml:"age" toml:"age"`
	Skill  int    `yaml:"skill" toml:"skill"`
	Salary uint32 `yaml:"salary" toml:"salary"`
	Morale int    `yaml:"morale" toml:"morale"`
}

// DefaultScenario returns the classic start state: a fresh proof-of-concept,
// 100 in the bank, three developers and an administrator.
func DefaultScenario() Scenario {
	return Scenario{
		Seed: DefaultSeed,
		World: WorldScenario{
			GlobalEconomicFactors: 100,
			CompetitionInMarket:   100,
			JobMarket:             100,
			Speed:                 100 * time.Millisecond,
		},
		Software: SoftwareScenario{
			Architecture:      string(ProofOfConcept),
			MonetizationModel: string(Proprietary),
		},
		Company: CompanyScenario{
			Cash:      100,
			Direction: string(company.B2B),
			Employees: []EmployeeScenario{
				{Type: string(company.Developer), Name: "Developer 1", Age: 50, Skill: 90, Salary: 200, Morale: 90},
				{Type: string(company.Developer), Name: "Developer 2", Age: 23, Skill: 35, Salary: 89, Morale: 77},
				{Type: string(company.Developer), Name: "Developer 3", Age: 30, Skill: 70, Salary: 100, Morale: 85},
				{Type: string(company.Administrator), Name: "Admin 1", Age: 37, Skill: 80, Salary: 80, Morale: 65},
			},
		},
	}
}

// LoadScenario reads a scenario file on top of DefaultScenario. The format
// follows the extension: .yaml/.yml or .toml. Unknown keys are errors in both.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario: %w", err)
	}

	s := DefaultScenario()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, &s)
	case ".toml":
		err = decodeTOML(data, &s)
	default:
		return Scenario{}, fmt.Errorf("scenario %s: unsupported format %q (want .yaml, .yml or .toml)", path, ext)
	}
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return s, nil
}

func decodeYAML(data []byte, s *Scenario) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(s); err != nil {
		return err
	}
	return nil
}

func decodeTOML(data []byte, s *Scenario) error {
	// Employees listed in the file replace the defaults rather than merging
	// into them element by element.
	defaults := s.Company.Employees
	s.Company.Employees = nil
	md, err := toml.Decode(string(data), s)
	if err != nil {
		return err
	}
	if !md.IsDefined("company", "employees") {
		s.Company.Employees = defaults
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks enum names, speed, and percent ranges. Market scalars above
// 1000 only log a warning since nothing reads them yet.
func (s Scenario) Validate() error {
	if s.World.Speed <= 0 {
		return fmt.Errorf("world.speed must be > 0, got %s", s.World.Speed)
	}
	for name, v := range map[string]uint16{
		"global_economic_factors": s.World.GlobalEconomicFactors,
		"competition_in_market":   s.World.CompetitionInMarket,
		"job_market":              s.World.JobMarket,
	} {
		if v > maxMarketScalar {
			logrus.Warnf("world.%s = %d is above the usual 0-%d range", name, v, maxMarketScalar)
		}
	}

	if _, err := bounded.New(s.Software.ComplexityOfCode); err != nil {
		return fmt.Errorf("software.complexity_of_code: %w", err)
	}
	if !ValidArchitectures[s.Software.Architecture] {
		return fmt.Errorf("software.architecture: unknown %q", s.Software.Architecture)
	}
	if !ValidMonetizationModels[s.Software.MonetizationModel] {
		return fmt.Errorf("software.monetization_model: unknown %q", s.Software.MonetizationModel)
	}

	if !company.IsValidDirection(s.Company.Direction) {
		return fmt.Errorf("company.direction: unknown %q", s.Company.Direction)
	}
	for i, e := range s.Company.Employees {
		if !company.IsValidEmployeeType(e.Type) {
			return fmt.Errorf("company.employees[%d].type: unknown %q", i, e.Type)
		}
		if e.Age < 0 || e.Age > 255 {
			return fmt.Errorf("company.employees[%d].age: %d outside 0..255", i, e.Age)
		}
		if _, err := bounded.New(e.Skill); err != nil {
			return fmt.Errorf("company.employees[%d].skill: %w", i, err)
		}
		if _, err := bounded.New(e.Morale); err != nil {
			return fmt.Errorf("company.employees[%d].morale: %w", i, err)
		}
	}
	return nil
}

// Build validates the scenario and constructs the world, company and
// software it describes. The software's random draws come from the
// customers subsystem of a PartitionedRNG seeded with Seed.
func (s Scenario) Build(opts ...WorldOption) (*World, *company.Company, *Software, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, nil, err
	}

	rng := NewPartitionedRNG(NewSimulationKey(s.Seed))
	software := NewSoftware(s.Software.LinesOfCode, s.Software.AgeOfCode,
		bounded.MustNew(s.Software.ComplexityOfCode), s.Software.CostOfService,
		WithRNG(rng.ForSubsystem(SubsystemCustomers)))
	if err := software.SetArchitecture(Architecture(s.Software.Architecture)); err != nil {
		return nil, nil, nil, err
	}
	if err := software.SetMonetizationModel(MonetizationModel(s.Software.MonetizationModel)); err != nil {
		return nil, nil, nil, err
	}

	c := company.New(s.Company.Cash, company.Direction(s.Company.Direction))
	for _, e := range s.Company.Employees {
		if _, err := c.Hire(company.EmployeeType(e.Type), e.Name, uint8(e.Age),
			bounded.MustNew(e.Skill), e.Salary, bounded.MustNew(e.Morale)); err != nil {
			return nil, nil, nil, err
		}
	}

	w := NewWorld(s.World.GlobalEconomicFactors, s.World.CompetitionInMarket, s.World.JobMarket,
		s.World.Speed, s.World.InitialTicks, opts...)

	logrus.Infof("Scenario built: seed=%d, %d employees, cash=%d, direction=%s",
		s.Seed, len(s.Company.Employees), s.Company.Cash, s.Company.Direction)
	return w, c, software, nil
}
