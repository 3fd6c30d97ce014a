// Package metrics exports the simulation state as Prometheus gauges. A
// Recorder is fed by the world's update step and can be scraped through its
// registry or written to a node-exporter textfile at the end of a run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tycoon-sim/tycoon/sim"
	"github.com/tycoon-sim/tycoon/sim/company"
)

const namespace = "tycoon"

// Recorder holds one run's collectors on a private registry, so that several
// runs in one process never collide.
type Recorder struct {
	registry *prometheus.Registry

	Ticks               prometheus.Counter
	GameWeek            prometheus.Gauge
	Cash                prometheus.Gauge
	Headcount           *prometheus.GaugeVec
	DevelopmentCapacity prometheus.Gauge
	Customers           prometheus.Gauge
	ActiveUsers         prometheus.Gauge
	LinesOfCode         prometheus.Gauge
	Quality             prometheus.Gauge
	Usability           prometheus.Gauge
	Popularity          prometheus.Gauge
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		Ticks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "world",
			Name:      "ticks_total",
			Help:      "Ticks processed by the world.",
		}),
		GameWeek: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "world",
			Name:      "game_weeks",
			Help:      "Game weeks elapsed since the calendar epoch.",
		}),
		Cash: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "company",
			Name:      "cash",
			Help:      "Cash in bank; negative when overdrawn.",
		}),
		Headcount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "company",
			Name:      "headcount",
			Help:      "Employees per role.",
		}, []string{"role"}),
		DevelopmentCapacity: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "company",
			Name:      "development_capacity",
			Help:      "Development capacity given current software reliability and quality.",
		}),
		Customers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "software",
			Name:      "customers",
			Help:      "Paying customers.",
		}),
		ActiveUsers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "software",
			Name:      "active_users",
			Help:      "Active users across all customers.",
		}),
		LinesOfCode: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "software",
			Name:      "lines_of_code",
			Help:      "Size of the code base.",
		}),
		Quality: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "software",
			Name:      "quality_percent",
			Help:      "Code quality, 0-100.",
		}),
		Usability: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "software",
			Name:      "usability_factor",
			Help:      "Usability factor; 0 before the first release.",
		}),
		Popularity: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "software",
			Name:      "market_popularity",
			Help:      "Market popularity at the current game week.",
		}),
	}
}

// Update records the state seen at one tick. It has the shape of
// sim.UpdateFunc and is attached with sim.WithUpdate(r.Update).
func (r *Recorder) Update(info sim.TickInfo, c sim.CompanyView, s sim.SoftwareView) error {
	r.Ticks.Inc()
	r.GameWeek.Set(float64(info.Tick / sim.TicksPerWeek))

	r.Cash.Set(float64(c.CashInBank()))
	counts := make(map[company.Role]int, len(company.Roles))
	for _, e := range c.Employees() {
		counts[e.Type.Role()]++
	}
	for _, role := range company.Roles {
		r.Headcount.WithLabelValues(string(role)).Set(float64(counts[role]))
	}
	r.DevelopmentCapacity.Set(c.DevelopmentCapacity(s.Reliability(), s.Quality()))

	r.Customers.Set(float64(s.Customers()))
	r.ActiveUsers.Set(float64(s.ActiveUsers()))
	r.LinesOfCode.Set(float64(s.LinesOfCode()))
	r.Quality.Set(float64(s.Quality()))
	r.Usability.Set(float64(s.UsabilityFactor()))
	r.Popularity.Set(float64(s.MarketPopularity(info.YearWeek)))
	return nil
}

// Registry returns the registry holding the recorder's collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current values in the text exposition format,
// for node-exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
