package app

import (
	"github.com/pvlab/pvassignments/pkg/config"
	"github.com/pvlab/pvassignments/pkg/poa"
)

// runScenario evaluates the single worked example for every panel.
func (a *App) runScenario(cfg *config.ConfigData, report *Report) error {
	g := cfg.Scenario.Geometry()

	for _, pd := range cfg.Panels {
		panel := pd.Panel()
		for _, w := range panel.Check(g) {
			a.logger.Warnw("implausible scenario input", "panel", pd.Name, "issue", w.String())
		}

		c := poa.Decompose(panel, g)
		report.Scenario[pd.Name] = c

		a.logger.Infow("plane-of-array irradiance",
			"panel", pd.Name,
			"orientation", panel.String(),
			"sun_azimuth", g.SunAzimuth,
			"sun_zenith", g.SunZenith,
			"angle_of_incidence", c.AOI,
			"direct_w_m2", c.Direct,
			"diffuse_w_m2", c.Diffuse,
			"ground_reflected_w_m2", c.Ground,
			"gpoa_w_m2", c.Total(),
		)
	}
	return nil
}
