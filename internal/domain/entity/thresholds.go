package entity

// Thresholds are the business cut-offs used by classification, display
// statuses and alerting. Zero fields fall back to the defaults.
type Thresholds struct {
	CPAAlertPct            float64 `json:"cpa_alert_pct" yaml:"cpa_alert_pct" toml:"cpa_alert_pct"`
	ConversionRateAlertPct float64 `json:"conversion_rate_alert_pct" yaml:"conversion_rate_alert_pct" toml:"conversion_rate_alert_pct"`
	PacingMediumPts        float64 `json:"pacing_medium_pts" yaml:"pacing_medium_pts" toml:"pacing_medium_pts"`
	PacingHighPts          float64 `json:"pacing_high_pts" yaml:"pacing_high_pts" toml:"pacing_high_pts"`
	AtRiskCPAMultiplier    float64 `json:"at_risk_cpa_multiplier" yaml:"at_risk_cpa_multiplier" toml:"at_risk_cpa_multiplier"`
	AtRiskROAS             float64 `json:"at_risk_roas" yaml:"at_risk_roas" toml:"at_risk_roas"`
	TargetROAS             float64 `json:"target_roas" yaml:"target_roas" toml:"target_roas"`
	PacingUnderPct         float64 `json:"pacing_under_pct" yaml:"pacing_under_pct" toml:"pacing_under_pct"`
	PacingOverPct          float64 `json:"pacing_over_pct" yaml:"pacing_over_pct" toml:"pacing_over_pct"`
}

// DefaultThresholds returns the stock alerting and classification cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CPAAlertPct:            20,
		ConversionRateAlertPct: 15,
		PacingMediumPts:        15,
		PacingHighPts:          25,
		AtRiskCPAMultiplier:    1.2,
		AtRiskROAS:             0.8,
		TargetROAS:             1,
		PacingUnderPct:         90,
		PacingOverPct:          110,
	}
}

// WithDefaults fills every unset field from DefaultThresholds.
func (t Thresholds) WithDefaults() Thresholds {
	d := DefaultThresholds()
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&t.CPAAlertPct, d.CPAAlertPct)
	fill(&t.ConversionRateAlertPct, d.ConversionRateAlertPct)
	fill(&t.PacingMediumPts, d.PacingMediumPts)
	fill(&t.PacingHighPts, d.PacingHighPts)
	fill(&t.AtRiskCPAMultiplier, d.AtRiskCPAMultiplier)
	fill(&t.AtRiskROAS, d.AtRiskROAS)
	fill(&t.TargetROAS, d.TargetROAS)
	fill(&t.PacingUnderPct, d.PacingUnderPct)
	fill(&t.PacingOverPct, d.PacingOverPct)
	return t
}
