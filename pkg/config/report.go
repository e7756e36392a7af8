package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ReportConfig is the YAML report configuration: the bill hashtags the
// topay report tracks, the candidate dues rates and member counts for the
// statistics projections, and the HTML page template.
type ReportConfig struct {
	Bills        []string `yaml:"bills"`
	DuesRates    []string `yaml:"dues_rates"`
	MemberCounts []int64  `yaml:"member_counts"`
	Template     string   `yaml:"template"`
	PageOut      string   `yaml:"page_out"`
}

// DefaultReportConfig is used when no report configuration file is given.
var DefaultReportConfig = ReportConfig{
	Bills:    []string{"rent", "electricity", "internet", "water"},
	Template: "balance.html.tmpl",
	PageOut:  "balance.html",
}

// LoadReport reads a ReportConfig from a YAML file. An empty path yields
// the defaults.
func LoadReport(path string) (*ReportConfig, error) {
	if path == "" {
		cfg := DefaultReportConfig
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report config: %w", err)
	}

	var cfg ReportConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse report config: %w", err)
	}
	if len(cfg.Bills) == 0 {
		cfg.Bills = DefaultReportConfig.Bills
	}
	if cfg.Template == "" {
		cfg.Template = DefaultReportConfig.Template
	}
	if cfg.PageOut == "" {
		cfg.PageOut = DefaultReportConfig.PageOut
	}
	return &cfg, nil
}

// Rates parses the configured candidate dues rates as exact decimals.
func (c *ReportConfig) Rates() ([]decimal.Decimal, error) {
	rates := make([]decimal.Decimal, 0, len(c.DuesRates))
	for _, s := range c.DuesRates {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid dues rate %q: %w", s, err)
		}
		rates = append(rates, d)
	}
	return rates, nil
}
