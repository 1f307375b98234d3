package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"apptrack-engine/internal/insights"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Analytics struct {
		Months         int    `yaml:"months"`
		Weeks          int    `yaml:"weeks"`
		GroupLimit     int    `yaml:"group_limit"`
		WeeklyGoal     int    `yaml:"weekly_goal"`
		RefreshSeconds int    `yaml:"refresh_seconds"`
		Dimension      string `yaml:"dimension"` // company | industry | job_type
	} `yaml:"analytics"`

	// Insights overrides the built-in policy table when non-empty.
	Insights insights.Policy `yaml:"insights"`
}

func Default() Config {
	var cfg Config
	cfg.App.Port = 38472
	cfg.App.DataDir = "."
	cfg.Analytics.Months = 12
	cfg.Analytics.Weeks = 8
	cfg.Analytics.GroupLimit = 10
	cfg.Analytics.WeeklyGoal = 5
	cfg.Analytics.RefreshSeconds = 60
	cfg.Analytics.Dimension = "company"
	cfg.Insights = insights.DefaultPolicy()
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Policy returns the effective insight policy: the config's table when rules
// are present, the built-in default otherwise.
func (c Config) Policy() insights.Policy {
	if len(c.Insights.Rules) == 0 {
		return insights.DefaultPolicy()
	}
	return c.Insights
}
