package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lehigh-university-libraries/acextract/internal/operation"
	"gopkg.in/yaml.v3"
)

const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// RunConfig represents the configuration section of the run report
type RunConfig struct {
	Input        string `yaml:"input"`
	Output       string `yaml:"output"`
	Mode         string `yaml:"mode"`
	VectorPolicy string `yaml:"vectorpolicy"`
	Timestamp    string `yaml:"timestamp"`
}

// ItemResult represents the outcome of a single named image
type ItemResult struct {
	Set        string `yaml:"set"`
	Name       string `yaml:"name"`
	Status     string `yaml:"status"`
	Path       string `yaml:"path,omitempty"`
	Descriptor string `yaml:"descriptor,omitempty"`
	Error      string `yaml:"error,omitempty"`
}

// RunSpec is the complete run report
type RunSpec struct {
	Config  RunConfig    `yaml:"config"`
	Results []ItemResult `yaml:"results"`
}

// Collector records results for a report
type Collector struct {
	results []ItemResult
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Report implements operation.Reporter
func (c *Collector) Report(r operation.Result) {
	item := ItemResult{
		Set:        r.Set,
		Name:       r.Name,
		Status:     StatusOK,
		Path:       r.Path,
		Descriptor: r.Descriptor,
	}
	switch {
	case r.Err != nil:
		item.Status = StatusFailed
		item.Error = r.Err.Error()
	case r.Skipped:
		item.Status = StatusSkipped
	}
	c.results = append(c.results, item)
}

// Results returns the collected items in report order
func (c *Collector) Results() []ItemResult {
	return c.results
}

// SaveToYAML writes the collected results to path
func (c *Collector) SaveToYAML(path string, config RunConfig) error {
	if config.Timestamp == "" {
		config.Timestamp = time.Now().Format("2006-01-02_15-04-05")
	}

	spec := RunSpec{
		Config:  config,
		Results: c.results,
	}
	if spec.Results == nil {
		spec.Results = []ItemResult{}
	}

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}

	return nil
}

// LoadYAML reads a report written by SaveToYAML
func LoadYAML(path string) (*RunSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var spec RunSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &spec, nil
}
