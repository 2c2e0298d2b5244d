package config

import (
	"fmt"

	"github.com/pteich/kubeq/internal/log"
	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// Output formats understood by the printers
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Config represents the tool's configuration
type Config struct {
	Kubeconfig  string      `yaml:"kubeconfig"`
	Context     string      `yaml:"context"`
	Namespaces  []string    `yaml:"namespaces"`
	Output      string      `yaml:"output"`
	Concurrency int         `yaml:"concurrency"`
	Log         log.Options `yaml:"log"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output:      OutputTable,
		Concurrency: 1,
		Log:         *log.NewDefaultOptions(),
	}
}

// AddPFlags registers flags overriding the file values. Defaults are taken
// from the current config, so load the file first.
func (c *Config) AddPFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Kubeconfig, "kubeconfig", c.Kubeconfig, "path to the kubeconfig file")
	fs.StringVar(&c.Context, "context", c.Context, "the name of the kubeconfig context to use")
	fs.StringSliceVarP(&c.Namespaces, "namespace", "n", c.Namespaces, "namespaces to use, \"all\" expands to every namespace")
	fs.StringVarP(&c.Output, "output", "o", c.Output, "output format, one of table, json or yaml")
	fs.IntVar(&c.Concurrency, "concurrency", c.Concurrency, "number of parallel list calls for wildcard queries")
	c.Log.AddPFlags(fs)
}

// Validate checks the configuration and reports all problems at once
func (c *Config) Validate() error {
	var errs []error

	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		errs = append(errs, fmt.Errorf("invalid output format %q", c.Output))
	}

	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}

	for _, ns := range c.Namespaces {
		if ns == "" {
			errs = append(errs, fmt.Errorf("namespace must not be empty"))
			break
		}
	}

	if err := c.Log.Validate(); err != nil {
		errs = append(errs, err)
	}

	return utilerrors.NewAggregate(errs)
}
