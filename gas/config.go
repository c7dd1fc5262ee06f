package gas

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
)

// validate is a package-level singleton; building a validator is expensive.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("native_cost_name", func(fl validator.FieldLevel) bool {
		_, ok := ParseNativeCostIndex(fl.Field().String())
		return ok
	})
	return v
}

// Config is the host-supplied gas schedule as read from YAML.
//
//	natives:
//	  length: {instruction: 98, memory: 1}
//	  sha3_256: {instruction: 64, memory: 1}
//
// Natives missing from the config keep their DefaultCostTable price.
type Config struct {
	Instructions map[string]GasCost `yaml:"instructions,omitempty" json:"instructions,omitempty" validate:"omitempty,dive,keys,required,endkeys"`
	Natives      map[string]GasCost `yaml:"natives" json:"natives" validate:"required,min=1,dive,keys,native_cost_name,endkeys"`
}

// LoadConfig decodes and validates a YAML gas schedule.
// Unknown top-level fields are rejected.
func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, vmerrors.Newf(vmerrors.InvalidGasSchedule, "empty gas schedule")
		}
		return nil, vmerrors.Wrap(vmerrors.InvalidGasSchedule, fmt.Errorf("decode gas schedule: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads a YAML gas schedule from path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gas schedule: %w", err)
	}
	return LoadConfig(bytes.NewReader(data))
}

// Validate checks the struct tags of the config.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return vmerrors.Wrap(vmerrors.InvalidGasSchedule, fmt.Errorf("gas schedule validation failed: %w", err))
	}
	return nil
}

// CostTable builds the schedule described by the config.
func (c *Config) CostTable() *CostTable {
	table := DefaultCostTable()
	for name, cost := range c.Instructions {
		table.Instructions[name] = cost
	}
	for name, cost := range c.Natives {
		if idx, ok := ParseNativeCostIndex(name); ok {
			table.Natives[idx] = cost
		}
	}
	return table
}
