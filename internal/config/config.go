// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/mortgage-compare/pkg/constants"
	"github.com/iwvelando/mortgage-compare/pkg/mortgage"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-compare.
type Configuration struct {
	Loans   []LoanSpec
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoanSpec is one loan scenario as written in the config file. Pointer
// fields distinguish an omitted key from an explicit zero, which matters for
// the resolution rules in the mortgage package.
type LoanSpec struct {
	Label                 string
	TermMonths            int
	AnnualRatePercent     float64
	SalePrice             *float64
	DownPaymentDollars    *float64
	DownPaymentPercent    *float64
	LoanAmount            *float64
	AnnualInsurance       float64
	AnnualTaxes           float64
	ExtraMonthlyPrincipal float64
	PayoffHorizonMonths   *int
	ClosingCosts          float64
	MonthlyPmiAmount      float64
	PmiCancelLtvPercent   *float64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory source, e.g. an HTTP upload.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Parameters converts the configured loan specs into mortgage parameters,
// explicitly field by field.
func (conf *Configuration) Parameters() []mortgage.Parameters {
	paramSets := make([]mortgage.Parameters, 0, len(conf.Loans))
	for _, spec := range conf.Loans {
		paramSets = append(paramSets, mortgage.Parameters{
			Label:                 spec.Label,
			TermMonths:            spec.TermMonths,
			AnnualRatePercent:     spec.AnnualRatePercent,
			SalePrice:             spec.SalePrice,
			DownPaymentDollars:    spec.DownPaymentDollars,
			DownPaymentPercent:    spec.DownPaymentPercent,
			LoanAmount:            spec.LoanAmount,
			AnnualInsurance:       spec.AnnualInsurance,
			AnnualTaxes:           spec.AnnualTaxes,
			ExtraMonthlyPrincipal: spec.ExtraMonthlyPrincipal,
			PayoffHorizonMonths:   spec.PayoffHorizonMonths,
			ClosingCosts:          spec.ClosingCosts,
			MonthlyPmiAmount:      spec.MonthlyPmiAmount,
			PmiCancelLtvPercent:   spec.PmiCancelLtvPercent,
		})
	}
	return paramSets
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard errors surface later during loan construction.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(conf.Loans) == 0 {
		warnings = append(warnings, "configuration defines no loans")
	}

	seen := make(map[string]struct{})
	for i, spec := range conf.Loans {
		if spec.Label == "" {
			warnings = append(warnings, fmt.Sprintf("loan %d has no label; comparison columns will be hard to tell apart", i+1))
			continue
		}
		if _, dup := seen[spec.Label]; dup {
			warnings = append(warnings, fmt.Sprintf("duplicate loan label '%s'", spec.Label))
		}
		seen[spec.Label] = struct{}{}

		if spec.TermMonths > constants.MaxReasonableTermMonths {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' term %d exceeds %d months",
				spec.Label, spec.TermMonths, constants.MaxReasonableTermMonths))
		}
	}

	return warnings
}
