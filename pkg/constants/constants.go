// Package constants provides shared constants for the mortgage-compare application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// BalanceClampTolerance is the remaining-balance threshold below which a
	// schedule balance is clamped to zero to avoid a floating-point tail.
	BalanceClampTolerance = 1.0
)

// Loan parameter defaults and limits
const (
	// DefaultPmiCancelLtv is the default loan-to-value percentage at which
	// PMI is assumed to cancel.
	DefaultPmiCancelLtv = 80.0

	// MaxReasonableTermMonths is the longest term offered in practice; terms
	// beyond this produce a validation warning rather than an error.
	MaxReasonableTermMonths = 480

	// HighRateWarningPercent is the annual rate above which a warning is
	// emitted since such rates usually indicate a data-entry mistake.
	HighRateWarningPercent = 25.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for
	// comparison CSV files (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
