// Package commands implements the cvcue CLI commands. The commands own
// argument tokenization and output rendering; validation and serialization
// live in the core packages.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/netkit-io/cvcue/pkg/cvcue"
	"github.com/netkit-io/cvcue/pkg/cvcueclient"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Output formats.
const (
	OutputFormatTable   = "table"
	OutputFormatJSON    = "json"
	OutputFormatCompact = "compact"
)

const defaultJSONIndent = "  "

// Static errors used throughout the commands package.
var (
	ErrInvalidFilterArg   = errors.New("invalid filter argument, expected property:operator:value")
	ErrInvalidMatchFlag   = errors.New("invalid value for --match, expected 'and' or 'or'")
	ErrUnknownOutputValue = errors.New("unknown output format, expected table, json, or compact")
)

// CreateClient builds a cvcue client from viper-resolved settings. Fields the
// user did not set stay empty so the core can fall back to the environment.
func CreateClient() (cvcue.Client, error) {
	config := &cvcue.Config{
		KeyID:       viper.GetString("key_id"),
		KeyValue:    viper.GetString("key_value"),
		ClientID:    viper.GetString("client_id"),
		BaseURL:     viper.GetString("base_url"),
		SessionFile: viper.GetString("session_file"),
		Debug:       viper.GetBool("verbose"),
		Logger:      newLogger(viper.GetBool("verbose")),
	}

	client, err := cvcueclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// newLogger returns the CLI's structured logger as a cvcue.Logger.
func newLogger(verbose bool) cvcue.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	return &zerologAdapter{logger: logger}
}

// zerologAdapter adapts zerolog to the cvcue.Logger interface.
type zerologAdapter struct {
	logger zerolog.Logger
}

func (l *zerologAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}

// BuildFilter tokenizes repeated property:operator:value arguments into a
// FilterBuilder. The value keeps its natural type: true/false become bools
// and numeric strings become numbers, everything else stays a string. Returns
// nil when no filter args were given.
func BuildFilter(match string, filterArgs []string) (*cvcue.FilterBuilder, error) {
	if len(filterArgs) == 0 {
		return nil, nil
	}

	var combinator cvcue.Combinator

	switch strings.ToLower(match) {
	case "", "and":
		combinator = cvcue.CombineAnd
	case "or":
		combinator = cvcue.CombineOr
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMatchFlag, match)
	}

	builder := cvcue.NewFilterBuilder(combinator)

	for _, arg := range filterArgs {
		parts := strings.SplitN(arg, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFilterArg, arg)
		}

		builder.Add(parts[0], parts[1], parseFilterValue(parts[2]))
	}

	return builder, nil
}

// parseFilterValue converts a CLI token to its natural scalar type.
func parseFilterValue(token string) interface{} {
	switch token {
	case "true":
		return true
	case "false":
		return false
	}

	if n, err := strconv.Atoi(token); err == nil {
		return n
	}

	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f
	}

	return token
}

// OutputJSON renders any value as indented JSON on stdout.
func OutputJSON(value interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", defaultJSONIndent)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

// OutputCompact renders rows as tab-separated lines without headers, for
// piping into other tools.
func OutputCompact(rows [][]string) error {
	for _, row := range rows {
		fmt.Println(strings.Join(row, "\t"))
	}

	return nil
}

// OutputFormat returns the active output format, validating the flag value.
func OutputFormat() (string, error) {
	output := viper.GetString("output")

	switch output {
	case "", OutputFormatTable:
		return OutputFormatTable, nil
	case OutputFormatJSON, OutputFormatCompact:
		return output, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOutputValue, output)
	}
}
