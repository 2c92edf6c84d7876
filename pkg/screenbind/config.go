package screenbind

import (
	"errors"
	"os"
	"strconv"
	"sync"
)

// Config contains the resource ceilings and logging options for the
// engine. The three limits (tokens, parse depth, eval depth) are enforced
// independently at their own layers; none substitutes for another.
type Config struct {
	// MaxTokens caps the number of tokens a single expression may produce.
	MaxTokens int
	// MaxParseDepth caps structural nesting (ternaries, groups, array
	// literals) at parse time.
	MaxParseDepth int
	// MaxEvalDepth caps the live recursion depth during evaluation.
	MaxEvalDepth int
	// MaxArguments caps the argument count of a single call or array literal.
	MaxArguments int
	// MaxArrayLength caps collection-function inputs; longer arrays are
	// silently truncated.
	MaxArrayLength int
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off).
	LogLevel string
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxTokens:      500,
		MaxParseDepth:  10,
		MaxEvalDepth:   10,
		MaxArguments:   50,
		MaxArrayLength: 10000,
		LogLevel:       "info",
	}
}

// ConfigFromEnvironment creates a configuration from environment variables.
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	if val := os.Getenv("SCREENBIND_MAX_TOKENS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxTokens = n
		}
	}
	if val := os.Getenv("SCREENBIND_MAX_PARSE_DEPTH"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxParseDepth = n
		}
	}
	if val := os.Getenv("SCREENBIND_MAX_EVAL_DEPTH"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxEvalDepth = n
		}
	}
	if val := os.Getenv("SCREENBIND_MAX_ARGUMENTS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxArguments = n
		}
	}
	if val := os.Getenv("SCREENBIND_MAX_ARRAY_LENGTH"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxArrayLength = n
		}
	}
	if val := os.Getenv("SCREENBIND_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	return config
}

// Validate checks that every limit is positive.
func (c *Config) Validate() error {
	if c.MaxTokens <= 0 {
		return errors.New("MaxTokens must be positive")
	}
	if c.MaxParseDepth <= 0 {
		return errors.New("MaxParseDepth must be positive")
	}
	if c.MaxEvalDepth <= 0 {
		return errors.New("MaxEvalDepth must be positive")
	}
	if c.MaxArguments <= 0 {
		return errors.New("MaxArguments must be positive")
	}
	if c.MaxArrayLength <= 0 {
		return errors.New("MaxArrayLength must be positive")
	}
	return nil
}

// GetGlobalConfig returns the current global configuration.
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}
	copied := *globalConfig
	return &copied
}

// SetGlobalConfig replaces the global configuration. Invalid configs are
// rejected.
func SetGlobalConfig(config *Config) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return err
	}

	globalConfigMutex.Lock()
	defer globalConfigMutex.Unlock()
	copied := *config
	globalConfig = &copied
	return nil
}
