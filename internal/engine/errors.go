package engine

import (
	"errors"
	"fmt"
)

// ErrNotRunning is returned by Step when the engine has not been seeded or
// the current run already finished.
var ErrNotRunning = errors.New("engine: step called outside running phase")

// Configuration error codes.
const (
	CodeBadBoard    = "BAD_BOARD"
	CodeBadSeed     = "BAD_SEED"
	CodeOutOfBounds = "OUT_OF_BOUNDS"
	CodeAgentOnWall = "AGENT_ON_WALL"
	CodeGoalOnWall  = "GOAL_ON_WALL"
	CodeBadRule     = "BAD_RULE"
	CodeBadLimit    = "BAD_LIMIT"
)

// ConfigurationError reports malformed run inputs detected at seed time.
type ConfigurationError struct {
	Code    string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func configErr(code, format string, args ...any) error {
	return &ConfigurationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsConfigurationError reports whether err (or anything it wraps) is a
// ConfigurationError, optionally with the given code. An empty code matches
// any configuration error.
func IsConfigurationError(err error, code string) bool {
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		return false
	}
	return code == "" || cfgErr.Code == code
}
