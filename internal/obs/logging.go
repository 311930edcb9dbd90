// Package obs contains observability utilities such as logging.
package obs

import (
	"go.uber.org/zap"
)

// NewLogger builds the service logger. Verbose selects the human-readable
// development config; otherwise JSON production output at info level.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
