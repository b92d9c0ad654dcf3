package logging

import "go.uber.org/zap"

// New builds the process logger. Stack traces are kept at error level so
// failed requests land in the console with full detail.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.DisableCaller = true
	return cfg.Build()
}
