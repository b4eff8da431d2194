package logging

import "go.uber.org/zap"

// New builds the process logger: a console encoder for local development,
// a JSON production encoder otherwise, matching the two-mode shape the rest
// of the pack's services configure their zap loggers with.
func New(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
