package logger

import (
	"go.uber.org/zap"
)

// NewNamed creates a named zap logger appropriate for the app environment:
// JSON production config in production, console development config otherwise.
func NewNamed(appEnv, name string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if appEnv == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
