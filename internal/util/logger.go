package util

import (
	"strings"

	"go.uber.org/zap"
)

// NewLogger returns a json production logger when env is "production" and a
// console development logger otherwise. Callers own the final Sync.
func NewLogger(env string) *zap.SugaredLogger {
	if strings.EqualFold(env, "production") {
		return zap.Must(zap.NewProduction()).Sugar()
	}
	return zap.Must(zap.NewDevelopment()).Sugar()
}
