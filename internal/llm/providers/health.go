package providers

import (
	"errors"

	"github.com/biograph-ai/biograph/internal/types"
)

// healthFromPing maps the outcome of a 1-token ping onto a health status.
// Transient failures (retryable errors such as rate limits) report degraded;
// anything else reports unhealthy.
func healthFromPing(name string, err error) types.HealthStatus {
	if err == nil {
		return types.Healthy(name + " reachable")
	}

	var appErr *types.AppError
	if errors.As(err, &appErr) && appErr.Retryable {
		return types.Degraded(err.Error())
	}
	return types.Unhealthy(err.Error())
}
