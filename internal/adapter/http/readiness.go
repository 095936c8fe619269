package http

import (
	"context"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/hashicorp/go-multierror"
)

// ReadinessGroup is ready only when every member is ready.
type ReadinessGroup []sharedobs.ReadinessChecker

func (g ReadinessGroup) CheckReadiness(ctx context.Context) error {
	var result *multierror.Error
	for _, c := range g {
		if err := c.CheckReadiness(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
