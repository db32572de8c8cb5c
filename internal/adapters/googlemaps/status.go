package googlemaps

import (
	"context"
	"errors"
	"fmt"
	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/platform/obs"
	"strings"
)

// Status reported when the provider gave no status of its own (transport failures).
const statusUnknown = "UNKNOWN_ERROR"

const statusZeroResults = "ZERO_RESULTS"

// call runs one provider request under the shared rate limit and turns any
// failure into a *domain.ProviderError of the given kind. Context errors are
// returned unchanged so callers can tell cancellation from provider failure.
func call[T any](
	ctx context.Context,
	p *Provider,
	op string,
	kind domain.ErrorKind,
	subject string,
	fn func(ctx context.Context) (T, error),
) (_ T, err error) {
	defer obs.Time(ctx, op)(&err)

	var zero T
	if err := p.limiter.Wait(ctx); err != nil {
		return zero, fmt.Errorf("%s: wait for rate limit: %w", op, err)
	}

	res, err := fn(ctx)
	if err != nil {
		return zero, classify(ctx, kind, subject, err)
	}

	return res, nil
}

func classify(ctx context.Context, kind domain.ErrorKind, subject string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return err
	}

	return &domain.ProviderError{
		Kind:    kind,
		Subject: subject,
		Status:  statusOf(err),
		Err:     err,
	}
}

// statusOf extracts STATUS from the client's "maps: STATUS - message" errors.
func statusOf(err error) string {
	msg := err.Error()
	rest, ok := strings.CutPrefix(msg, "maps: ")
	if !ok {
		return statusUnknown
	}

	status, _, _ := strings.Cut(rest, " ")
	if status == "" || strings.ToUpper(status) != status {
		return statusUnknown
	}

	return status
}

func providerError(kind domain.ErrorKind, subject, status string) error {
	return &domain.ProviderError{Kind: kind, Subject: subject, Status: status}
}
