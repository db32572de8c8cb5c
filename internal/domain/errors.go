package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNoCandidates   = errors.New("no candidate destinations")
	ErrSuperseded     = errors.New("superseded by a newer update")
	ErrNotFound       = errors.New("not found")
)

// Which step of the meetup pipeline a provider failure belongs to.
type ErrorKind string

const (
	KindResolution ErrorKind = "resolution"
	KindSearch     ErrorKind = "search"
	KindDetails    ErrorKind = "details"
	KindScoring    ErrorKind = "scoring"
	KindRouting    ErrorKind = "routing"
)

// ProviderError is a non-success answer from the external maps provider.
// Status carries the provider's status code verbatim (e.g. "ZERO_RESULTS").
type ProviderError struct {
	Kind    ErrorKind
	Subject string
	Status  string
	Err     error
}

func (e *ProviderError) Error() string {
	var msg string
	switch e.Kind {
	case KindResolution:
		msg = fmt.Sprintf("unable to find requested location %q", e.Subject)
	case KindSearch:
		msg = "unable to find nearby destination locations"
	case KindDetails:
		msg = fmt.Sprintf("unable to fetch details for place %q", e.Subject)
	case KindScoring:
		msg = fmt.Sprintf("unable to calculate route distance to %s", e.Subject)
	case KindRouting:
		msg = fmt.Sprintf("unable to fulfill route request %s", e.Subject)
	default:
		msg = "maps provider request failed"
	}
	return fmt.Sprintf("%s. Error: %s", msg, e.Status)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsProviderError reports whether err is a provider failure of the given kind.
func IsProviderError(err error, kind ErrorKind) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == kind
}
