package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Errors from the external providers the core consumes (generative text,
// mail transport). The quality gate always recovers from these locally; mail
// failures degrade a notification outcome, never the request.
var (
	ErrProviderUnavailable  = errors.New("provider unavailable")
	ErrProviderResponse     = errors.New("unparseable provider response")
	ErrProviderUnconfigured = errors.New("provider not configured")
	ErrMailDelivery         = errors.New("mail delivery failed")
)

func NewProviderUnavailableError(provider string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrProviderUnavailable,
		Details:    fmt.Sprintf("%s is unreachable", provider),
		Cause:      cause,
	}
}

func NewProviderResponseError(provider string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrProviderResponse,
		Details:    fmt.Sprintf("%s returned a response that could not be parsed", provider),
		Cause:      cause,
	}
}

func NewMailDeliveryError(recipient string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrMailDelivery,
		Details:    fmt.Sprintf("failed to deliver mail to %s", recipient),
		Cause:      cause,
	}
}

func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

func IsMailDelivery(err error) bool {
	return errors.Is(err, ErrMailDelivery)
}
