package httpclient

import (
	"net/http"

	"github.com/aapctl/aapctl/internal/common/apperrors"
)

// Base client error. Everything the transport or resolver can return matches
// this under errors.Is.
var (
	ErrClient apperrors.Error = apperrors.New("client error").SetStatusCode(http.StatusInternalServerError)
)

var (
	// ErrConfiguration covers missing or malformed connection settings and
	// structurally impossible requests (e.g. resolving a resource against a
	// service that does not own it). Never retried.
	ErrConfiguration apperrors.Error = ErrClient.New("configuration error").SetStatusCode(http.StatusBadRequest)

	// ErrConnection covers transport-level failures: DNS, refused
	// connections, timeouts. The retry budget is already exhausted by the
	// time this surfaces.
	ErrConnection apperrors.Error = ErrClient.New("unable to reach server").SetStatusCode(http.StatusBadGateway)

	// ErrAuthentication covers 401/403 responses from the backend.
	ErrAuthentication apperrors.Error = ErrClient.New("authentication failed").SetStatusCode(http.StatusUnauthorized)

	// ErrAPI covers every other non-2xx response. The HTTP status code is
	// available through StatusCode().
	ErrAPI apperrors.Error = ErrClient.New("api request failed").SetStatusCode(http.StatusBadRequest)

	// ErrResourceNotFound is returned when a resource cannot be found under
	// any interpretation of the user-supplied identifier.
	ErrResourceNotFound apperrors.Error = ErrClient.New("resource not found").SetStatusCode(http.StatusNotFound)
)
