package httpclient

// Service identifies one of the platform's backend services. Resource
// ownership and API roots are keyed off this enum rather than free-form
// strings, so a request cannot be routed to a service that was never defined.
type Service int

const (
	ServiceGateway Service = iota
	ServiceController
	ServiceEDA
	ServiceGalaxy
)

// String returns the service name as used in log output and error messages.
func (s Service) String() string {
	switch s {
	case ServiceGateway:
		return "gateway"
	case ServiceController:
		return "controller"
	case ServiceEDA:
		return "eda"
	case ServiceGalaxy:
		return "galaxy"
	default:
		return "unknown"
	}
}

// APIRoot returns the versioned API root path for the service, relative to
// the configured base URL.
func (s Service) APIRoot() string {
	switch s {
	case ServiceGateway:
		return "/api/gateway/v1"
	case ServiceController:
		return "/api/controller/v2"
	case ServiceEDA:
		return "/api/eda/v1"
	case ServiceGalaxy:
		return "/api/galaxy/v3"
	default:
		return ""
	}
}

// Services lists every known backend service.
var Services = []Service{ServiceGateway, ServiceController, ServiceEDA, ServiceGalaxy}
