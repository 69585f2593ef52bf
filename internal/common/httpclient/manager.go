package httpclient

// Manager hands out one transport client per backend service, all bound to
// the same configuration. Clients are built lazily on first access and cached
// for the rest of the process; the CLI is single-threaded so no locking is
// needed. Commands never construct clients directly.
type Manager struct {
	config  *Config
	clients map[Service]*Client
}

// NewManager creates a manager around a shared configuration.
func NewManager(cfg *Config) *Manager {
	return &Manager{
		config:  cfg,
		clients: make(map[Service]*Client),
	}
}

// Config returns the shared configuration.
func (m *Manager) Config() *Config {
	return m.config
}

// Client returns the cached transport client for the service, building it on
// first access.
func (m *Manager) Client(service Service) (*Client, error) {
	if c, ok := m.clients[service]; ok {
		return c, nil
	}
	c, err := NewClient(m.config, service)
	if err != nil {
		return nil, err
	}
	m.clients[service] = c
	return c, nil
}

// Gateway returns the client for the identity/org service.
func (m *Manager) Gateway() (*Client, error) {
	return m.Client(ServiceGateway)
}

// Controller returns the client for the job/orchestration service.
func (m *Manager) Controller() (*Client, error) {
	return m.Client(ServiceController)
}

// EDA returns the client for the event-driven-automation service.
func (m *Manager) EDA() (*Client, error) {
	return m.Client(ServiceEDA)
}

// Galaxy returns the client for the content service.
func (m *Manager) Galaxy() (*Client, error) {
	return m.Client(ServiceGalaxy)
}

// Reset discards all cached clients. Used when the configuration changes
// mid-process, e.g. in tests.
func (m *Manager) Reset() {
	m.clients = make(map[Service]*Client)
}
