package resolver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aapctl/aapctl/internal/common/httpclient"
)

// testEnv wraps an httptest server with one client per service and a request
// log, so tests can assert which calls a resolution issued.
type testEnv struct {
	requests []string
	mux      *http.ServeMux
	gateway  *httpclient.Client
	ctrl     *httpclient.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{mux: http.NewServeMux()}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.requests = append(env.requests, r.URL.Path+"?"+r.URL.RawQuery)
		env.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := &httpclient.Config{Hostname: srv.URL, Token: "abc", RequestTimeout: 5, ValidateCerts: true}

	var err error
	env.gateway, err = httpclient.NewClient(cfg, httpclient.ServiceGateway)
	require.NoError(t, err)
	env.ctrl, err = httpclient.NewClient(cfg, httpclient.ServiceController)
	require.NoError(t, err)
	return env
}

func (e *testEnv) handle(path string, status int, body string) {
	e.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func TestResolveByName(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/gateway/v1/organizations/", http.StatusOK,
		`{"count":1,"results":[{"id":1,"name":"Default"}]}`)

	id, err := Resolve(env.gateway, KindOrganization, "Default", httpclient.ServiceGateway)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	// One filtered list query, no ID-phase verification.
	require.Len(t, env.requests, 1)
	assert.Equal(t, "/api/gateway/v1/organizations/?name=Default", env.requests[0])
}

func TestResolveNameMissFallsBackToID(t *testing.T) {
	env := newTestEnv(t)
	env.mux.HandleFunc("/api/controller/v2/projects/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":0,"results":[]}`))
	})
	env.handle("/api/controller/v2/projects/42/", http.StatusOK, `{"id":42,"name":"infra"}`)

	id, err := Resolve(env.ctrl, KindProject, "42", httpclient.ServiceController)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	require.Len(t, env.requests, 2)
	assert.Equal(t, "/api/controller/v2/projects/?name=42", env.requests[0])
	assert.Equal(t, "/api/controller/v2/projects/42/?", env.requests[1])
}

func TestResolveDigitStringNameWins(t *testing.T) {
	// An organization literally named "42" resolves in the name phase; its
	// real ID is returned, not the digits the user typed.
	env := newTestEnv(t)
	env.handle("/api/gateway/v1/organizations/", http.StatusOK,
		`{"count":1,"results":[{"id":7,"name":"42"}]}`)

	id, err := Resolve(env.gateway, KindOrganization, "42", httpclient.ServiceGateway)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	require.Len(t, env.requests, 1)
}

func TestResolveNotAName(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/controller/v2/hosts/", http.StatusOK, `{"count":0,"results":[]}`)

	_, err := Resolve(env.ctrl, KindHost, "ghost.example.com", httpclient.ServiceController)
	require.ErrorIs(t, err, httpclient.ErrResourceNotFound)
	// The message carries the identifier exactly as the user supplied it.
	assert.Contains(t, err.Error(), `"ghost.example.com"`)
	require.Len(t, env.requests, 1)
}

func TestResolveMissingID(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/controller/v2/inventories/", http.StatusOK, `{"count":0,"results":[]}`)
	env.handle("/api/controller/v2/inventories/99/", http.StatusNotFound, `{"detail":"Not found."}`)

	_, err := Resolve(env.ctrl, KindInventory, "99", httpclient.ServiceController)
	require.ErrorIs(t, err, httpclient.ErrResourceNotFound)
	assert.NotErrorIs(t, err, httpclient.ErrAPI)
	require.Len(t, env.requests, 2)
}

func TestResolveWrongService(t *testing.T) {
	env := newTestEnv(t)

	// Hosts live on the controller; asking the gateway is a structural
	// mistake and must not issue any HTTP call.
	_, err := Resolve(env.gateway, KindHost, "web01", httpclient.ServiceGateway)
	require.ErrorIs(t, err, httpclient.ErrConfiguration)
	assert.Empty(t, env.requests)
}

func TestResolveNamePhaseErrorFallsThrough(t *testing.T) {
	env := newTestEnv(t)
	env.mux.HandleFunc("/api/controller/v2/credentials/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"bad filter"}`))
	})
	env.handle("/api/controller/v2/credentials/7/", http.StatusOK, `{"id":7}`)

	id, err := Resolve(env.ctrl, KindCredential, "7", httpclient.ServiceController)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	require.Len(t, env.requests, 2)
}

func TestResolveAuthenticationErrorSurfaces(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/controller/v2/credentials/", http.StatusUnauthorized, `{"detail":"Invalid token"}`)

	_, err := Resolve(env.ctrl, KindCredential, "deploy-key", httpclient.ServiceController)
	assert.ErrorIs(t, err, httpclient.ErrAuthentication)
}

func TestResolveFirstMatchWins(t *testing.T) {
	// Multiple name matches take the first result, uniformly across kinds,
	// instance groups included.
	env := newTestEnv(t)
	env.handle("/api/controller/v2/instance_groups/", http.StatusOK,
		`{"count":2,"results":[{"id":3,"name":"default"},{"id":9,"name":"default"}]}`)

	id, err := Resolve(env.ctrl, KindInstanceGroup, "default", httpclient.ServiceController)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	require.Len(t, env.requests, 1)
}

func TestResolveJobSkipsNamePhase(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/controller/v2/jobs/12/", http.StatusOK, `{"id":12}`)

	id, err := Resolve(env.ctrl, KindJob, "12", httpclient.ServiceController)
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	// Straight to ID verification; jobs have no name lookup.
	require.Len(t, env.requests, 1)
	assert.Equal(t, "/api/controller/v2/jobs/12/?", env.requests[0])

	_, err = Resolve(env.ctrl, KindJob, "deploy", httpclient.ServiceController)
	require.ErrorIs(t, err, httpclient.ErrResourceNotFound)
	require.Len(t, env.requests, 1)
}

func TestResolveWrappers(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/gateway/v1/users/", http.StatusOK,
		`{"count":1,"results":[{"id":5,"username":"admin"}]}`)

	id, err := ResolveUser(env.gateway, "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.Equal(t, "/api/gateway/v1/users/?username=admin", env.requests[0])

	// Wrappers route the ownership check through the client's own binding.
	_, err = ResolveProject(env.gateway, "infra")
	assert.ErrorIs(t, err, httpclient.ErrConfiguration)
}

func TestKindTable(t *testing.T) {
	assert.Equal(t, httpclient.ServiceGateway, KindTeam.Service())
	assert.Equal(t, httpclient.ServiceController, KindExecutionEnvironment.Service())
	assert.Equal(t, "inventories/", KindInventory.Endpoint())
	assert.Equal(t, "instance_groups/", KindInstanceGroup.Endpoint())
}
