package cli

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aapctl/aapctl/internal/common/httpclient"
	"github.com/aapctl/aapctl/internal/resolver"
)

func TestBuildBody(t *testing.T) {
	body, err := buildBody([]string{"name=infra", "scm_type=git"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"infra","scm_type":"git"}`, string(body))

	// Integers and booleans keep their JSON type.
	body, err = buildBody([]string{"name=web01", "inventory=3", "enabled=false"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"web01","inventory":3,"enabled":false}`, string(body))

	// Dotted keys become nested objects.
	body, err = buildBody([]string{"variables.ansible_port=22"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"variables":{"ansible_port":22}}`, string(body))

	// A value containing '=' splits on the first one only.
	body, err = buildBody([]string{"description=a=b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"description":"a=b"}`, string(body))

	_, err = buildBody([]string{"nonsense"})
	assert.ErrorIs(t, err, httpclient.ErrConfiguration)

	_, err = buildBody([]string{"=value"})
	assert.ErrorIs(t, err, httpclient.ErrConfiguration)
}

func TestAsNotFound(t *testing.T) {
	notFound := httpclient.ErrAPI.Msg("Not found.").SetStatusCode(http.StatusNotFound)
	err := asNotFound(notFound, resolver.KindProject, "infra")
	require.ErrorIs(t, err, httpclient.ErrResourceNotFound)
	assert.Contains(t, err.Error(), `"infra"`)

	// Other API errors pass through untouched.
	badRequest := httpclient.ErrAPI.Msg("bad input").SetStatusCode(http.StatusBadRequest)
	err = asNotFound(badRequest, resolver.KindProject, "infra")
	assert.ErrorIs(t, err, httpclient.ErrAPI)
	assert.NotErrorIs(t, err, httpclient.ErrResourceNotFound)

	authErr := httpclient.ErrAuthentication.Msg("denied").SetStatusCode(http.StatusForbidden)
	err = asNotFound(authErr, resolver.KindProject, "infra")
	assert.ErrorIs(t, err, httpclient.ErrAuthentication)
}

func TestNeedsConnection(t *testing.T) {
	version := newVersionCmd()
	assert.False(t, needsConnection(version))

	list := newListCmd(resourceCommands[0])
	assert.True(t, needsConnection(list))
}
