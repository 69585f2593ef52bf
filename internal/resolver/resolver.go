// Package resolver turns user-supplied resource identifiers into canonical
// numeric IDs. Commands accept either a name or a numeric ID in the same
// argument slot; the resolver tries the identifier as a name first and falls
// back to treating it as an ID, so "myproject" and "42" both work without the
// command knowing which form it was given.
package resolver

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/aapctl/aapctl/internal/common/httpclient"
)

// Kind identifies a resolvable resource type.
type Kind string

const (
	KindOrganization         Kind = "organization"
	KindTeam                 Kind = "team"
	KindUser                 Kind = "user"
	KindApplication          Kind = "application"
	KindProject              Kind = "project"
	KindInventory            Kind = "inventory"
	KindHost                 Kind = "host"
	KindGroup                Kind = "group"
	KindCredential           Kind = "credential"
	KindInstance             Kind = "instance"
	KindInstanceGroup        Kind = "instance_group"
	KindExecutionEnvironment Kind = "execution environment"
	KindJob                  Kind = "job"
	KindHostMetric           Kind = "host metric"
)

// resource fixes, per kind, the collection endpoint, the query field a name
// lookup filters on, and the backend service that owns the kind. A kind with
// an empty name field (jobs) resolves by ID only.
type resource struct {
	path      string
	nameField string
	service   httpclient.Service
}

var resources = map[Kind]resource{
	KindOrganization:         {path: "organizations/", nameField: "name", service: httpclient.ServiceGateway},
	KindTeam:                 {path: "teams/", nameField: "name", service: httpclient.ServiceGateway},
	KindUser:                 {path: "users/", nameField: "username", service: httpclient.ServiceGateway},
	KindApplication:          {path: "applications/", nameField: "name", service: httpclient.ServiceGateway},
	KindProject:              {path: "projects/", nameField: "name", service: httpclient.ServiceController},
	KindInventory:            {path: "inventories/", nameField: "name", service: httpclient.ServiceController},
	KindHost:                 {path: "hosts/", nameField: "name", service: httpclient.ServiceController},
	KindGroup:                {path: "groups/", nameField: "name", service: httpclient.ServiceController},
	KindCredential:           {path: "credentials/", nameField: "name", service: httpclient.ServiceController},
	KindInstance:             {path: "instances/", nameField: "hostname", service: httpclient.ServiceController},
	KindInstanceGroup:        {path: "instance_groups/", nameField: "name", service: httpclient.ServiceController},
	KindExecutionEnvironment: {path: "execution_environments/", nameField: "name", service: httpclient.ServiceController},
	KindJob:                  {path: "jobs/", service: httpclient.ServiceController},
	KindHostMetric:           {path: "host_metrics/", nameField: "hostname", service: httpclient.ServiceController},
}

// Endpoint returns the kind's collection endpoint, relative to its owning
// service's API root.
func (k Kind) Endpoint() string {
	return resources[k].path
}

// Service returns the backend service that owns the kind.
func (k Kind) Service() httpclient.Service {
	return resources[k].service
}

func (k Kind) String() string {
	return string(k)
}

// nameOutcome is the discriminated result of the name phase. A lookup that
// fails with an API error is not fatal; the identifier may never have been a
// name to begin with, so the ID phase still runs.
type nameOutcome int

const (
	nameFound nameOutcome = iota
	nameMiss
	nameError
)

// Resolve turns an identifier into the numeric ID of a resource of the given
// kind, querying through the given client. The service argument must match
// the kind's owning service; a mismatch is a configuration error and issues
// no HTTP call.
//
// The identifier is first tried as a name via a filtered list query; when one
// or more resources match, the first match wins (uniformly across kinds —
// the API is trusted to return the intended match first). When nothing
// matches, the identifier is reparsed as a numeric ID and verified with an
// item GET. Order matters for digit-string names: an organization literally
// named "42" is found in the name phase, and a plain ID "42" falls through to
// verification after its name lookup misses.
func Resolve(client *httpclient.Client, kind Kind, identifier string, service httpclient.Service) (int64, error) {
	res, ok := resources[kind]
	if !ok {
		return 0, httpclient.ErrConfiguration.Msg(fmt.Sprintf("unknown resource type %q", kind))
	}
	if service != res.service {
		return 0, httpclient.ErrConfiguration.Msg(fmt.Sprintf(
			"%s resources are owned by the %s service, not %s", kind, res.service, service))
	}

	if res.nameField != "" {
		outcome, id, err := resolveByName(client, res, identifier)
		switch outcome {
		case nameFound:
			return id, nil
		case nameError:
			if err != nil {
				return 0, err
			}
		}
	}

	id, err := strconv.ParseInt(identifier, 10, 64)
	if err != nil {
		return 0, notFound(kind, identifier)
	}
	if verr := verifyID(client, res, kind, identifier, id); verr != nil {
		return 0, verr
	}
	return id, nil
}

// resolveByName runs the name phase. The returned error is non-nil only for
// failures the ID phase cannot recover from (unreachable server, rejected
// credentials); plain API errors fall through silently.
func resolveByName(client *httpclient.Client, res resource, identifier string) (nameOutcome, int64, error) {
	resp, err := client.Get(res.path, map[string]string{res.nameField: identifier})
	if err != nil {
		if isFatal(err) {
			return nameError, 0, err
		}
		return nameError, 0, nil
	}

	results := gjson.GetBytes(resp.Body, "results").Array()
	if len(results) == 0 {
		return nameMiss, 0, nil
	}
	return nameFound, results[0].Get("id").Int(), nil
}

// verifyID runs the ID phase: an item GET confirming the resource exists.
// A 404 or any other API failure means the identifier resolves to nothing
// under either interpretation, so the caller sees ErrResourceNotFound rather
// than a raw transport error.
func verifyID(client *httpclient.Client, res resource, kind Kind, identifier string, id int64) error {
	_, err := client.Get(fmt.Sprintf("%s%d/", res.path, id), nil)
	if err == nil {
		return nil
	}
	if isFatal(err) {
		return err
	}
	return notFound(kind, identifier)
}

// isFatal reports whether an error cannot be recovered from by continuing the
// two-phase lookup: an unreachable server or rejected credentials fails the
// same way in both phases.
func isFatal(err error) bool {
	return errors.Is(err, httpclient.ErrConnection) || errors.Is(err, httpclient.ErrAuthentication)
}

func notFound(kind Kind, identifier string) error {
	return httpclient.ErrResourceNotFound.Msg(fmt.Sprintf("%s %q not found", kind, identifier))
}
