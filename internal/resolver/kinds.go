package resolver

import "github.com/aapctl/aapctl/internal/common/httpclient"

// Per-kind convenience wrappers. Each routes through Resolve with the
// client's own service binding, so passing a client for the wrong service
// still trips the ownership check.

func ResolveOrganization(c *httpclient.Client, identifier string) (int64, error) {
	return Resolve(c, KindOrganization, identifier, c.Service())
}

func ResolveTeam(c *httpclient.Client, identifier string) (int64, error) {
	return Resolve(c, KindTeam, identifier, c.Service())
}

func ResolveUser(c *httpclient.Client, identifier string) (int64, error) {
	return Resolve(c, KindUser, identifier, c.Service())
}

func ResolveApplication(c *httpclient.Client, identifier string) (int64, error) {
	return Resolve(c, KindApplication, identifier, c.Service())
}

func ResolveProject(c *httpclient.Client, identifier string) (int64, error) {
	return Resolve(c, KindProject, identifier, c.Service())
}

func ResolveInventory(c *httpclient.Client, identifier string) (int64, error) {
	return Resolve(c, KindInventory, identifier, c.Service())
}

func ResolveHost(c *httpclient.Client, identifier string) (int64, error) {
	return Resolve(c, KindHost, identifier, c.Service())
}

func ResolveGroup(c *httpclient.Client, identifier string) (int64, error) {
	return Resolve(c, KindGroup, identifier, c.Service())
}

func ResolveCredential(c *httpclient.Client, identifier string) (int64, error) {
	return Resolve(c, KindCredential, identifier, c.Service())
}

func ResolveInstance(c *httpclient.Client, identifier string) (int64, error) {
	return Resolve(c, KindInstance, identifier, c.Service())
}

func ResolveInstanceGroup(c *httpclient.Client, identifier string) (int64, error) {
	return Resolve(c, KindInstanceGroup, identifier, c.Service())
}

func ResolveExecutionEnvironment(c *httpclient.Client, identifier string) (int64, error) {
	return Resolve(c, KindExecutionEnvironment, identifier, c.Service())
}

func ResolveJob(c *httpclient.Client, identifier string) (int64, error) {
	return Resolve(c, KindJob, identifier, c.Service())
}

func ResolveHostMetric(c *httpclient.Client, identifier string) (int64, error) {
	return Resolve(c, KindHostMetric, identifier, c.Service())
}
