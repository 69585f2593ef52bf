package cli

import "github.com/aapctl/aapctl/internal/resolver"

// resourceCommands is the single place a resource type is wired into the
// command tree. Adding a row here yields a full command group; the owning
// service and endpoints come from the resolver table.
var resourceCommands = []resourceCommand{
	{
		kind:    resolver.KindOrganization,
		use:     "organization",
		aliases: []string{"org"},
		columns: []column{
			{"ID", "id"},
			{"NAME", "name"},
			{"DESCRIPTION", "description"},
		},
	},
	{
		kind: resolver.KindTeam,
		use:  "team",
		columns: []column{
			{"ID", "id"},
			{"NAME", "name"},
			{"ORGANIZATION", "summary_fields.organization.name"},
		},
	},
	{
		kind: resolver.KindUser,
		use:  "user",
		columns: []column{
			{"ID", "id"},
			{"USERNAME", "username"},
			{"EMAIL", "email"},
			{"FIRST NAME", "first_name"},
			{"LAST NAME", "last_name"},
			{"SUPERUSER", "is_superuser"},
		},
	},
	{
		kind:    resolver.KindApplication,
		use:     "application",
		aliases: []string{"app"},
		columns: []column{
			{"ID", "id"},
			{"NAME", "name"},
			{"ORGANIZATION", "summary_fields.organization.name"},
		},
	},
	{
		kind: resolver.KindProject,
		use:  "project",
		columns: []column{
			{"ID", "id"},
			{"NAME", "name"},
			{"STATUS", "status"},
			{"SCM TYPE", "scm_type"},
			{"SCM URL", "scm_url"},
		},
	},
	{
		kind: resolver.KindInventory,
		use:  "inventory",
		columns: []column{
			{"ID", "id"},
			{"NAME", "name"},
			{"ORGANIZATION", "summary_fields.organization.name"},
			{"HOSTS", "total_hosts"},
		},
	},
	{
		kind: resolver.KindHost,
		use:  "host",
		columns: []column{
			{"ID", "id"},
			{"NAME", "name"},
			{"INVENTORY", "summary_fields.inventory.name"},
			{"ENABLED", "enabled"},
		},
	},
	{
		kind: resolver.KindGroup,
		use:  "group",
		columns: []column{
			{"ID", "id"},
			{"NAME", "name"},
			{"INVENTORY", "summary_fields.inventory.name"},
		},
	},
	{
		kind: resolver.KindCredential,
		use:  "credential",
		columns: []column{
			{"ID", "id"},
			{"NAME", "name"},
			{"TYPE", "summary_fields.credential_type.name"},
			{"ORGANIZATION", "summary_fields.organization.name"},
		},
	},
	{
		kind:     resolver.KindInstance,
		use:      "instance",
		noCreate: true,
		noDelete: true,
		columns: []column{
			{"ID", "id"},
			{"HOSTNAME", "hostname"},
			{"TYPE", "node_type"},
			{"STATE", "node_state"},
			{"ENABLED", "enabled"},
		},
	},
	{
		kind: resolver.KindInstanceGroup,
		use:  "instance-group",
		columns: []column{
			{"ID", "id"},
			{"NAME", "name"},
			{"CAPACITY", "capacity"},
			{"CONSUMED", "consumed_capacity"},
		},
	},
	{
		kind:    resolver.KindExecutionEnvironment,
		use:     "execution-environment",
		aliases: []string{"ee"},
		columns: []column{
			{"ID", "id"},
			{"NAME", "name"},
			{"IMAGE", "image"},
		},
	},
	{
		kind:     resolver.KindJob,
		use:      "job",
		noCreate: true,
		noSet:    true,
		columns: []column{
			{"ID", "id"},
			{"NAME", "name"},
			{"STATUS", "status"},
			{"STARTED", "started"},
			{"FINISHED", "finished"},
		},
	},
	{
		kind:     resolver.KindHostMetric,
		use:      "host-metric",
		noCreate: true,
		noSet:    true,
		columns: []column{
			{"ID", "id"},
			{"HOSTNAME", "hostname"},
			{"FIRST AUTOMATION", "first_automation"},
			{"AUTOMATIONS", "automated_counter"},
		},
	},
}

func init() {
	for _, rc := range resourceCommands {
		rootCmd.AddCommand(newResourceCmd(rc))
	}
}
