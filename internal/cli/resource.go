package cli

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/aapctl/aapctl/internal/common/apperrors"
	"github.com/aapctl/aapctl/internal/common/httpclient"
	"github.com/aapctl/aapctl/internal/resolver"
)

// column maps a table header to a gjson path inside a result object.
type column struct {
	header string
	path   string
}

// resourceCommand describes one resource-type command group. The owning
// service and collection endpoint come from the resolver's resource table, so
// a command cannot address a service that does not own its resource.
type resourceCommand struct {
	kind    resolver.Kind
	use     string
	aliases []string
	columns []column

	// Not every resource supports the full verb set: jobs and host metrics
	// are produced by the platform and can only be inspected or deleted;
	// instances can be tuned but not created or removed through the API.
	noCreate bool
	noSet    bool
	noDelete bool
}

// newResourceCmd assembles the command group for one resource type.
func newResourceCmd(rc resourceCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:     rc.use,
		Aliases: rc.aliases,
		Short:   fmt.Sprintf("Manage %s resources", rc.kind),
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	cmd.AddCommand(newListCmd(rc), newShowCmd(rc))
	if !rc.noCreate {
		cmd.AddCommand(newCreateCmd(rc))
	}
	if !rc.noSet {
		cmd.AddCommand(newSetCmd(rc))
	}
	if !rc.noDelete {
		cmd.AddCommand(newDeleteCmd(rc))
	}
	return cmd
}

func (rc resourceCommand) client() (*httpclient.Client, error) {
	return manager.Client(rc.kind.Service())
}

func (rc resourceCommand) resolve(identifier string) (*httpclient.Client, int64, error) {
	client, err := rc.client()
	if err != nil {
		return nil, 0, err
	}
	id, err := resolver.Resolve(client, rc.kind, identifier, client.Service())
	if err != nil {
		return nil, 0, err
	}
	return client, id, nil
}

func newListCmd(rc resourceCommand) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s resources", rc.kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := rc.client()
			if err != nil {
				return err
			}
			query := map[string]string{"order_by": "id"}
			if limit > 0 {
				query["page_size"] = strconv.Itoa(limit)
			}
			resp, err := client.Get(rc.kind.Endpoint(), query)
			if err != nil {
				return err
			}
			return printList(resp.Body, rc.columns)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results")
	return cmd
}

func newShowCmd(rc resourceCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name|id>",
		Short: fmt.Sprintf("Show %s details", rc.kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, id, err := rc.resolve(args[0])
			if err != nil {
				return err
			}
			resp, err := client.Get(itemPath(rc.kind, id), nil)
			if err != nil {
				return asNotFound(err, rc.kind, args[0])
			}
			return printItem(resp.Body, rc.columns)
		},
	}
}

func newCreateCmd(rc resourceCommand) *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:   "create --set key=value ...",
		Short: fmt.Sprintf("Create new %s", rc.kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := buildBody(fields)
			if err != nil {
				return err
			}
			client, err := rc.client()
			if err != nil {
				return err
			}
			resp, err := client.Post(rc.kind.Endpoint(), body)
			if err != nil {
				return err
			}
			okLabel.Printf("created %s %s (id %d)\n",
				rc.kind, gjson.GetBytes(resp.Body, "name").String(), gjson.GetBytes(resp.Body, "id").Int())
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&fields, "set", nil, "Field to set, key=value (repeatable)")
	cmd.MarkFlagRequired("set")
	return cmd
}

func newSetCmd(rc resourceCommand) *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:   "set <name|id> --set key=value ...",
		Short: fmt.Sprintf("Update %s fields", rc.kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := buildBody(fields)
			if err != nil {
				return err
			}
			client, id, err := rc.resolve(args[0])
			if err != nil {
				return err
			}
			if _, err := client.Patch(itemPath(rc.kind, id), body); err != nil {
				return asNotFound(err, rc.kind, args[0])
			}
			okLabel.Printf("updated %s %s\n", rc.kind, args[0])
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&fields, "set", nil, "Field to set, key=value (repeatable)")
	cmd.MarkFlagRequired("set")
	return cmd
}

func newDeleteCmd(rc resourceCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name|id>",
		Short: fmt.Sprintf("Delete %s by name or ID", rc.kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, id, err := rc.resolve(args[0])
			if err != nil {
				return err
			}
			if _, err := client.Delete(itemPath(rc.kind, id)); err != nil {
				return asNotFound(err, rc.kind, args[0])
			}
			okLabel.Printf("deleted %s %s\n", rc.kind, args[0])
			return nil
		},
	}
}

func itemPath(kind resolver.Kind, id int64) string {
	return fmt.Sprintf("%s%d/", kind.Endpoint(), id)
}

// buildBody assembles a JSON request body from key=value pairs. Values that
// parse as integers or booleans keep their JSON type; everything else is sent
// as a string. Keys may be dotted paths for nested fields.
func buildBody(fields []string) ([]byte, error) {
	body := []byte(`{}`)
	for _, f := range fields {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, httpclient.ErrConfiguration.Msg(fmt.Sprintf("invalid field %q, expected key=value", f))
		}
		var err error
		if n, nerr := strconv.ParseInt(value, 10, 64); nerr == nil {
			body, err = sjson.SetBytes(body, key, n)
		} else if value == "true" || value == "false" {
			body, err = sjson.SetBytes(body, key, value == "true")
		} else {
			body, err = sjson.SetBytes(body, key, value)
		}
		if err != nil {
			return nil, httpclient.ErrConfiguration.MsgErr(fmt.Sprintf("invalid field %q", f), err)
		}
	}
	return body, nil
}

// asNotFound converts a direct 404 on an item endpoint into a not-found error
// that names what the user actually typed. The resource can vanish between
// resolution and the primary call, so this race is expected.
func asNotFound(err error, kind resolver.Kind, identifier string) error {
	var aerr apperrors.Error
	if errors.As(err, &aerr) && errors.Is(err, httpclient.ErrAPI) && aerr.StatusCode() == http.StatusNotFound {
		return httpclient.ErrResourceNotFound.Msg(fmt.Sprintf("%s %q not found", kind, identifier))
	}
	return err
}
