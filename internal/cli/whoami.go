package cli

import (
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

// newWhoamiCmd reports the identity the configured credentials map to on the
// gateway service.
func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := manager.Gateway()
			if err != nil {
				return err
			}
			resp, err := client.Get("me/", nil)
			if err != nil {
				return err
			}

			// The me endpoint answers with a single-element page.
			body := resp.Body
			if results := gjson.GetBytes(body, "results"); results.Exists() && len(results.Array()) > 0 {
				body = []byte(results.Array()[0].Raw)
			}
			return printItem(body, []column{
				{"ID", "id"},
				{"USERNAME", "username"},
				{"EMAIL", "email"},
				{"SUPERUSER", "is_superuser"},
			})
		},
	}
}
