// Package cli implements the aapctl command tree. Commands are thin
// translators: they collect flags, resolve identifiers, issue one primary
// request through the shared transport layer, and render the result. All
// error classification happens below this package; commands only map
// taxonomy errors to messages and exit codes.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/aapctl/aapctl/internal/common/httpclient"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	// Persistent connection flags; each overrides its AAP_* environment
	// counterpart when set.
	flagHostname       string
	flagUsername       string
	flagPassword       string
	flagToken          string
	flagRequestTimeout int
	flagValidateCerts  string
	flagCABundle       string

	flagVerbose bool
	flagOutput  string
)

var (
	okLabel    = color.New(color.FgGreen)
	errorLabel = color.New(color.FgRed)
)

// manager is built once per invocation in preRun and shared by every command.
var manager *httpclient.Manager

var rootCmd = &cobra.Command{
	Use:   "aapctl [command] [flags]",
	Short: "aapctl - command line client for the automation platform",
	Long: `aapctl is a command line client for the automation platform. It maps
resource commands onto REST calls against the platform's gateway, controller,
and event-driven-automation services.

Resources are addressed by name or numeric ID interchangeably:

  # Show an organization by name
  aapctl organization show Default

  # Show the same organization by ID
  aapctl organization show 1

  # Create a project
  aapctl project create --set name=infra --set scm_type=git \
    --set scm_url=https://example.com/infra.git

  # Delete a host
  aapctl host delete web01.example.com`,
	PersistentPreRunE: preRun,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagHostname, "hostname", "", "Platform base URL, e.g. https://aap.example.com")
	pf.StringVar(&flagUsername, "username", "", "Username for basic authentication")
	pf.StringVar(&flagPassword, "password", "", "Password for basic authentication")
	pf.StringVar(&flagToken, "token", "", "OAuth token (takes precedence over username/password)")
	pf.IntVar(&flagRequestTimeout, "request-timeout", 0, "Request timeout in seconds")
	pf.StringVar(&flagValidateCerts, "validate-certs", "", "Verify server certificates (true|false)")
	pf.StringVar(&flagCABundle, "ca-bundle", "", "Path to a CA bundle used instead of the system trust store")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVarP(&flagOutput, "output", "o", "table", "Output format (table|json|yaml)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newWhoamiCmd())
}

// Execute runs the root command. Taxonomy errors terminate the process with a
// short message and exit code 1; nothing here ever prints a stack trace.
func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		errorLabel.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}
}

// preRun configures logging and builds the shared configuration and client
// manager. Commands that need no connection (version) skip validation.
func preRun(cmd *cobra.Command, args []string) error {
	level := zerolog.WarnLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch flagOutput {
	case "table", "json", "yaml":
	default:
		return httpclient.ErrConfiguration.Msg(fmt.Sprintf("unsupported output format %q, expected table, json, or yaml", flagOutput))
	}

	if !needsConnection(cmd) {
		return nil
	}

	overrides := httpclient.Overrides{
		Hostname:       flagHostname,
		Username:       flagUsername,
		Password:       flagPassword,
		Token:          flagToken,
		RequestTimeout: flagRequestTimeout,
		CABundle:       flagCABundle,
	}
	if flagValidateCerts != "" {
		switch strings.ToLower(flagValidateCerts) {
		case "true":
			v := true
			overrides.ValidateCerts = &v
		case "false":
			v := false
			overrides.ValidateCerts = &v
		default:
			return httpclient.ErrConfiguration.Msg("--validate-certs must be true or false")
		}
	}

	cfg := httpclient.LoadConfig(overrides)
	if err := cfg.Validate(); err != nil {
		return err
	}
	manager = httpclient.NewManager(cfg)
	return nil
}

// needsConnection reports whether the command (or any of its parents)
// requires a configured connection.
func needsConnection(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "help", "completion":
			return false
		}
	}
	return true
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the aapctl version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("aapctl %s\n", Version)
		},
	}
}
