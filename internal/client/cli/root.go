package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/savvysnip/internal/buildinfo"
	"github.com/dmitrijs2005/savvysnip/internal/client/config"
	"github.com/spf13/cobra"
)

// AppFactory builds a ready App. NewRootCommand calls it lazily so that
// "version" and "help" work without a database or a server.
type AppFactory func(ctx context.Context) (*App, error)

// DefaultAppFactory loads the configuration from flags, environment and file
// and builds the App from it.
func DefaultAppFactory(ctx context.Context) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewApp(ctx, cfg)
}

const longHelp = `SavvySnip keeps code snippets in user-ordered categories on a server.

Without a subcommand an interactive shell is started.

Connection flags (parsed before the subcommand runs):
  -a host:port   server gRPC address
  -i seconds     online check interval
  -t seconds     per-call timeout
  -f path        local SQLite file holding the session
  -l slog|zap    logger backend
  -c path        JSON or YAML config file`

// NewRootCommand assembles the savvysnip command tree.
func NewRootCommand(newApp AppFactory) *cobra.Command {
	root := &cobra.Command{
		Use:                "savvysnip",
		Short:              "Code snippet manager",
		Long:               longHelp,
		SilenceUsage:       true,
		SilenceErrors:      true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true}, // connection flags belong to config
		RunE: withApp(newApp, func(ctx context.Context, a *App, _ []string) error {
			return a.Run(ctx)
		}),
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				buildinfo.PrintBuildData(cmd.OutOrStdout())
			},
		},
		simpleCommand(newApp, "register", "Create an account", (*App).Register),
		simpleCommand(newApp, "login", "Sign in with email and password", (*App).Login),
		simpleCommand(newApp, "login-token", "Sign in with an external ID token", (*App).LoginWithToken),
		simpleCommand(newApp, "logout", "Sign out and forget the local session", (*App).Logout),
		simpleCommand(newApp, "whoami", "Show the signed-in account", (*App).WhoAmI),
		simpleCommand(newApp, "reset-password", "Request a password reset email", (*App).ResetPassword),
		simpleCommand(newApp, "delete-account", "Delete the account with all its data", (*App).DeleteAccount),
		simpleCommand(newApp, "categories", "List categories in order", (*App).ListCategories),
		categoryCommand(newApp, "snips <category>", "List the snips of a category, newest first", (*App).ListSnips),
		categoryCommand(newApp, "add-snip <category>", "Add a snip to a category", (*App).AddSnip),
		categoryCommand(newApp, "export <category>", "Download a category as JSON", (*App).Export),
	)

	for _, c := range root.Commands() {
		c.FParseErrWhitelist = root.FParseErrWhitelist
	}

	return root
}

func withApp(newApp AppFactory, run func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		a.out = cmd.OutOrStdout()
		return run(ctx, a, args)
	}
}

func simpleCommand(newApp AppFactory, use, short string, fn func(*App, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: withApp(newApp, func(ctx context.Context, a *App, _ []string) error {
			return fn(a, ctx)
		}),
	}
}

func categoryCommand(newApp AppFactory, use, short string, fn func(*App, context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(newApp, func(ctx context.Context, a *App, args []string) error {
			return fn(a, ctx, strings.Join(args, " "))
		}),
	}
}
