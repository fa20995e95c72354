package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"repohub/internal/config"
	"repohub/internal/domain"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// LaunchFunc starts the interface for source
type LaunchFunc func(cfg *config.Config, source domain.ListSource) error

// App holds the CLI application state.
type App struct {
	root   *cobra.Command
	launch LaunchFunc

	configPath string
	token      string
	logFile    string
}

// NewApp creates the CLI. launch defaults to running the terminal UI.
func NewApp(launch LaunchFunc) *App {
	if launch == nil {
		launch = RunTUI
	}
	a := &App{launch: launch}

	a.root = &cobra.Command{
		Use:   "repohub",
		Short: "Browse GitHub repositories in the terminal",
		Long: `repohub lists GitHub repositories in a terminal UI.

Without a subcommand it shows the repositories of the authenticated user.
Authentication uses a personal access token from --token, GITHUB_TOKEN
or the configuration file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.open(domain.ListSource{Kind: domain.ListOwn})
		},
	}

	flags := a.root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default "+config.DefaultConfigPath()+")")
	flags.StringVar(&a.token, "token", "", "GitHub personal access token")
	flags.StringVar(&a.logFile, "log-file", "", `log file, "-" disables logging`)

	a.root.AddCommand(a.userCmd())
	a.root.AddCommand(a.starredCmd())
	a.root.AddCommand(a.watchedCmd())
	a.root.AddCommand(a.forksCmd())
	a.root.AddCommand(a.orgCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.versionCmd())

	return a
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// SetArgs overrides os.Args, for tests
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetOutput redirects command output
func (a *App) SetOutput(w io.Writer) {
	a.root.SetOut(w)
	a.root.SetErr(w)
}

func (a *App) userCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user <name>",
		Short: "Show a user's repositories",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.open(domain.ListSource{Kind: domain.ListUser, Owner: args[0]})
		},
	}
}

func (a *App) starredCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "starred",
		Short: "Show repositories you starred",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.open(domain.ListSource{Kind: domain.ListStarred})
		},
	}
}

func (a *App) watchedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watched",
		Short: "Show repositories you watch",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.open(domain.ListSource{Kind: domain.ListWatched})
		},
	}
}

func (a *App) forksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forks <owner> <repo>",
		Short: "Show the forks of a repository",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.open(domain.ListSource{Kind: domain.ListForks, Owner: args[0], Repo: args[1]})
		},
	}
}

func (a *App) orgCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "org <name>",
		Short: "Show an organization's repositories",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.open(domain.ListSource{Kind: domain.ListOrganization, Owner: args[0]})
		},
	}
}

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			fmt.Fprintln(c.OutOrStdout(), a.configService().Path())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return a.initConfig(c.OutOrStdout())
		},
	})
	return cmd
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(c *cobra.Command, _ []string) {
			fmt.Fprintf(c.OutOrStdout(), "repohub %s (commit: %s)\n", Version, Commit)
		},
	}
}

// open validates source, loads the configuration and launches
func (a *App) open(source domain.ListSource) error {
	if err := source.Validate(); err != nil {
		return err
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if cfg.GitHub.Token == "" && requiresAuth(source.Kind) {
		return fmt.Errorf("%s repositories require a token: set GITHUB_TOKEN or pass --token", source.Kind)
	}
	return a.launch(cfg, source)
}

func requiresAuth(kind domain.ListKind) bool {
	switch kind {
	case domain.ListOwn, domain.ListStarred, domain.ListWatched:
		return true
	default:
		return false
	}
}

func (a *App) configService() config.ConfigService {
	return config.NewConfigServiceForPath(a.configPath)
}

// loadConfig applies flags over file and environment values
func (a *App) loadConfig() (*config.Config, error) {
	svc := a.configService()

	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = svc.LoadFromPath(a.configPath)
	} else {
		cfg, err = svc.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if a.token != "" {
		cfg.GitHub.Token = a.token
	}
	if a.logFile != "" {
		cfg.Log.File = a.logFile
	}
	return cfg, nil
}
