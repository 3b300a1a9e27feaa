package stagehand

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/naoTimesdev/stagehand/internal/version"
	"github.com/naoTimesdev/stagehand/pkg/commands/stage"
	"github.com/naoTimesdev/stagehand/pkg/commands/status"
	"github.com/naoTimesdev/stagehand/pkg/config"
	"github.com/naoTimesdev/stagehand/pkg/logging"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		dryRun    bool
		rootPath  string
	)

	rootCmd := &cobra.Command{
		Use:     "stagehand",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&rootPath, "root", "", MsgFlagRoot)

	rootCmd.AddCommand(newStageCmd(&rootPath, &dryRun))
	rootCmd.AddCommand(newStatusCmd(&rootPath))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd(rootCmd))

	return rootCmd
}

// loadConfig resolves configuration and applies the --root override
func loadConfig(rootOverride string) (*config.Config, error) {
	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}

	cfg, err := config.Load(workDir)
	if err != nil {
		return nil, err
	}

	if rootOverride != "" {
		cfg.Stage.Root = rootOverride
	}
	return cfg, nil
}

func newStageCmd(rootPath *string, dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "stage",
		Short: MsgStageShort,
		Long:  MsgStageLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.stage")

			cfg, err := loadConfig(*rootPath)
			if err != nil {
				return err
			}

			logger.Info().
				Str("root", cfg.Stage.Root).
				Str("prefix", cfg.Stage.Prefix).
				Bool("dryRun", *dryRun).
				Msg("Starting stage")

			result, err := stage.StageArtifacts(stage.Options{
				Root:       cfg.Stage.Root,
				Prefix:     cfg.Stage.Prefix,
				Executable: cfg.Stage.Executable,
				BuildDir:   cfg.Stage.BuildDir,
				DryRun:     *dryRun,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Copied:  %d\n", len(result.Copied))
			fmt.Fprintf(out, "Skipped: %d\n", len(result.Skipped))
			if result.Patched {
				fmt.Fprintf(out, "Patched: %s\n", result.Executable)
			}
			return nil
		},
	}
}

func newStatusCmd(rootPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long:  MsgStatusLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*rootPath)
			if err != nil {
				return err
			}

			report, err := status.BuildReport(status.Options{
				Root:     cfg.Stage.Root,
				Prefix:   cfg.Stage.Prefix,
				BuildDir: cfg.Stage.BuildDir,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Platform:  %s\n", report.Platform)
			fmt.Fprintf(out, "Build dir: %s\n", report.BuildDir)

			if len(report.Candidates) == 0 {
				fmt.Fprintln(out, "No build candidates found")
				return nil
			}

			fmt.Fprintln(out, "Candidates:")
			for _, candidate := range report.Candidates {
				marker := " "
				if candidate.Selected {
					marker = "*"
				}
				fmt.Fprintf(out, "  %s %s (%s)\n", marker, candidate.Name,
					candidate.ModTime.Format("2006-01-02 15:04:05"))
			}

			if len(report.Artifacts) == 0 {
				fmt.Fprintln(out, "No artifacts in selected candidate")
				return nil
			}

			fmt.Fprintln(out, "Artifacts:")
			for _, artifact := range report.Artifacts {
				state := "pending"
				if artifact.Staged {
					state = "staged"
				}
				fmt.Fprintf(out, "    %s [%s]\n", artifact.Name, state)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "stagehand version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion script",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate bash completion")
				}
			case "zsh":
				if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate zsh completion")
				}
			case "fish":
				if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
					log.Error().Err(err).Msg("Failed to generate fish completion")
				}
			case "powershell":
				if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate powershell completion")
				}
			}
		},
	}
}

func newManCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate man page",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "STAGEHAND",
				Section: "1",
			}
			return doc.GenManTree(rootCmd, header, "/tmp")
		},
	}
}
