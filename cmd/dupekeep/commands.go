// Package dupekeep wires the dupekeep command line.
package dupekeep

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dupekeep/internal/version"
	"github.com/arthur-debert/dupekeep/pkg/audit"
	"github.com/arthur-debert/dupekeep/pkg/cache"
	"github.com/arthur-debert/dupekeep/pkg/config"
	"github.com/arthur-debert/dupekeep/pkg/detector"
	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/arthur-debert/dupekeep/pkg/logging"
	"github.com/arthur-debert/dupekeep/pkg/prompt"
	"github.com/arthur-debert/dupekeep/pkg/session"
	"github.com/arthur-debert/dupekeep/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// flagKeys maps flags that mirror configuration keys. Only flags the user
// set are layered over the configuration.
var flagKeys = map[string]string{
	"min-size":         "scan.min_size",
	"ignore-basenames": "resolve.ignore_basenames",
	"no-prompt":        "resolve.no_prompt",
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		dryRun    bool
		rescan    bool
	)

	rootCmd := &cobra.Command{
		Use:     MsgRootUse,
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, args, dryRun, rescan)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.Flags().BoolVar(&rescan, "rescan", false, MsgFlagRescan)
	rootCmd.Flags().Bool("ignore-basenames", false, MsgFlagIgnoreBasenames)
	rootCmd.Flags().Bool("no-prompt", false, MsgFlagNoPrompt)
	rootCmd.Flags().Int64("min-size", 0, MsgFlagMinSize)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := installTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// loadConfig layers explicitly set flags and the path argument over the
// configuration files.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	opts := config.DefaultLoadOptions()
	opts.Flags = map[string]interface{}{}
	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		switch key {
		case "scan.min_size":
			v, _ := cmd.Flags().GetInt64(flag)
			opts.Flags[key] = v
		default:
			v, _ := cmd.Flags().GetBool(flag)
			opts.Flags[key] = v
		}
	}
	if len(args) == 1 {
		opts.Flags["scan.path"] = args[0]
	}
	return config.Load(opts)
}

func runSession(cmd *cobra.Command, args []string, dryRun, rescan bool) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	store := cache.NewOS(cfg.Cache.Path)
	if rescan {
		if err := store.Invalidate(); err != nil {
			return err
		}
	}

	reader, err := prompt.NewLineReader(cmd.InOrStdin(), out)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	var journal *audit.Journal
	if cfg.Audit.Enabled {
		journal = audit.NewJournal(cfg.Audit.Dir)
	}

	log.Info().
		Str("root", cfg.Scan.Path).
		Int64("min_size", cfg.Scan.MinSize).
		Bool("dry_run", dryRun).
		Msg("Starting session")

	outcome, err := session.Run(cmd.Context(), session.Options{
		Root:            cfg.Scan.Path,
		MinSize:         cfg.Scan.MinSize,
		IgnoreBasenames: cfg.Resolve.IgnoreBasenames,
		NoPrompt:        cfg.Resolve.NoPrompt,
		DryRun:          dryRun,
		Reader:          reader,
		Out:             out,
		Format:          outputFormat(out),
		Source:          &detector.Cached{Source: detector.NewCommand(cfg.Scan.Detector), Cache: store},
		Cache:           store,
		Journal:         journal,
	})
	if outcome != nil && outcome.Clusters > 0 {
		fmt.Fprintf(out, MsgSummary, outcome.Clusters, outcome.Prompted, outcome.Inferred)
	}
	if outcome != nil && outcome.JournalPath != "" {
		fmt.Fprintf(out, MsgJournalWritten, outcome.JournalPath)
	}
	return err
}

func outputFormat(w io.Writer) style.Format {
	if f, ok := w.(*os.File); ok {
		return style.DetectFormat(f)
	}
	return style.FormatText
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long:  MsgConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.DefaultLoadOptions())
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return errors.Newf(errors.ErrInvalidInput, "unsupported shell %q", args[0])
		},
	}
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsErrorCode(err, errors.ErrAborted):
		return 130
	default:
		return 1
	}
}
