package dupekeep

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Interactively resolve duplicate files into one kept copy"
	MsgRootUse         = "dupekeep [path]"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose         = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun          = "Preview the action plan without changing any file"
	MsgFlagIgnoreBasenames = "Infer keepers even when file names in a set differ"
	MsgFlagNoPrompt        = "Keep the first file of every set that cannot be inferred"
	MsgFlagMinSize         = "Ignore duplicate sets whose files are smaller than this many bytes"
	MsgFlagRescan          = "Discard cached detector output and scan again"

	// Output
	MsgVersionFormat  = "dupekeep version %s\n  commit: %s\n  built:  %s\n"
	MsgErrorPrefix    = "Error:"
	MsgJournalWritten = "Journal written to %s\n"
	MsgSummary        = "%d duplicate set(s): %d answered, %d inferred\n"
)

// Long messages and templates
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
