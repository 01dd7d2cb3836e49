package dupekeep

import (
	"embed"
	"os"

	"github.com/arthur-debert/dupekeep/pkg/style"
	"github.com/arthur-debert/dupekeep/pkg/topics"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

func installTopics(root *cobra.Command) error {
	var renderer topics.Renderer = &topics.PlainRenderer{}
	if style.DetectFormat(os.Stdout) == style.FormatTerminal {
		renderer = topics.NewGlamourRenderer()
	}
	m, err := topics.Load(topicFiles, "topics", topics.Options{Renderer: renderer})
	if err != nil {
		return err
	}
	m.Install(root)
	return nil
}
