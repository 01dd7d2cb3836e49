package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/arthur-debert/dupekeep/cmd/dupekeep"
	"github.com/arthur-debert/dupekeep/pkg/style"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := dupekeep.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, style.Fail(dupekeep.MsgErrorPrefix), err)
		stop()
		os.Exit(dupekeep.ExitCode(err))
	}
}
