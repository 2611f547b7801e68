package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oaixnah/tv/cmd/tv/cmds"
)

func main() {
	cobra.CheckErr(cmds.NewRootCLI().ExecuteContext(context.Background()))
}
