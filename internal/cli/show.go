package cli

import (
	"github.com/spf13/cobra"

	"github.com/edward-ap/stepprogress/internal/demoapp"
)

var showStyle string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Open the demo window",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showStyle, "style", "", "style file (json, yaml or toml)")
}

func runShow(cmd *cobra.Command, args []string) error {
	app := demoapp.NewApp(demoapp.Options{StylePath: showStyle})
	app.Run()
	return nil
}
