package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gclens/internal/gclog"
	"gclens/internal/tui"
	"gclens/utils"
)

var tailCmd = &cobra.Command{
	Use:               "tail <file>",
	Short:             "Follow a live GC log in an interactive dashboard",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".log", ".txt"}, true),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := gclog.ParseFormat(viper.GetString("collector"))
		if err != nil {
			return err
		}
		return tui.Run(cmd.Context(), args[0], format, thresholdsFromConfig())
	},
}

func init() {
	rootCmd.AddCommand(tailCmd)
}
