package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gclens/internal/analysis"
	"gclens/internal/gclog"
	"gclens/internal/render"
	"gclens/internal/source"
	"gclens/utils"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|pattern>",
	Short: "Analyze one or more GC log files",
	Long: `Analyze parses the given GC logs and prints a pause, heap and leak report.
The argument may be a single file, a .gz file, or a pattern covering a
rotated set such as 'gc.log.*'.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".log", ".txt", ".gz"}, true),
	RunE:              runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("output", "o", "text", "output format: text, table or json")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := gclog.ParseFormat(viper.GetString("collector"))
	if err != nil {
		return err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	paths, err := source.Expand(args[0])
	if err != nil {
		return err
	}

	// A rotated set is one log split over files; feed it as one stream.
	readers := make([]io.Reader, 0, len(paths))
	closers := make([]io.Closer, 0, len(paths))
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()
	for _, path := range paths {
		rc, err := source.Open(path)
		if err != nil {
			return err
		}
		readers = append(readers, rc)
		closers = append(closers, rc)
	}

	report, err := analysis.Run(cmd.Context(), io.MultiReader(readers...), format, thresholdsFromConfig())
	if err != nil {
		return err
	}

	switch output {
	case "text":
		return render.Text(os.Stdout, report)
	case "table":
		return render.Table(os.Stdout, report)
	case "json":
		return render.JSON(os.Stdout, report)
	default:
		return fmt.Errorf("unknown output format %q (want text, table or json)", output)
	}
}
