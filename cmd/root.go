package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gclens/internal/analysis"
)

var rootCmd = &cobra.Command{
	Use:           "gclens",
	Short:         "Analyze JVM garbage collection logs.",
	Long:          `gclens parses Parallel, G1 and ZGC logs and reports pause behavior, heap pressure and suspected memory leaks.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default .gclens.yaml)")
	rootCmd.PersistentFlags().String("collector", "auto", "collector format: auto, parallel, g1 or zgc")

	cobra.CheckErr(viper.BindPFlags(rootCmd.PersistentFlags()))
}

func initConfig() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".gclens")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("GCLENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	defaults := analysis.DefaultThresholds()
	viper.SetDefault("pause-excellent-ms", defaults.PauseExcellent.Milliseconds())
	viper.SetDefault("pause-good-ms", defaults.PauseGood.Milliseconds())
	viper.SetDefault("pause-acceptable-ms", defaults.PauseAcceptable.Milliseconds())
	viper.SetDefault("high-heap-util-pct", defaults.HighHeapUtil)
	viper.SetDefault("leak-window", defaults.LeakWindow)
	viper.SetDefault("leak-growth-fraction", defaults.LeakGrowthFraction)
	viper.SetDefault("leak-confidence", defaults.LeakConfidence)
	viper.SetDefault("reservoir-size", defaults.ReservoirSize)
	viper.SetDefault("workers", defaults.Workers)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

// thresholdsFromConfig materializes the analysis tunables from viper, so the
// config file, GCLENS_* environment and flags all feed the same knobs.
func thresholdsFromConfig() analysis.Thresholds {
	return analysis.Thresholds{
		PauseExcellent:     time.Duration(viper.GetInt("pause-excellent-ms")) * time.Millisecond,
		PauseGood:          time.Duration(viper.GetInt("pause-good-ms")) * time.Millisecond,
		PauseAcceptable:    time.Duration(viper.GetInt("pause-acceptable-ms")) * time.Millisecond,
		HighHeapUtil:       viper.GetFloat64("high-heap-util-pct"),
		LeakWindow:         viper.GetInt("leak-window"),
		LeakGrowthFraction: viper.GetFloat64("leak-growth-fraction"),
		LeakConfidence:     viper.GetFloat64("leak-confidence"),
		ReservoirSize:      viper.GetInt("reservoir-size"),
		Workers:            viper.GetInt("workers"),
	}
}

func Execute() error {
	return rootCmd.Execute()
}
