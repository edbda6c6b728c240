package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gcslaoli/watermark-unblend/internal/logging"
)

var (
	cfgFile string
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gunblend",
	Short: "Remove the fixed logo watermark from images",
	Long: `gunblend reverses the semi-transparent logo watermark stamped in the
bottom-right corner of generated images.

Each input is written twice: a lossless PNG that keeps transparency and a
JPEG flattened onto white. Output names default to <name>_<YYYYMMDD_HHMMSS>.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("assets-dir", "", "Resource root containing assets/mask_48.png and assets/mask_96.png (default: executable dir, then working dir)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file (rotated)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"assets-dir", "assets-dir"},
		{"verbose", "verbose"},
		{"log-file", "log-file"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, rootCmd.PersistentFlags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("GUNBLEND")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func initLogging() {
	logger = logging.New(logging.Options{
		Verbose:  viper.GetBool("verbose"),
		FilePath: viper.GetString("log-file"),
	})
}
