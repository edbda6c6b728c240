package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	watermark "github.com/gcslaoli/watermark-unblend"
	"github.com/gcslaoli/watermark-unblend/internal/batch"
	"github.com/gcslaoli/watermark-unblend/internal/logging"
)

var removeCmd = &cobra.Command{
	Use:   "remove [files...]",
	Short: "Remove the watermark and save PNG + JPG copies",
	Long: `Process each image in order. Accepted inputs are .png, .jpg, .jpeg and .webp;
other files are reported and skipped. A failing file does not stop the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().StringP("out-dir", "o", "", "Directory for outputs (default: beside each input)")
	removeCmd.Flags().String("output", "", "Output base path for a single input; a .png/.jpg suffix is dropped")
	removeCmd.Flags().Bool("cache-masks", true, "Reuse loaded masks across files")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"remove.out_dir", "out-dir"},
		{"remove.output", "output"},
		{"remove.cache_masks", "cache-masks"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, removeCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	root := resolveResourceRoot(viper.GetString("assets-dir"))
	outDir := viper.GetString("remove.out_dir")
	output := viper.GetString("remove.output")

	var opts []watermark.Option
	if viper.GetBool("remove.cache_masks") {
		opts = append(opts, watermark.WithMaskCache(watermark.NewMaskCache()))
	}

	logger.Debug("starting removal",
		zap.String("resource_root", root),
		zap.String("out_dir", outDir),
		zap.String("output", output),
		zap.Int("inputs", len(args)),
	)

	sink := logging.NewSink(cmd.OutOrStdout(), logger)
	runner := batch.New(batch.Config{
		Processor:   watermark.NewProcessor(watermark.DirLocator(root), opts...),
		Sink:        sink.Func(),
		OutDir:      outDir,
		Destination: output,
		OnProgress: func(completed, total, failed int) {
			logger.Debug("progress", zap.Int("completed", completed), zap.Int("total", total), zap.Int("failed", failed))
		},
	})

	summary, err := runner.Run(args)
	if err != nil {
		return err
	}

	logger.Info("removal finished",
		zap.Int("processed", len(summary.Results)),
		zap.Int("failed", summary.Failed),
		zap.Int("ignored", len(summary.Ignored)),
	)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d images failed", summary.Failed, len(summary.Results))
	}
	return nil
}
