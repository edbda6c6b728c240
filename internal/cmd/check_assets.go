package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	watermark "github.com/gcslaoli/watermark-unblend"
)

var checkAssetsCmd = &cobra.Command{
	Use:   "check-assets",
	Short: "Verify the watermark mask assets",
	Long:  "Load mask_48.png and mask_96.png from the resource root and report any that are missing or unreadable.",
	Args:  cobra.NoArgs,
	RunE:  runCheckAssets,
}

func init() {
	rootCmd.AddCommand(checkAssetsCmd)
}

func runCheckAssets(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	root := resolveResourceRoot(viper.GetString("assets-dir"))
	out := cmd.OutOrStdout()
	failed := 0

	for _, st := range checkAssets(watermark.DirLocator(root)) {
		switch {
		case st.Err != nil:
			failed++
			fmt.Fprintf(out, "❌ %s: %v\n", st.Path, st.Err)
			logger.Error("mask asset unusable", zap.String("path", st.Path), zap.Error(st.Err))
		case st.Resized():
			fmt.Fprintf(out, "⚠️ %s: %dx%d, resized to %dx%d\n", st.Path, st.Native.X, st.Native.Y, st.Size, st.Size)
		default:
			fmt.Fprintf(out, "✅ %s\n", st.Path)
		}
	}

	if failed > 0 {
		return fmt.Errorf("assets missing: %d of the mask files under %s could not be loaded", failed, root)
	}
	return nil
}
