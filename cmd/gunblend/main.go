package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/gcslaoli/watermark-unblend/internal/cmd"
)

// go run ./cmd/gunblend check-assets --assets-dir .
// go run ./cmd/gunblend remove image.png
// go run ./cmd/gunblend remove -o cleaned/ a.png b.jpg c.webp
// go run ./cmd/gunblend remove --output result.png image.png

func main() {
	// Environment overrides such as GUNBLEND_ASSETS_DIR may live in .env.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}

	cmd.Execute()
}
