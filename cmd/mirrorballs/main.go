package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"mirror-balls/internal/capture"
	"mirror-balls/internal/config"
	"mirror-balls/internal/surface"
	"mirror-balls/internal/texture"
	"mirror-balls/internal/viewer"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	mode := flag.String("mode", "", "window or capture (default: window)")
	variant := flag.String("variant", "", "many or single (default: many)")
	matcap := flag.String("matcap", "", "Matcap texture path or asset name looked up under -assets (default: matcap-crystal, shipped in assets/)")
	assets := flag.String("assets", "", "Assets directory (default: auto-detect)")
	balls := flag.Int("balls", 0, "Number of balls (default: 6)")
	seed := flag.Uint64("seed", 0, "Random seed (default: time based)")
	width := flag.Int("width", 0, "Width in pixels (default: 960)")
	height := flag.Int("height", 0, "Height in pixels (default: 640)")
	showFPS := flag.Bool("fps-overlay", false, "Show FPS in the window")
	frames := flag.Int("frames", 0, "Frames to capture (default: 120)")
	fps := flag.Float64("fps", 0, "Capture frame rate (default: 30)")
	output := flag.String("output", "", "Capture output file (default: mirror-balls.webp)")
	supersample := flag.Int("supersample", 0, "Capture supersampling factor 1-4 (default: 1)")
	workers := flag.Int("workers", 0, "Number of render goroutines (default: NumCPU)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Mode:        *mode,
		Variant:     *variant,
		AssetsDir:   *assets,
		Matcap:      *matcap,
		Balls:       *balls,
		Seed:        *seed,
		Width:       *width,
		Height:      *height,
		ShowFPS:     *showFPS,
		Frames:      *frames,
		FPS:         *fps,
		Supersample: *supersample,
		Workers:     *workers,
		Output:      *output,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := surface.Options{
		Balls:  cfg.Balls,
		Matcap: cfg.Matcap,
		Seed:   cfg.Seed,
		Logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	if cfg.Variant == config.VariantSingle {
		opts.Variant = surface.Single
	}

	loader := texture.NewLoader(cfg.AssetsDir)

	var err error
	switch cfg.Mode {
	case config.ModeCapture:
		err = runCapture(ctx, cfg, loader, opts)
	default:
		err = runWindow(ctx, cfg, loader, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runWindow(ctx context.Context, cfg config.Config, loader *texture.Loader, opts surface.Options) error {
	window := viewer.NewWindow(cfg.Width, cfg.Height)
	s, err := surface.Create(ctx, loader, window, opts)
	if err != nil {
		return err
	}
	defer s.Stop()

	v := viewer.New(s, window, cfg.ShowFPS)
	go func() {
		<-ctx.Done()
		v.Close()
	}()
	return v.Run(fmt.Sprintf("Mirror Balls (%d, seed %d)", len(s.Balls()), cfg.Seed))
}

func runCapture(ctx context.Context, cfg config.Config, loader *texture.Loader, opts surface.Options) error {
	opts.DeferRender = true
	viewport := surface.FixedViewport{Width: cfg.Width, Height: cfg.Height}
	s, err := surface.Create(ctx, loader, viewport, opts)
	if err != nil {
		return err
	}
	defer s.Stop()

	fmt.Printf("Mirror balls → WebP (%s)\n", opts.Variant)
	fmt.Printf("Balls: %d, Seed: %d, Frames: %d @ %.0f fps, Workers: %d\n",
		len(s.Balls()), cfg.Seed, cfg.Frames, cfg.FPS, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.Output)
	fmt.Println("------------------------------------------------------------")

	res, err := capture.Run(ctx, s, capture.Config{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Frames:      cfg.Frames,
		FPS:         cfg.FPS,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Output:      cfg.Output,
		Progress:    os.Stdout,
	})
	if err != nil {
		return err
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", res.Elapsed.Seconds())
	fmt.Printf("Frames: %d\n", res.Frames)
	fmt.Printf("Manifest: %s\n", res.Manifest)
	return nil
}
