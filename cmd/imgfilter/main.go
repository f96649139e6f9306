package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vearutop/imgfilter"
	"github.com/vearutop/imgfilter/cmd/imgfilter/internal/config"
	"github.com/vearutop/imgfilter/surface"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "apply":
		if err := runApply(os.Args[2:]); err != nil {
			fail(err)
		}
	case "stats":
		if err := runStats(os.Args[2:], os.Stdout); err != nil {
			fail(err)
		}
	case "filters":
		listFilters(os.Stdout)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: imgfilter <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  apply -in input.png -out output.png -filter grayscale [-config imgfilter.yaml] [-v]")
	fmt.Fprintln(os.Stderr, "        [-threshold 127] [-light 191] [-dark 63] [-delta 0] [-beta 0] [-gamma 1] [-size 8]")
	fmt.Fprintln(os.Stderr, "        [-smooth] [-scaler kernel-bilinear]")
	fmt.Fprintln(os.Stderr, "  stats -in input.png [-luminance]")
	fmt.Fprintln(os.Stderr, "  filters")
}

type applyFlags struct {
	in, out, filter, configPath, scaler string
	threshold, light, dark              float64
	delta, beta, gamma, size            float64
	smooth, verbose                     bool
}

func runApply(args []string) error {
	var f applyFlags
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.StringVar(&f.in, "in", "", "input image path or data URL")
	fs.StringVar(&f.out, "out", "", "output image (png, jpg, gif, bmp, tiff)")
	fs.StringVar(&f.filter, "filter", "", "filter name, see 'imgfilter filters'")
	fs.StringVar(&f.configPath, "config", config.DefaultPath, "optional yaml configuration")
	fs.StringVar(&f.scaler, "scaler", "", "scaler used while smoothing, e.g. kernel-lanczos3, xdraw-catmullrom, nfnt-bicubic")
	fs.Float64Var(&f.threshold, "threshold", 127, "threshold luma cut-off")
	fs.Float64Var(&f.light, "light", 191, "threshold light level")
	fs.Float64Var(&f.dark, "dark", 63, "threshold dark level")
	fs.Float64Var(&f.delta, "delta", 0, "brightness delta")
	fs.Float64Var(&f.beta, "beta", 0, "contrast or saturation beta")
	fs.Float64Var(&f.gamma, "gamma", 1, "gamma exponent")
	fs.Float64Var(&f.size, "size", 8, "pixelation block size")
	fs.BoolVar(&f.smooth, "smooth", false, "interpolate scaled draws")
	fs.BoolVar(&f.verbose, "v", false, "debug logging to stderr")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if f.in == "" || f.out == "" || f.filter == "" {
		return errors.New("missing required arguments")
	}

	if f.verbose {
		imgfilter.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := config.LoadOptional(f.configPath)
	if err != nil {
		return err
	}

	explicit := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { explicit[fl.Name] = true })
	override(cfg, &f, explicit)

	surfaceOpts, err := cfg.SurfaceOptions()
	if err != nil {
		return err
	}

	format, err := imgfilter.FormatFromPath(f.out)
	if err != nil {
		return err
	}

	img, err := imgfilter.LoadImage(f.in)
	if err != nil {
		return err
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	env := surface.New(w, h, surfaceOpts)
	defer env.Close()

	buf := imgfilter.GetData(img, env)

	var res imgfilter.PixelBuffer
	if f.filter == "pixelate" {
		res, err = imgfilter.Pixelate(buf, func(o *imgfilter.PixelateOptions) {
			o.Width, o.Height = w, h
			o.Size = cfg.PixelateSize()
			o.Surface = env
		})
		if err != nil {
			return err
		}
	} else {
		p := cfg.Params()
		p.Beta = cfg.Beta(f.filter)
		apply, ok := imgfilter.LookupFilter(f.filter, p)
		if !ok {
			return fmt.Errorf("unknown filter %q", f.filter)
		}
		res = apply(buf)
	}

	out, err := imgfilter.GetImage(res, w, h, env)
	if err != nil {
		return err
	}

	var encoded bytes.Buffer
	if err := imgfilter.Encode(&encoded, out, format); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return os.WriteFile(filepath.Clean(f.out), encoded.Bytes(), 0o644)
}

// override applies flags given on the command line on top of the configuration.
func override(cfg *config.Config, f *applyFlags, explicit map[string]bool) {
	ptr := func(v float64) *float64 { return &v }

	if explicit["threshold"] {
		cfg.Threshold.Threshold = ptr(f.threshold)
	}
	if explicit["light"] {
		cfg.Threshold.Light = ptr(f.light)
	}
	if explicit["dark"] {
		cfg.Threshold.Dark = ptr(f.dark)
	}
	if explicit["delta"] {
		cfg.Brightness.Delta = ptr(f.delta)
	}
	if explicit["beta"] {
		cfg.Contrast.Beta = ptr(f.beta)
		cfg.Saturation.Beta = ptr(f.beta)
	}
	if explicit["gamma"] {
		cfg.Gamma.Gamma = ptr(f.gamma)
	}
	if explicit["size"] {
		cfg.Pixelate.Size = ptr(f.size)
	}
	if explicit["smooth"] {
		cfg.Surface.Smoothing = f.smooth
	}
	if explicit["scaler"] {
		cfg.Surface.Scaler = f.scaler
	}
}

func runStats(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image path or data URL")
	luminance := fs.Bool("luminance", false, "use unweighted channel mean instead of brightness luma")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}

	img, err := imgfilter.LoadImage(*inPath)
	if err != nil {
		return err
	}
	st := imgfilter.AverageStats(imgfilter.GetData(img, nil), *luminance)
	_, err = fmt.Fprintf(w, "mean=%d min=%d max=%d\n", st.Mean, st.Min, st.Max)
	return err
}

func listFilters(w io.Writer) {
	names := append(imgfilter.FilterNames(), "pixelate")
	fmt.Fprintln(w, strings.Join(names, "\n"))
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
