// Command ewinfo prints equivalent-width measurements for synthetic spectra.
//
// Usage:
//
//	ewinfo [flags]
//	ewinfo -config lines.yaml [flags]
//
// Without a config file it measures a single Gaussian line described by the
// line flags. A YAML config describes a list of named lines measured on one
// shared synthetic spectrum; when the list contains both Halpha and Hbeta
// the Balmer decrement and the implied color excess are printed as well.
//
// Examples:
//
//	ewinfo -center 4861 -sigma 3 -amplitude 0.5
//	ewinfo -noise 0.02 -seed 7 -linear
//	ewinfo -config balmer.yaml
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-spectro/measure/ew"
	"github.com/cwbudde/algo-spectro/measure/lineflux"
	"github.com/cwbudde/algo-spectro/spectro/signal"
	"github.com/cwbudde/algo-spectro/spectro/spectrum"
	"github.com/cwbudde/algo-spectro/stats/flux"
)

type windowSpec struct {
	Lo float64 `yaml:"lo"`
	Hi float64 `yaml:"hi"`
}

func (w windowSpec) window() spectrum.Window {
	return spectrum.Window{Lo: w.Lo, Hi: w.Hi}
}

type lineSpec struct {
	Name      string       `yaml:"name"`
	Center    float64      `yaml:"center"`
	Sigma     float64      `yaml:"sigma"`
	Amplitude float64      `yaml:"amplitude"`
	Line      windowSpec   `yaml:"line"`
	Continuum []windowSpec `yaml:"continuum"`
}

type configFile struct {
	Grid struct {
		Lo      float64 `yaml:"lo"`
		Hi      float64 `yaml:"hi"`
		Samples int     `yaml:"samples"`
	} `yaml:"grid"`
	Continuum struct {
		Level float64 `yaml:"level"`
		Slope float64 `yaml:"slope"`
	} `yaml:"continuum"`
	Noise float64    `yaml:"noise"`
	Seed  int64      `yaml:"seed"`
	Lines []lineSpec `yaml:"lines"`
}

func main() {
	configPath := flag.String("config", "", "YAML file describing the spectrum and line list")
	level := flag.Float64("level", 1.0, "continuum level")
	slope := flag.Float64("slope", 0, "continuum slope per wavelength unit")
	noise := flag.Float64("noise", 0, "white noise amplitude")
	seed := flag.Int64("seed", 1, "noise random seed")
	lo := flag.Float64("lo", 4800, "grid start wavelength")
	hi := flag.Float64("hi", 4900, "grid end wavelength")
	n := flag.Int("n", 101, "grid sample count")
	center := flag.Float64("center", 4861, "line center wavelength")
	sigma := flag.Float64("sigma", 3, "line Gaussian sigma")
	amplitude := flag.Float64("amplitude", 0.5, "line peak amplitude (negative for absorption)")
	lineWin := flag.String("line", "4850:4870", "line window as lo:hi")
	contWins := flag.String("cont", "4800:4858,4865:4900", "continuum windows as lo:hi[,lo:hi...]")
	linear := flag.Bool("linear", false, "fit a least-squares line instead of a cubic spline")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ewinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints equivalent-width measurements for synthetic spectra.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ewinfo -center 4861 -sigma 3 -amplitude 0.5\n")
		fmt.Fprintf(os.Stderr, "  ewinfo -noise 0.02 -seed 7 -linear\n")
		fmt.Fprintf(os.Stderr, "  ewinfo -config balmer.yaml\n")
	}
	flag.Parse()

	cfg, err := buildConfig(*configPath, flagConfig{
		level: *level, slope: *slope, noise: *noise, seed: *seed,
		lo: *lo, hi: *hi, n: *n,
		center: *center, sigma: *sigma, amplitude: *amplitude,
		lineWin: *lineWin, contWins: *contWins,
	})
	if err != nil {
		fatal(err)
	}

	if err := run(cfg, *linear); err != nil {
		fatal(err)
	}
}

type flagConfig struct {
	level, slope, noise      float64
	seed                     int64
	lo, hi                   float64
	n                        int
	center, sigma, amplitude float64
	lineWin, contWins        string
}

func buildConfig(path string, f flagConfig) (configFile, error) {
	var cfg configFile

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}

		applyConfigDefaults(&cfg)

		return cfg, nil
	}

	line, err := parseWindow(f.lineWin)
	if err != nil {
		return cfg, fmt.Errorf("parsing -line: %w", err)
	}

	conts, err := parseWindows(f.contWins)
	if err != nil {
		return cfg, fmt.Errorf("parsing -cont: %w", err)
	}

	cfg.Grid.Lo = f.lo
	cfg.Grid.Hi = f.hi
	cfg.Grid.Samples = f.n
	cfg.Continuum.Level = f.level
	cfg.Continuum.Slope = f.slope
	cfg.Noise = f.noise
	cfg.Seed = f.seed
	cfg.Lines = []lineSpec{{
		Name:      "line",
		Center:    f.center,
		Sigma:     f.sigma,
		Amplitude: f.amplitude,
		Line:      line,
		Continuum: conts,
	}}

	return cfg, nil
}

func applyConfigDefaults(cfg *configFile) {
	if cfg.Grid.Samples == 0 {
		cfg.Grid.Samples = 1001
	}

	if cfg.Continuum.Level == 0 {
		cfg.Continuum.Level = 1
	}

	if cfg.Seed == 0 {
		cfg.Seed = 1
	}

	for i := range cfg.Lines {
		if cfg.Lines[i].Sigma == 0 {
			cfg.Lines[i].Sigma = 3
		}
	}
}

func run(cfg configFile, linear bool) error {
	gen := signal.NewGenerator(signal.WithSeed(cfg.Seed))

	lines := make([]signal.Line, len(cfg.Lines))
	for i, l := range cfg.Lines {
		lines[i] = signal.Line{Center: l.Center, Sigma: l.Sigma, Amplitude: l.Amplitude}
	}

	spec, err := gen.LineSpectrum(cfg.Grid.Lo, cfg.Grid.Hi, cfg.Grid.Samples,
		cfg.Continuum.Level, cfg.Continuum.Slope, cfg.Noise, lines...)
	if err != nil {
		return fmt.Errorf("synthesizing spectrum: %w", err)
	}

	method := ew.ContinuumSpline
	if linear {
		method = ew.ContinuumLinear
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCENTER\tEW\tERR\tFLUX\tFWHM\tCONT\tSNR")

	fluxes := map[string]float64{}

	for _, l := range cfg.Lines {
		mcfg := ew.Config{
			LineWindow: l.Line.window(),
			Method:     method,
		}
		for _, c := range l.Continuum {
			mcfg.ContinuumWindows = append(mcfg.ContinuumWindows, c.window())
		}

		ewRes, err := ew.Measure(spec, mcfg)
		if err != nil {
			return fmt.Errorf("measuring %s: %w", l.Name, err)
		}

		profile, err := lineflux.Measure(spec, mcfg)
		if err != nil {
			return fmt.Errorf("measuring %s profile: %w", l.Name, err)
		}

		_, contFlux := spec.Select(mcfg.ContinuumWindows...)

		fmt.Fprintf(w, "%s\t%.1f\t%.4f\t%.4f\t%.4f\t%.3f\t%.4f\t%.1f\n",
			l.Name, l.Center, ewRes.EquivalentWidth, ewRes.WidthError,
			profile.Flux, profile.FWHM, ewRes.MeanContinuum, flux.DERSNR(contFlux))

		fluxes[strings.ToLower(l.Name)] = profile.Flux
	}

	if err := w.Flush(); err != nil {
		return err
	}

	printDecrement(fluxes)

	return nil
}

func printDecrement(fluxes map[string]float64) {
	halpha, okA := fluxes["halpha"]
	hbeta, okB := fluxes["hbeta"]

	if !okA || !okB {
		return
	}

	dec, err := lineflux.Decrement(halpha, hbeta)
	if err != nil {
		fmt.Fprintf(os.Stderr, "balmer decrement: %v\n", err)
		return
	}

	ebv, err := lineflux.ColorExcess(dec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "color excess: %v\n", err)
		return
	}

	fmt.Printf("\nBalmer decrement Hα/Hβ: %.3f\n", dec)
	fmt.Printf("Color excess E(B-V):    %.3f\n", ebv)
}

func parseWindow(s string) (windowSpec, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return windowSpec{}, fmt.Errorf("window %q is not of the form lo:hi", s)
	}

	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return windowSpec{}, fmt.Errorf("window %q: %w", s, err)
	}

	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return windowSpec{}, fmt.Errorf("window %q: %w", s, err)
	}

	return windowSpec{Lo: lo, Hi: hi}, nil
}

func parseWindows(s string) ([]windowSpec, error) {
	var out []windowSpec

	for _, part := range strings.Split(s, ",") {
		w, err := parseWindow(part)
		if err != nil {
			return nil, err
		}

		out = append(out, w)
	}

	return out, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "ewinfo:", err)
	os.Exit(1)
}
