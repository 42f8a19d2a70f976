package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/sapling"
	"github.com/phanxgames/sapling/ebitensurface"
	"github.com/phanxgames/sapling/headless"
	"github.com/phanxgames/sapling/raylibsurface"
)

// Backend names accepted by --backend.
const (
	backendEbiten   = "ebiten"
	backendRaylib   = "raylib"
	backendHeadless = "headless"
)

type runOptions struct {
	config      string
	backend     string
	script      string
	screenshots string
	frames      int
	fps         bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Show a scene in a window",
		Long: `Build the scene described by a TOML file and show it until the close key is
pressed or the window is closed.

The headless backend renders in memory. It is driven by --script (a JSON
list of input, wait, screenshot and close steps) or, without a script, runs
--frames frames and stops.`,
		Example: `  sapling run --config scene.toml
  sapling run --config scene.toml --backend raylib
  sapling run --config scene.toml --backend headless --script check.json --screenshots out/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScene(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "scene TOML file (required)")
	cmd.Flags().StringVarP(&opts.backend, "backend", "b", backendEbiten, "surface backend: ebiten, raylib or headless")
	cmd.Flags().StringVar(&opts.script, "script", "", "JSON input script (headless backend)")
	cmd.Flags().StringVar(&opts.screenshots, "screenshots", headless.DefaultScreenshotDir, "screenshot directory (headless backend)")
	cmd.Flags().IntVar(&opts.frames, "frames", 1, "frames to render without a script (headless backend)")
	cmd.Flags().BoolVar(&opts.fps, "fps", false, "overlay a frame rate counter")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func runScene(cmd *cobra.Command, opts runOptions) error {
	logger := loggerFromContext(cmd.Context())

	sc, err := loadScene(opts.config)
	if err != nil {
		return err
	}
	cfg, err := sc.windowConfig()
	if err != nil {
		return err
	}
	cfg.Logger = logger
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	roots, err := sc.build(filepath.Dir(opts.config))
	if err != nil {
		return err
	}

	surface, hs, err := newSurface(opts, logger)
	if err != nil {
		return err
	}

	win, err := sapling.NewWindow(surface, cfg)
	if err != nil {
		return err
	}
	for _, r := range roots {
		win.Add(r)
	}
	if opts.fps {
		counter, listener := sapling.NewFPSCounter(nil)
		counter.SetPos(4, 4+counter.Height())
		win.Add(counter)
		win.AddEventListener(sapling.EventUpdate, listener)
	}
	ctx := cmd.Context()
	win.OnUpdate(func(float64) {
		if ctx.Err() != nil {
			_ = win.Close()
		}
	})
	if hs != nil {
		frames := max(opts.frames, 1)
		win.OnUpdate(func(float64) {
			// A script ends the run once its steps are spent; without one
			// the run stops after the requested frame count.
			if script := hs.Script(); script != nil {
				if script.Done() {
					hs.CloseWindow()
				}
			} else if win.Frame() >= uint64(frames) {
				hs.CloseWindow()
			}
		})
	}

	logger.Info("showing scene", "config", opts.config, "backend", opts.backend, "nodes", countNodes(roots))
	if err := win.Show(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if hs != nil {
		logger.Info("headless run finished", "frames", hs.Frames())
	}
	return nil
}

// newSurface builds the backend named by opts.backend. For the headless
// backend it also returns the concrete surface so the caller can stop it.
func newSurface(opts runOptions, logger *log.Logger) (sapling.Surface, *headless.Surface, error) {
	switch strings.ToLower(opts.backend) {
	case backendEbiten:
		s := ebitensurface.New()
		s.Logger = logger
		return s, nil, nil
	case backendRaylib:
		s := raylibsurface.New()
		s.Logger = logger
		return s, nil, nil
	case backendHeadless:
		s := headless.New()
		s.Logger = logger
		s.ScreenshotDir = opts.screenshots
		if opts.script != "" {
			script, err := headless.LoadScriptFile(opts.script)
			if err != nil {
				return nil, nil, err
			}
			s.SetScript(script)
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q (want %s, %s or %s)", opts.backend, backendEbiten, backendRaylib, backendHeadless)
	}
}

func countNodes(nodes []*sapling.Node) int {
	n := 0
	for _, node := range nodes {
		n += 1 + countNodes(node.Children())
	}
	return n
}
