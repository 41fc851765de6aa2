package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/phanxgames/plexus"
	"github.com/spf13/cobra"
)

var (
	presetName string
	configFile string
	themeName  string
	seed       uint64
	width      int
	height     int
	showFPS    bool
	tps        int
	debug      bool
	noDecor    bool
	ticks      int
	maxFrames  int
	shotDir    string
	asYAML     bool
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "plexus",
		Short:        "animated particle-network backdrop",
		SilenceUsage: true,
		RunE:         runWindow,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the backdrop in a window",
		RunE:  runWindow,
	}
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		addConfigFlags(c)
		c.Flags().StringVar(&themeName, "theme", "auto", "theme: dark, light or auto")
		c.Flags().IntVar(&width, "width", 1280, "window width")
		c.Flags().IntVar(&height, "height", 720, "window height")
		c.Flags().BoolVar(&showFPS, "fps", false, "show FPS/TPS overlay")
		c.Flags().IntVar(&tps, "tps", 0, "ticks per second (0 keeps the default)")
		c.Flags().BoolVar(&debug, "debug", false, "log frame timings to stderr")
		c.Flags().BoolVar(&noDecor, "no-decor", false, "draw the particle layer only")
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}
	presetsCmd.Flags().BoolVar(&asYAML, "yaml", false, "print every preset as a YAML config")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "run headless and plot connection and packet counts",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	addConfigFlags(statsCmd)
	statsCmd.Flags().IntVar(&ticks, "ticks", 600, "number of ticks to simulate")
	statsCmd.Flags().IntVar(&width, "width", 1280, "field width")
	statsCmd.Flags().IntVar(&height, "height", 720, "field height")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "run a JSON script headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	addConfigFlags(scriptCmd)
	scriptCmd.Flags().IntVar(&maxFrames, "max-frames", 10000, "stop after this many frames")
	scriptCmd.Flags().StringVar(&shotDir, "screenshots", "screenshots", "screenshot directory")

	rootCmd.AddCommand(runCmd, presetsCmd, statsCmd, scriptCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func addConfigFlags(c *cobra.Command) {
	c.Flags().StringVar(&presetName, "preset", "neural", "preset name")
	c.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	c.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
}

// loadConfig resolves --config over --preset.
func loadConfig() (plexus.Config, error) {
	if configFile != "" {
		return plexus.LoadConfig(configFile)
	}
	cfg, ok := plexus.PresetByName(presetName)
	if !ok {
		return plexus.Config{}, fmt.Errorf("unknown preset %q (have %s)", presetName, strings.Join(plexus.Presets(), ", "))
	}
	return cfg, nil
}

func layerOptions(extra ...plexus.LayerOption) []plexus.LayerOption {
	opts := extra
	if seed != 0 {
		opts = append(opts, plexus.WithSeed(seed))
	}
	return opts
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noDecor {
		cfg.Decor = plexus.DecorConfig{}
		cfg.LayerOpacity = plexus.PerTheme{Dark: 1, Light: 1}
	}

	theme, themes, stop, err := resolveTheme(themeName)
	if err != nil {
		return err
	}
	defer stop()

	b := plexus.NewBackdrop(cfg, layerOptions()...)
	b.Layer().SetDebugMode(debug)

	return plexus.Run(b, plexus.RunConfig{
		Title:   "plexus · " + string(cfg.Look),
		Width:   width,
		Height:  height,
		ShowFPS: showFPS,
		Theme:   theme,
		TPS:     tps,
		Keys:    true,
		Themes:  themes,
	})
}

func listPresets(cmd *cobra.Command, args []string) error {
	if asYAML {
		for _, name := range plexus.Presets() {
			cfg, _ := plexus.PresetByName(name)
			data, err := plexus.EncodeConfig(cfg)
			if err != nil {
				return err
			}
			fmt.Printf("# %s\n%s\n", name, data)
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLOOK\tPOINTS\tLINK\tPACKETS")
	for _, name := range plexus.Presets() {
		cfg, _ := plexus.PresetByName(name)
		packets := "off"
		if cfg.Packets {
			packets = fmt.Sprintf("max %d", cfg.MaxPackets)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.0f\t%s\n", name, cfg.Look, cfg.Points, cfg.LinkDistance, packets)
	}
	return w.Flush()
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if ticks <= 0 {
		return fmt.Errorf("--ticks must be positive, got %d", ticks)
	}

	s := collectStats(cfg, width, height, ticks, layerOptions()...)

	fmt.Println(titleStyle.Render(fmt.Sprintf("plexus stats · %s · %dx%d · %d ticks", cfg.Preset, width, height, ticks)))
	fmt.Printf("%s %.1f avg, %.0f max\n", labelStyle.Render("connections:"), mean(s.connections), maxOf(s.connections))
	fmt.Printf("%s %.2f avg, %.0f max\n", labelStyle.Render("packets:    "), mean(s.packets), maxOf(s.packets))
	fmt.Println()

	fmt.Println(asciigraph.Plot(s.connections,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("connections per tick"),
	))
	fmt.Println()
	if cfg.Packets {
		fmt.Println(asciigraph.Plot(s.packets,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("live packets per tick"),
		))
	}
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	runner, err := plexus.LoadScript(data)
	if err != nil {
		return err
	}

	l := plexus.NewLayer(cfg, layerOptions(plexus.WithSurfaceFactory(plexus.RecordingFactory))...)
	l.ScreenshotDir = shotDir
	frames := runner.Run(l, maxFrames)

	status := "done"
	if !runner.Done() {
		status = fmt.Sprintf("stopped at --max-frames %d", maxFrames)
	}
	fmt.Println(titleStyle.Render("plexus script · " + args[0]))
	fmt.Printf("%s %d\n", labelStyle.Render("frames:"), frames)
	fmt.Printf("%s %d\n", labelStyle.Render("ticks: "), l.Ticks())
	fmt.Printf("%s %s\n", labelStyle.Render("status:"), status)
	if f := l.Field(); f != nil {
		fmt.Printf("%s %d points, %d connections, %d packets\n",
			labelStyle.Render("field: "), len(f.Points()), len(f.Connections()), len(f.Packets()))
	}
	l.Unmount()
	if !runner.Done() {
		return fmt.Errorf("script did not finish within %d frames", maxFrames)
	}
	return nil
}
