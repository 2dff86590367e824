package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"
	"github.com/sudorandom/network-viz/pkg/config"
	"github.com/sudorandom/network-viz/pkg/netviz"
	"github.com/sudorandom/network-viz/pkg/scene"
)

type Globals struct {
	ConfigFile string `name:"config" short:"c" type:"path" help:"TOML file overriding the built-in defaults."`
	Seed       uint64 `help:"Random seed for the scene. 0 seeds from the clock."`
}

func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.ConfigFile)
	if err != nil {
		return nil, err
	}
	if g.ConfigFile != "" {
		log.Printf("[main] loaded config from %s", g.ConfigFile)
	}
	return cfg, nil
}

type RunCmd struct {
	Width        int      `default:"1280" help:"Initial window width."`
	Height       int      `default:"720" help:"Initial window height."`
	Headless     bool     `help:"Render at a fixed size without reacting to window changes."`
	TPS          int      `name:"tps" default:"60" help:"Ticks per second (layout updates)."`
	CaptureDir   string   `type:"path" help:"Directory for captured PNG frames."`
	CaptureEvery int      `default:"0" help:"Capture every Nth frame; 0 disables capture."`
	Containers   []string `default:"network-bg" sep:"," help:"Container ids offered to the visualization."`
}

func (c *RunCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	host := netviz.WindowHost{Containers: c.Containers, Width: c.Width, Height: c.Height}
	engine, err := netviz.Mount(host, cfg, scene.NewRand(g.Seed))
	if err != nil {
		return err
	}
	if engine == nil {
		log.Printf("[main] no %q container, nothing to render", cfg.Render.MountID)
		return nil
	}
	engine.FrameCaptureDir = c.CaptureDir
	engine.CaptureEvery = c.CaptureEvery
	engine.InitGlowTexture()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		engine.Close()
	}()

	ebiten.SetTPS(c.TPS)
	if c.Headless {
		log.Println("[main] running headless")
		engine.FixedSize = true
	} else {
		ebiten.SetWindowSize(c.Width, c.Height)
		ebiten.SetWindowTitle("Network")
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(engine)
}

type SnapshotCmd struct {
	Out    string `required:"" short:"o" type:"path" help:"SVG file to write."`
	Ticks  int    `default:"300" help:"Layout ticks to run before the snapshot."`
	Width  int    `default:"1280" help:"Canvas width."`
	Height int    `default:"720" help:"Canvas height."`
}

func (c *SnapshotCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	engine, err := netviz.NewEngine(cfg, c.Width, c.Height, scene.NewRand(g.Seed))
	if err != nil {
		return err
	}
	for range c.Ticks {
		engine.Tick()
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := engine.WriteSVG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	log.Printf("[main] wrote %s after %d ticks", c.Out, c.Ticks)
	return nil
}

type ConfigCmd struct{}

func (c *ConfigCmd) Run(*Globals) error {
	return config.Write(os.Stdout, config.Default())
}

type CLI struct {
	Globals

	Run      RunCmd      `cmd:"" default:"withargs" help:"Open the animated network in a window."`
	Snapshot SnapshotCmd `cmd:"" help:"Lay out the network headlessly and write an SVG."`
	Defaults ConfigCmd   `cmd:"" name:"config" help:"Print the default configuration as TOML."`
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("network-viz"),
		kong.Description("Animated force-directed network background."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}
