package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/okit/config"
	"github.com/plus3/okit/ecs"
	"github.com/plus3/okit/ecs/debugui"
	debugui_ebiten "github.com/plus3/okit/ecs/debugui/ebiten"
	"github.com/plus3/okit/framelog"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Optional TOML configuration file.")
	balls := flag.Int("balls", 20, "Number of bouncing balls.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger, err := cfg.Logging.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger, *balls); err != nil {
		logger.Fatal("demo failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger, balls int) error {
	hubOpts, err := cfg.HubOptions(logger)
	if err != nil {
		return err
	}
	hub := framelog.NewHub(hubOpts...)
	defer hub.Close()

	gameLog := hub.NewLog("Game", "G")
	bounceLog := hub.NewLog("Bounce", "B", framelog.WithAlternateSink())

	scene := ecs.NewScene("demo", ecs.WithSceneLog(gameLog))
	scheduler := ecs.NewScheduler(scene)
	hub.SetFrameCounter(scheduler)

	width, height := cfg.Debug.WindowWidth, cfg.Debug.WindowHeight
	bodies := ecs.NewComponentSystem[*Body]()
	scheduler.Register(bodies)
	scheduler.Register(&BounceSystem{
		Bodies: bodies,
		Width:  float64(width),
		Height: float64(height),
		Log:    bounceLog,
	})

	spawnBalls(scene, balls, float64(width), float64(height))
	gameLog.Addf("spawned %d balls", balls)

	var backend *debugui_ebiten.ImguiBackend
	if cfg.Debug.UI {
		imguiBackend := ebitenbackend.NewEbitenBackend()
		imguiBackend.CreateWindow(cfg.Debug.WindowTitle, width, height)
		imgui.CurrentIO().SetIniFilename("")
		backend = &debugui_ebiten.ImguiBackend{EbitenBackend: imguiBackend}

		scheduler.Register(debugui.NewImguiSystem())
		debugui.SpawnDebugUI(scheduler, hub.Aggregate())
	} else {
		ebiten.SetWindowTitle(cfg.Debug.WindowTitle)
		ebiten.SetWindowSize(width, height)
	}
	if cfg.Loop.TickRate > 0 {
		ebiten.SetTPS(int(1 / cfg.Loop.TickRate.Seconds()))
	}

	game := debugui_ebiten.NewGame(scheduler, backend)
	game.DrawFunc = func(screen *ebiten.Image) {
		for _, b := range bodies.Components() {
			vector.DrawFilledCircle(screen, float32(b.X), float32(b.Y), float32(b.Radius), b.Color, true)
		}
	}

	logger.Info("starting demo", zap.Int("balls", balls), zap.Bool("debug_ui", cfg.Debug.UI))
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

var palette = []color.RGBA{
	{R: 0xe6, G: 0x4a, B: 0x19, A: 0xff},
	{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff},
	{R: 0x43, G: 0xa0, B: 0x47, A: 0xff},
	{R: 0xfd, G: 0xd8, B: 0x35, A: 0xff},
}
