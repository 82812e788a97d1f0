package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/l1jgo/townsfolk/internal/command"
	"github.com/l1jgo/townsfolk/internal/config"
	coresys "github.com/l1jgo/townsfolk/internal/core/system"
	"github.com/l1jgo/townsfolk/internal/data"
	"github.com/l1jgo/townsfolk/internal/handler"
	"github.com/l1jgo/townsfolk/internal/journal"
	gonet "github.com/l1jgo/townsfolk/internal/net"
	"github.com/l1jgo/townsfolk/internal/persist"
	"github.com/l1jgo/townsfolk/internal/scripting"
	"github.com/l1jgo/townsfolk/internal/system"
	"github.com/l1jgo/townsfolk/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Player regeneration cadence, in wall time.
const (
	healthRegenPeriod = 5 * time.Second
	magicRegenPeriod  = 3 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              townsfolk  v0.1.0            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s\n\n", serverName)
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/townsfolk.toml"
	if p := os.Getenv("TOWNSFOLK_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	// 3. Static catalogs
	printSection("data")
	cat, err := data.Load(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	printStat("items", cat.Items.Count())
	printStat("monsters", cat.Monsters.Count())
	printStat("spells", cat.Spells.Count())
	printStat("regions", cat.Regions.Count())
	for name, sum := range cat.Digests {
		log.Debug("catalog file", zap.String("file", name), zap.String("blake2b", sum))
	}
	digest := cat.Digest()
	log.Info("catalog loaded", zap.String("digest", digest))

	formulas, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer formulas.Close()
	printOK("formulas loaded")
	fmt.Println()

	// 4. Stats store
	printSection("database")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := persist.Open(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer store.Close()
	printOK(fmt.Sprintf("%s store ready", cfg.Database.Driver))

	snap, haveSnap, err := store.LatestSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("load stats snapshot: %w", err)
	}
	fmt.Println()

	// 5. Narration sinks: the spectator hub always, the journal when enabled
	hub := gonet.NewHub(cfg.Network.OutQueueSize, cfg.Network.WriteTimeout, log)
	narrators := world.Narrators{hub}
	var recorder system.Recorder
	if cfg.Journal.Enabled {
		j := journal.New(cfg.Journal.Dir, journal.Header{Server: cfg.Server.Name, Catalog: digest}, log)
		defer func() {
			if err := j.Close(); err != nil {
				log.Warn("close journal", zap.Error(err))
			}
		}()
		narrators = append(narrators, j)
		recorder = j
	}

	// 6. World graph
	printSection("world")
	graph := world.NewGraph(world.GraphOptions{
		Factions: cat.Factions,
		Messages: cat.Messages,
		Rand:     world.NewRand(cfg.Simulation.Seed),
		Narrator: narrators,
		Log:      log,
	})
	dangling, err := cat.Regions.Build(graph)
	if err != nil {
		return fmt.Errorf("build world: %w", err)
	}
	for _, d := range dangling {
		log.Warn("dangling connection", zap.Error(d))
	}
	printStat("rooms", graph.RoomCount())

	// 7. Simulation
	sim := system.New(system.Options{
		World:    graph,
		Catalog:  cat,
		Tunables: system.TunablesFrom(cfg.Simulation),
		Formulas: formulas,
		Log:      log,
	})
	if haveSnap {
		sim.Stats.Restore(snap)
		printOK("kill tallies restored")
	}
	printStat("items seeded", sim.SeedItems())
	system.InstallHooks(sim.Bus, recorder, log)
	fmt.Println()

	// 8. Network
	netServer, err := gonet.NewServer(cfg.Network.BindAddress, gonet.SessionOptions{
		InQueueSize:  cfg.Network.InQueueSize,
		OutQueueSize: cfg.Network.OutQueueSize,
		ReadTimeout:  cfg.Network.ReadTimeout,
		WriteTimeout: cfg.Network.WriteTimeout,
		PingInterval: cfg.Network.PingInterval,
	}, hub, log)
	if err != nil {
		return fmt.Errorf("net server: %w", err)
	}
	go netServer.AcceptLoop()

	sessions := gonet.NewSessionStore()
	reg := command.NewRegistry(log)
	deps := &handler.Deps{Sim: sim, Log: log}
	handler.RegisterAll(reg, deps)

	// 9. Systems
	tick := cfg.Network.TickRate
	persistSys := system.NewPersistenceSystem(store, sim.Stats, sim.Bus, log, ticksFor(cfg.Database.FlushInterval, tick))
	runner := coresys.NewRunner(log, tick)
	runner.Register(system.NewInputSystem(netServer, reg, sessions, cfg.Network.MaxInputsPerTick, handler.Hooks(deps), log))
	runner.Register(system.NewEventDispatchSystem(sim.Bus))
	runner.Register(system.NewRegenSystem(sim, ticksFor(healthRegenPeriod, tick), ticksFor(magicRegenPeriod, tick)))
	runner.Register(system.NewOutputSystem(sessions))
	runner.Register(persistSys)

	simCtx, stopSim := context.WithCancel(context.Background())
	defer stopSim()
	sim.Start(simCtx)

	// 10. Main loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("listening on %s (/play, /watch)", netServer.Addr().String()))
	printReady(fmt.Sprintf("game loop running (tick: %s)", tick))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			runner.Tick(tick)
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			sessions.CloseAll()
			stopSim()
			sim.Stop()
			// deliver what the last actions emitted, then write it out
			runner.TickPhase(coresys.PhasePreUpdate, tick)
			persistSys.Flush()

			shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := netServer.Shutdown(shutCtx); err != nil {
				log.Warn("net shutdown", zap.Error(err))
			}
			shutCancel()
			log.Info("server stopped",
				zap.Int64("npcs_killed", sim.Stats.NpcsKilled()),
				zap.Int64("monsters_killed", sim.Stats.MonstersKilled()),
				zap.Uint64("spectator_lines_dropped", hub.Dropped()))
			return nil
		}
	}
}

// ticksFor converts a wall-time period into a whole number of ticks, at
// least one.
func ticksFor(period, tick time.Duration) int {
	if tick <= 0 {
		return 1
	}
	return max(int(period/tick), 1)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
