package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/config"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/army"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/battle"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/events"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/pathfinding"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/targets"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	catalogPath := flag.String("catalog", "", "Path to unit catalog (empty to use config default)")
	points := flag.Int("points", -1, "Points budget per army (-1 to use config default)")
	seed := flag.Int64("seed", 0, "Seed for army placement (0 picks one from the clock)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	showEvents := flag.Bool("events", false, "Log every battle event, not just kills and the result")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *catalogPath == "" {
		*catalogPath = cfg.Army.CatalogPath
	}
	if *points == -1 {
		*points = cfg.Army.MaxPoints
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	catalog, err := army.LoadCatalog(*catalogPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *catalogPath).Msg("Failed to load unit catalog")
	}

	field := cfg.Field()
	rng := rand.New(rand.NewSource(*seed))
	gen := army.NewGenerator(field, army.WeightsFromConfig(cfg.Army), rng)

	player, err := gen.Generate(catalog.Units, *points, core.SideLeft)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate player army")
	}
	computer, err := gen.Generate(catalog.Units, *points, core.SideRight)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate computer army")
	}

	fmt.Printf("Battle seed: %d\n", *seed)
	fmt.Printf("Player: %d units, %d points. Computer: %d units, %d points.\n\n",
		len(player.Units), player.Points, len(computer.Units), computer.Points)
	fmt.Println(renderField(field, player.Units, computer.Units))

	paths, err := pathfinding.NewForField(field)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create path finder")
	}
	program := battle.NewTargetingProgram(paths, targets.NewFinder(field), cfg.Simulation.ParallelPathSearch)

	bus := events.NewEventBus()
	battleLog := subscribers.NewLoggerSubscriber("battle-log", log.Logger, zerolog.InfoLevel)
	if !*showEvents {
		battleLog.SetEventFilter([]string{events.TypeBattleStarted, events.TypeUnitKilled, events.TypeBattleEnded})
	}
	bus.Subscribe(battleLog)

	sim := battle.NewSimulator(field, program,
		battle.WithPublisher(bus),
		battle.WithMaxRounds(cfg.Simulation.MaxRounds))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := sim.Simulate(ctx, player, computer)
	if err != nil {
		log.Fatal().Err(err).Msg("Battle failed")
	}

	fmt.Println()
	fmt.Println(renderField(field, player.Units, computer.Units))
	switch {
	case !res.Decided:
		fmt.Printf("No winner after %d rounds.\n", res.Rounds)
	case res.Winner == player.Side:
		fmt.Printf("Player wins after %d rounds.\n", res.Rounds)
	default:
		fmt.Printf("Computer wins after %d rounds.\n", res.Rounds)
	}
	fmt.Printf("Attacks: %d. Survivors: player %d, computer %d.\n",
		res.Attacks, len(res.PlayerSurvivors), len(res.ComputerSurvivors))
}

// renderField draws living units as the first letter of their type,
// upper case for the player and lower case for the computer
func renderField(field core.Field, player, computer []*core.Unit) string {
	grid := make([][]byte, field.Height)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(".", field.Width))
	}
	mark := func(units []*core.Unit, upper bool) {
		for _, u := range core.AliveUnits(units) {
			if !field.Contains(u.Position) || u.UnitType == "" {
				continue
			}
			letter := strings.ToLower(u.UnitType[:1])
			if upper {
				letter = strings.ToUpper(letter)
			}
			grid[u.Position.Y][u.Position.X] = letter[0]
		}
	}
	mark(player, true)
	mark(computer, false)

	var sb strings.Builder
	for _, row := range grid {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("APP_ENV") == "production" || format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
