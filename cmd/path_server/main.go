package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/config"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/grpc/pathserver"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/monitoring"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", -1, "The server port (-1 to use config default)")
	host := flag.String("host", "", "The server host (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	enableReflection := flag.Bool("enable-reflection", false, "Enable gRPC reflection for debugging")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *port == -1 {
		*port = cfg.Server.PathServer.Port
	}
	if *host == "" {
		*host = cfg.Server.PathServer.Host
	}
	if *logLevel == "" {
		*logLevel = cfg.Server.PathServer.LogLevel
	}
	if !*enableReflection {
		*enableReflection = cfg.Server.PathServer.EnableReflection
	}

	setupLogging(*logLevel)

	field := cfg.Field()
	log.Info().
		Int("port", *port).
		Str("host", *host).
		Int("field_width", field.Width).
		Int("field_height", field.Height).
		Msg("Starting path server")

	// The field is fixed for the life of the process; only the log level reloads
	if config.ConfigFilePath() != "" {
		config.WatchConfig(func(c *config.Config, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config change")
				return
			}
			setupLogging(c.Server.PathServer.LogLevel)
			log.Info().Str("log_level", c.Server.PathServer.LogLevel).Msg("Config reloaded")
		})
	}

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", *host, *port))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to listen")
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			pathserver.LoggingInterceptor(log.Logger),
			pathserver.RecoveryInterceptor(log.Logger),
		),
	)

	pathService, err := pathserver.NewServer(field)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create path service")
	}
	pathserver.RegisterPathServiceServer(grpcServer, pathService)

	if interval := cfg.Server.PathServer.MetricsInterval; interval > 0 {
		monitor := monitoring.NewSearchMonitor(time.Duration(interval) * time.Second)
		pathService.SetMonitor(monitor)
		monitor.Start()
		defer monitor.Stop()
	}

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(pathserver.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	if *enableReflection {
		reflection.Register(grpcServer)
		log.Info().Msg("gRPC reflection enabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		healthServer.SetServingStatus(pathserver.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

		time.Sleep(time.Duration(cfg.Server.PathServer.GracefulShutdownDelay) * time.Second)

		log.Info().Msg("Gracefully stopping gRPC server")
		grpcServer.GracefulStop()
		cancel()
	}()

	log.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("Failed to serve")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Server shutdown complete")
}

func setupLogging(level string) {
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
