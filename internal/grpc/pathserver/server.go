package pathserver

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/pathfinding"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/targets"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/monitoring"
)

// Server implements PathServiceServer on top of a single path finder.
// It holds no per-request state and serves calls concurrently.
type Server struct {
	field   core.Field
	paths   *pathfinding.PathFinder
	targets *targets.Finder
	monitor *monitoring.SearchMonitor
	logger  zerolog.Logger
}

// NewServer creates a path server for the given field
func NewServer(field core.Field) (*Server, error) {
	if err := field.Validate(); err != nil {
		return nil, err
	}
	pf, err := pathfinding.NewForField(field, pathfinding.WithLogger(log.Logger))
	if err != nil {
		return nil, err
	}
	return &Server{
		field:   field,
		paths:   pf,
		targets: targets.NewFinder(field),
		logger:  log.With().Str("component", "path_server").Logger(),
	}, nil
}

// SetMonitor makes the server report every FindPath call to m
func (s *Server) SetMonitor(m *monitoring.SearchMonitor) {
	s.monitor = m
}

// FindPath returns the shortest walkable route between two cells
func (s *Server) FindPath(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	start := time.Now()
	path, err := s.findPath(req)
	if s.monitor != nil {
		s.monitor.Record(time.Since(start), len(path) > 0, err)
	}
	if err != nil {
		return nil, err
	}
	return encodePath(path)
}

func (s *Server) findPath(req *structpb.Struct) ([]core.Coordinate, error) {
	in, err := decodeFindPathRequest(req)
	if err != nil {
		return nil, err
	}

	path, err := s.paths.FindPath(in.attacker, in.target, in.units)
	if err != nil {
		if errors.Is(err, core.ErrInvalidCoordinates) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		s.logger.Error().Err(err).Msg("Path search failed")
		return nil, status.Errorf(codes.Internal, "path search failed: %v", err)
	}

	s.logger.Debug().
		Str("attacker", in.attacker.String()).
		Str("target", in.target.String()).
		Int("units", len(in.units)).
		Int("path_cells", len(path)).
		Msg("Path computed")

	return path, nil
}

// SuitableTargets lists the units of target_side that melee attackers can engage
func (s *Server) SuitableTargets(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	in, err := decodeSuitableTargetsRequest(req)
	if err != nil {
		return nil, err
	}

	found := s.targets.SuitableUnits(in.units, in.targetSide)
	s.logger.Debug().
		Str("target_side", in.targetSide.String()).
		Int("units", len(in.units)).
		Int("targets", len(found)).
		Msg("Suitable targets computed")

	return encodeTargets(found)
}
