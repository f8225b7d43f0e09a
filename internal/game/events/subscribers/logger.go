package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/events"
)

// LoggerSubscriber writes battle events to a structured log. It doubles as
// the battle log printed by the simulator CLI.
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // nil logs every type
	devMode         bool            // attach the full event as JSON
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "battle_log").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent logs the event with its type-specific fields
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.logLevel).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	msg := "Battle event"
	switch e := event.(type) {
	case *events.BattleStartedEvent:
		msg = "Battle started"
		logEvent.
			Int("player_units", e.PlayerUnits).
			Int("computer_units", e.ComputerUnits).
			Int("field_width", e.FieldWidth).
			Int("field_height", e.FieldHeight)

	case *events.BattleEndedEvent:
		msg = "Battle ended"
		if e.Decided {
			logEvent.Str("winner", e.Winner.String())
		} else {
			logEvent.Str("winner", "none")
		}
		logEvent.
			Int("rounds", e.Rounds).
			Dur("duration", e.Duration)

	case *events.RoundStartedEvent:
		msg = "Round started"
		logEvent.Int("round", e.Round)

	case *events.RoundEndedEvent:
		msg = "Round ended"
		logEvent.
			Int("round", e.Round).
			Int("attacks", e.Attacks).
			Int("player_survivors", e.PlayerSurvivors).
			Int("computer_survivors", e.ComputerSurvivors)

	case *events.AttackResolvedEvent:
		msg = "Attack resolved"
		logEvent.
			Int("round", e.Round).
			Str("attacker", e.Attacker).
			Str("side", e.AttackerSide.String()).
			Str("target", e.Target).
			Int("damage", e.Damage).
			Int("target_health", e.TargetHealth).
			Int("path_length", len(e.Path))

	case *events.AttackSkippedEvent:
		msg = "Attack skipped"
		logEvent.
			Int("round", e.Round).
			Str("attacker", e.Attacker).
			Str("side", e.AttackerSide.String()).
			Str("reason", e.Reason)

	case *events.UnitKilledEvent:
		msg = "Unit killed"
		logEvent.
			Int("round", e.Round).
			Str("unit", e.Unit).
			Str("side", e.Side.String()).
			Int("x", e.Position.X).
			Int("y", e.Position.Y).
			Str("killed_by", e.KilledBy)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg(msg)
}
