package subscribers_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/events"
	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/events/subscribers"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(raw), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestLoggerSubscriber(t *testing.T) {
	logSub := subscribers.NewLoggerSubscriber("test-logger", zerolog.Nop(), zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeBattleStarted))
	assert.True(t, logSub.InterestedIn("any.event.type"))

	logSub.SetEventFilter([]string{events.TypeUnitKilled})
	assert.True(t, logSub.InterestedIn(events.TypeUnitKilled))
	assert.False(t, logSub.InterestedIn(events.TypeRoundStarted))

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeRoundStarted))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	archer := core.NewUnit(core.UnitPrototype{Name: "Archer", Health: 30, BaseAttack: 25, Cost: 20, AttackType: core.AttackRanged},
		"Archer 4", core.NewCoordinate(1, 6), core.SideLeft)
	knight := core.NewUnit(core.UnitPrototype{Name: "Knight", Health: 100, BaseAttack: 40, Cost: 40, AttackType: core.AttackMelee},
		"Knight 0", core.NewCoordinate(24, 6), core.SideRight)

	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, line map[string]interface{})
	}{
		{
			name:  "battle started",
			event: events.NewBattleStartedEvent("b-1", 10, 11, core.DefaultField()),
			check: func(t *testing.T, line map[string]interface{}) {
				assert.Equal(t, "Battle started", line["message"])
				assert.Equal(t, float64(10), line["player_units"])
				assert.Equal(t, float64(11), line["computer_units"])
				assert.Equal(t, float64(21), line["field_height"])
			},
		},
		{
			name:  "attack resolved",
			event: events.NewAttackResolvedEvent("b-1", 3, knight, archer, 40, []core.Coordinate{{X: 24, Y: 6}, {X: 23, Y: 6}}),
			check: func(t *testing.T, line map[string]interface{}) {
				assert.Equal(t, "Attack resolved", line["message"])
				assert.Equal(t, "Knight 0", line["attacker"])
				assert.Equal(t, "right", line["side"])
				assert.Equal(t, "Archer 4", line["target"])
				assert.Equal(t, float64(40), line["damage"])
				assert.Equal(t, float64(2), line["path_length"])
			},
		},
		{
			name:  "attack skipped",
			event: events.NewAttackSkippedEvent("b-1", 3, knight, "no reachable target"),
			check: func(t *testing.T, line map[string]interface{}) {
				assert.Equal(t, "no reachable target", line["reason"])
			},
		},
		{
			name:  "unit killed",
			event: events.NewUnitKilledEvent("b-1", 5, archer, "Knight 0"),
			check: func(t *testing.T, line map[string]interface{}) {
				assert.Equal(t, "Unit killed", line["message"])
				assert.Equal(t, "Archer 4", line["unit"])
				assert.Equal(t, float64(1), line["x"])
				assert.Equal(t, float64(6), line["y"])
				assert.Equal(t, "Knight 0", line["killed_by"])
			},
		},
		{
			name:  "round ended",
			event: events.NewRoundEndedEvent("b-1", 7, 12, 4, 0),
			check: func(t *testing.T, line map[string]interface{}) {
				assert.Equal(t, float64(7), line["round"])
				assert.Equal(t, float64(0), line["computer_survivors"])
			},
		},
		{
			name:  "battle ended undecided",
			event: events.NewBattleEndedEvent("b-1", core.SideLeft, false, 200, time.Second),
			check: func(t *testing.T, line map[string]interface{}) {
				assert.Equal(t, "none", line["winner"])
				assert.Equal(t, float64(200), line["rounds"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logSub := subscribers.NewLoggerSubscriber("event-logger", zerolog.New(&buf), zerolog.InfoLevel)
			logSub.HandleEvent(tc.event)

			lines := decodeLines(t, &buf)
			require.Len(t, lines, 1)
			assert.Equal(t, "info", lines[0]["level"])
			assert.Equal(t, "b-1", lines[0]["game_id"])
			assert.Equal(t, "battle_log", lines[0]["subscriber"])
			tc.check(t, lines[0])
		})
	}
}

func TestLoggerSubscriberLevelAndDevMode(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("dev", zerolog.New(&buf), zerolog.DebugLevel)
	logSub.SetDevMode(true)

	logSub.HandleEvent(events.NewRoundStartedEvent("b-2", 1))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "debug", lines[0]["level"])
	data, ok := lines[0]["event_data"].(map[string]interface{})
	require.True(t, ok, "dev mode attaches the raw event")
	assert.Equal(t, events.TypeRoundStarted, data["type"])
	assert.Equal(t, float64(1), data["Round"])
}

func TestLoggerSubscriberOnBus(t *testing.T) {
	var buf bytes.Buffer
	bus := events.NewEventBusWithLogger(zerolog.Nop())
	logSub := subscribers.NewLoggerSubscriber("bus-logger", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeBattleEnded})
	bus.Subscribe(logSub)

	bus.Publish(events.NewRoundStartedEvent("b-3", 1))
	bus.Publish(events.NewBattleEndedEvent("b-3", core.SideRight, true, 9, time.Millisecond))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "right", lines[0]["winner"])
}
