package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttackType(t *testing.T) {
	tests := []struct {
		in       string
		expected AttackType
		wantErr  bool
	}{
		{"melee", AttackMelee, false},
		{"Ranged combat", AttackRanged, false},
		{" RANGED ", AttackRanged, false},
		{"Melee combat", AttackMelee, false},
		{"siege", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAttackType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownAttackType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestUnitPrototype_Validate(t *testing.T) {
	ok := UnitPrototype{Name: "Knight", Cost: 10, AttackType: AttackMelee}
	assert.NoError(t, ok.Validate())

	free := ok
	free.Cost = 0
	assert.ErrorIs(t, free.Validate(), ErrInvalidCost)

	odd := ok
	odd.AttackType = "magic"
	assert.ErrorIs(t, odd.Validate(), ErrUnknownAttackType)
}

func TestNewUnit(t *testing.T) {
	proto := UnitPrototype{
		Name:          "Archer",
		UnitType:      "Archer",
		Health:        30,
		BaseAttack:    12,
		Cost:          20,
		AttackType:    AttackRanged,
		AttackBonuses: map[string]float64{"Knight": 0.5},
	}

	u := NewUnit(proto, "Archer 7", Coordinate{1, 4}, SideLeft)
	assert.Equal(t, "Archer 7", u.Name)
	assert.True(t, u.IsAlive())
	assert.True(t, u.IsRanged())
	assert.Equal(t, Coordinate{1, 4}, u.Cell())

	// Bonuses must not alias the prototype map
	u.AttackBonuses["Knight"] = 9
	assert.Equal(t, 0.5, proto.AttackBonuses["Knight"])
}

func TestUnit_TakeDamage(t *testing.T) {
	u := &Unit{Name: "Pikeman 1", Health: 10, Alive: true}

	assert.False(t, u.TakeDamage(4))
	assert.Equal(t, 6, u.Health)
	assert.False(t, u.TakeDamage(0))

	assert.True(t, u.TakeDamage(8), "lethal hit should report death")
	assert.Equal(t, 0, u.Health)
	assert.False(t, u.IsAlive())

	assert.False(t, u.TakeDamage(5), "dead units cannot die twice")
}

func TestAliveUnits(t *testing.T) {
	a := &Unit{Name: "a", Alive: true}
	b := &Unit{Name: "b"}
	c := &Unit{Name: "c", Alive: true}

	assert.Equal(t, []*Unit{a, c}, AliveUnits([]*Unit{a, b, nil, c}))
	assert.Empty(t, AliveUnits(nil))
}

func TestField(t *testing.T) {
	f := DefaultField()
	require.NoError(t, f.Validate())

	assert.Equal(t, 0, f.LayerColumn(SideLeft, 0))
	assert.Equal(t, 2, f.LayerColumn(SideLeft, 2))
	assert.Equal(t, 26, f.LayerColumn(SideRight, 0))
	assert.Equal(t, 24, f.LayerColumn(SideRight, 2))

	layer, ok := f.LayerOf(SideRight, 25)
	assert.True(t, ok)
	assert.Equal(t, 1, layer)
	_, ok = f.LayerOf(SideLeft, 13)
	assert.False(t, ok)

	cells := f.DeploymentCells(SideRight)
	assert.Len(t, cells, 3*21)
	for _, c := range cells {
		assert.GreaterOrEqual(t, c.X, 24)
		assert.True(t, f.Contains(c))
	}

	assert.Equal(t, SideRight, SideLeft.Opponent())
	assert.ErrorIs(t, Field{Width: 5, Height: 5, Layers: 3}.Validate(), ErrInvalidDimensions)
	assert.ErrorIs(t, Field{Width: 0, Height: 5, Layers: 1}.Validate(), ErrInvalidDimensions)
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{"left", SideLeft, false},
		{" Right ", SideRight, false},
		{"LEFT", SideLeft, false},
		{"centre", SideLeft, true},
		{"", SideLeft, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSide(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownSide)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), strings.ToLower(strings.TrimSpace(tt.in)))
		})
	}
}
