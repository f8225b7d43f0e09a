package pathserver

import (
	"fmt"
	"math"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"
)

// Message layouts
//
//	FindPath request:         {attacker: Cell, target: Cell, units: [Unit]}
//	FindPath response:        {path: [Cell], reachable: bool, length: number}
//	SuitableTargets request:  {target_side: "left"|"right", units: [Unit]}
//	SuitableTargets response: {targets: [Unit]}
//
// Cell is {x, y}. Unit is {x, y, name?, side?, alive?}; alive defaults to
// true and side to "left".

type findPathRequest struct {
	attacker core.Coordinate
	target   core.Coordinate
	units    []*core.Unit
}

type suitableTargetsRequest struct {
	targetSide core.Side
	units      []*core.Unit
}

func invalidArgument(format string, args ...interface{}) error {
	return status.Errorf(codes.InvalidArgument, format, args...)
}

func decodeFindPathRequest(req *structpb.Struct) (*findPathRequest, error) {
	fields := req.GetFields()

	attacker, err := cellField(fields, "attacker")
	if err != nil {
		return nil, err
	}
	target, err := cellField(fields, "target")
	if err != nil {
		return nil, err
	}
	units, err := unitsField(fields)
	if err != nil {
		return nil, err
	}
	return &findPathRequest{attacker: attacker, target: target, units: units}, nil
}

func decodeSuitableTargetsRequest(req *structpb.Struct) (*suitableTargetsRequest, error) {
	fields := req.GetFields()

	sideName, err := stringField(fields, "target_side", "")
	if err != nil {
		return nil, err
	}
	side, err := core.ParseSide(sideName)
	if err != nil {
		return nil, invalidArgument("target_side: %v", err)
	}
	units, err := unitsField(fields)
	if err != nil {
		return nil, err
	}
	return &suitableTargetsRequest{targetSide: side, units: units}, nil
}

func cellField(fields map[string]*structpb.Value, key string) (core.Coordinate, error) {
	v, ok := fields[key]
	if !ok {
		return core.Coordinate{}, invalidArgument("%s: missing", key)
	}
	s := v.GetStructValue()
	if s == nil {
		return core.Coordinate{}, invalidArgument("%s: expected an object with x and y", key)
	}
	return cellFromStruct(key, s.GetFields())
}

func cellFromStruct(key string, fields map[string]*structpb.Value) (core.Coordinate, error) {
	x, err := intField(fields, "x")
	if err != nil {
		return core.Coordinate{}, invalidArgument("%s: %v", key, err)
	}
	y, err := intField(fields, "y")
	if err != nil {
		return core.Coordinate{}, invalidArgument("%s: %v", key, err)
	}
	return core.NewCoordinate(x, y), nil
}

func unitsField(fields map[string]*structpb.Value) ([]*core.Unit, error) {
	v, ok := fields["units"]
	if !ok {
		return nil, nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil, invalidArgument("units: expected a list")
	}

	units := make([]*core.Unit, 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		key := fmt.Sprintf("units[%d]", i)
		s := item.GetStructValue()
		if s == nil {
			return nil, invalidArgument("%s: expected an object", key)
		}
		u, err := unitFromStruct(key, i, s.GetFields())
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

func unitFromStruct(key string, i int, fields map[string]*structpb.Value) (*core.Unit, error) {
	pos, err := cellFromStruct(key, fields)
	if err != nil {
		return nil, err
	}
	name, err := stringField(fields, "name", fmt.Sprintf("unit %d", i))
	if err != nil {
		return nil, invalidArgument("%s: %v", key, err)
	}
	sideName, err := stringField(fields, "side", core.SideLeft.String())
	if err != nil {
		return nil, invalidArgument("%s: %v", key, err)
	}
	side, err := core.ParseSide(sideName)
	if err != nil {
		return nil, invalidArgument("%s: %v", key, err)
	}
	alive, err := boolField(fields, "alive", true)
	if err != nil {
		return nil, invalidArgument("%s: %v", key, err)
	}

	u := &core.Unit{Name: name, Position: pos, Side: side, Alive: alive}
	if alive {
		u.Health = 1
	}
	return u, nil
}

func intField(fields map[string]*structpb.Value, key string) (int, error) {
	v, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("%s: missing", key)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s: expected a number", key)
	}
	f := n.NumberValue
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%s: %v is not an integer", key, f)
	}
	return int(f), nil
}

func stringField(fields map[string]*structpb.Value, key, def string) (string, error) {
	v, ok := fields[key]
	if !ok {
		return def, nil
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%s: expected a string", key)
	}
	return s.StringValue, nil
}

func boolField(fields map[string]*structpb.Value, key string, def bool) (bool, error) {
	v, ok := fields[key]
	if !ok {
		return def, nil
	}
	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, fmt.Errorf("%s: expected a bool", key)
	}
	return b.BoolValue, nil
}

func cellValue(c core.Coordinate) map[string]interface{} {
	return map[string]interface{}{"x": c.X, "y": c.Y}
}

func encodePath(path []core.Coordinate) (*structpb.Struct, error) {
	cells := make([]interface{}, len(path))
	for i, c := range path {
		cells[i] = cellValue(c)
	}
	length := 0
	if len(path) > 0 {
		length = len(path) - 1
	}
	return structpb.NewStruct(map[string]interface{}{
		"path":      cells,
		"reachable": len(path) > 0,
		"length":    length,
	})
}

func encodeTargets(units []*core.Unit) (*structpb.Struct, error) {
	out := make([]interface{}, len(units))
	for i, u := range units {
		v := cellValue(u.Position)
		v["name"] = u.Name
		v["side"] = u.Side.String()
		out[i] = v
	}
	return structpb.NewStruct(map[string]interface{}{"targets": out})
}

// NewFindPathRequest builds a FindPath request document
func NewFindPathRequest(attacker, target core.Coordinate, units []*core.Unit) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"attacker": cellValue(attacker),
		"target":   cellValue(target),
		"units":    unitValues(units),
	})
}

// NewSuitableTargetsRequest builds a SuitableTargets request document
func NewSuitableTargetsRequest(targetSide core.Side, units []*core.Unit) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"target_side": targetSide.String(),
		"units":       unitValues(units),
	})
}

func unitValues(units []*core.Unit) []interface{} {
	out := make([]interface{}, 0, len(units))
	for _, u := range units {
		if u == nil {
			continue
		}
		v := cellValue(u.Position)
		v["name"] = u.Name
		v["side"] = u.Side.String()
		v["alive"] = u.Alive
		out = append(out, v)
	}
	return out
}

// PathFromResponse extracts the cells of a FindPath response
func PathFromResponse(resp *structpb.Struct) ([]core.Coordinate, error) {
	v, ok := resp.GetFields()["path"]
	if !ok {
		return nil, fmt.Errorf("response has no path")
	}
	list := v.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("path: expected a list")
	}
	path := make([]core.Coordinate, 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		c, err := cellFromStruct(fmt.Sprintf("path[%d]", i), item.GetStructValue().GetFields())
		if err != nil {
			return nil, err
		}
		path = append(path, c)
	}
	return path, nil
}

// TargetNamesFromResponse extracts the unit names of a SuitableTargets response
func TargetNamesFromResponse(resp *structpb.Struct) []string {
	var names []string
	for _, item := range resp.GetFields()["targets"].GetListValue().GetValues() {
		names = append(names, item.GetStructValue().GetFields()["name"].GetStringValue())
	}
	return names
}
