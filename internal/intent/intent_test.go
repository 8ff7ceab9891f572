package intent

import (
	"testing"

	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/gravitas-games/hexboard/pkg/models"
)

func TestParseBuildOrder(t *testing.T) {
	cases := []struct {
		key  string
		want Intent
	}{
		{"", BuildOrder{}},
		{"unit:explorer", BuildOrder{Choice: models.Explorer}},
		{"building:reactor", BuildOrder{Choice: models.Reactor}},
		{"Reactor", NoOp{}},
		{"unit:dreadnought", NoOp{}},
	}
	for _, c := range cases {
		if got := ParseBuildOrder(c.key); got != c.want {
			t.Errorf("ParseBuildOrder(%q) = %#v, want %#v", c.key, got, c.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		in   Intent
		want string
	}{
		{SelectPoint{Point: hexgrid.Point{Q: 1, R: -2}}, "select_point(1,-2)"},
		{PlanMove{From: hexgrid.Point{}, Unit: 7, To: hexgrid.Point{Q: 1}}, "plan_move(0,0, 7, 1,0)"},
		{BuildOrder{}, "build_order(none)"},
		{EndTurn{}, "end_turn"},
	}
	for _, c := range cases {
		if got := Describe(c.in); got != c.want {
			t.Errorf("Describe(%#v) = %q, want %q", c.in, got, c.want)
		}
	}
}
