package network

import (
	"encoding/json"
	"testing"

	"github.com/gravitas-games/hexboard/internal/intent"
	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/gravitas-games/hexboard/pkg/models"
)

func parse(t *testing.T, raw string) ClientMessage {
	t.Helper()
	var msg ClientMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("failed to parse %s: %v", raw, err)
	}
	return msg
}

func TestDecodeIntents(t *testing.T) {
	cases := []struct {
		raw  string
		want intent.Intent
	}{
		{`{"type":"hover","payload":{"q":1,"r":-2}}`, intent.HoverPoint{Point: hexgrid.Point{Q: 1, R: -2}}},
		{`{"type":"leave"}`, intent.EndHover{}},
		{`{"type":"select_tile","payload":{"q":0,"r":3}}`, intent.SelectTile{Point: hexgrid.Point{R: 3}}},
		{`{"type":"select_unit","payload":{"unit_id":7}}`, intent.SelectUnit{ID: 7}},
		{`{"type":"build_order","payload":{"choice":"building:reactor"}}`, intent.BuildOrder{Choice: models.Reactor}},
		{`{"type":"build_order","payload":{"choice":""}}`, intent.BuildOrder{}},
		{`{"type":"build_order","payload":{"choice":"reactr"}}`, intent.NoOp{}},
		{`{"type":"name_update","payload":{"field":"abbreviation","text":"AG"}}`, intent.NameEditorUpdate{Field: models.AbbreviationField, Text: "AG"}},
		{`{"type":"name_submit"}`, intent.NameEditorSubmit{}},
		{`{"type":"end_turn"}`, intent.EndTurn{}},
	}
	for _, c := range cases {
		d, err := Decode(parse(t, c.raw))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.raw, err)
			continue
		}
		if d.Gesture != GestureIntent || d.Intent != c.want {
			t.Errorf("%s: expected %#v, got %#v", c.raw, c.want, d.Intent)
		}
	}
}

func TestDecodeClickAndPing(t *testing.T) {
	d, err := Decode(parse(t, `{"type":"click","payload":{"q":2,"r":-1}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Gesture != GestureClick || d.Point != (hexgrid.Point{Q: 2, R: -1}) {
		t.Fatalf("unexpected click decode %+v", d)
	}
	d, err = Decode(parse(t, `{"type":"ping"}`))
	if err != nil || d.Gesture != GesturePing {
		t.Fatalf("unexpected ping decode %+v, %v", d, err)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, raw := range []string{
		`{"type":"teleport"}`,
		`{"type":"click","payload":"nope"}`,
		`{"type":"name_update","payload":{"field":"motto","text":"x"}}`,
		`{"type":"select_unit","payload":{"unit_id":"seven"}}`,
	} {
		if _, err := Decode(parse(t, raw)); err == nil {
			t.Errorf("%s: expected error", raw)
		}
	}
}
