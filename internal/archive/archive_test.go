package archive

import (
	"context"
	"testing"

	"github.com/gravitas-games/hexboard/pkg/models"
)

func TestMemoryArchive(t *testing.T) {
	ctx := context.Background()
	a := NewMemoryArchive()

	if got, _ := a.Load(ctx, "g1"); len(got) != 0 {
		t.Fatalf("expected empty archive, got %d reports", len(got))
	}

	first := models.BattleReport{Habitat: "Alpha", Turn: 1}
	second := models.BattleReport{Habitat: "Beta", Turn: 2, Events: []models.BattleEvent{
		models.Destruction{Owner: models.Human, Destroyed: models.Explorer},
	}}
	if err := a.Append(ctx, "g1", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.Append(ctx, "g1", second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = a.Append(ctx, "g2", first)

	got, err := a.Load(ctx, "g1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Habitat != "Alpha" || got[1].Habitat != "Beta" {
		t.Fatalf("unexpected reports: %+v", got)
	}

	got[0].Habitat = "mutated"
	again, _ := a.Load(ctx, "g1")
	if again[0].Habitat != "Alpha" {
		t.Fatal("Load must return a copy")
	}
}

func TestRedisArchiveKey(t *testing.T) {
	a := NewRedisArchive(nil, "hexboard:reports:")
	if got := a.key("g1"); got != "hexboard:reports:g1" {
		t.Fatalf("unexpected key %q", got)
	}
	if err := a.Append(context.Background(), "g1"); err != nil {
		t.Fatalf("appending nothing should not touch redis: %v", err)
	}
}
