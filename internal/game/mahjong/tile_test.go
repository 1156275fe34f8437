package mahjong

import (
	"math/rand"
	"testing"
)

func TestKindProperties(t *testing.T) {
	if Man9.Suit() != 0 || Pin1.Suit() != 1 || Sou5.Suit() != 2 {
		t.Fatal("suit mismatch")
	}
	if East.Suit() != -1 {
		t.Fatal("honor should have no suit")
	}
	if Man1.Number() != 1 || Sou9.Number() != 9 || Red.Number() != 0 {
		t.Fatal("number mismatch")
	}
	for _, k := range []Kind{Man1, Man9, Pin1, Pin9, Sou1, Sou9, East, White, Red} {
		if !k.IsOrphan() {
			t.Errorf("%v should be orphan", k)
		}
	}
	for _, k := range []Kind{Man2, Pin5, Sou8} {
		if k.IsOrphan() {
			t.Errorf("%v should not be orphan", k)
		}
	}
}

func TestDoraNext(t *testing.T) {
	tests := []struct {
		indicator, dora Kind
	}{
		{Man1, Man2},
		{Man9, Man1},
		{Pin9, Pin1},
		{Sou4, Sou5},
		{East, South},
		{North, East},
		{White, Green},
		{Green, Red},
		{Red, White},
	}
	for _, tt := range tests {
		if got := tt.indicator.DoraNext(); got != tt.dora {
			t.Errorf("%v dora next: got %v, want %v", tt.indicator, got, tt.dora)
		}
	}
}

func TestRedFive(t *testing.T) {
	// 每种5的第0张为赤牌
	for _, k := range []Kind{Man5, Pin5, Sou5} {
		red := FromID(int(k) * 4)
		if !red.IsRed() {
			t.Errorf("%v should be red", red)
		}
		for i := 1; i < 4; i++ {
			if FromID(int(k)*4 + i).IsRed() {
				t.Errorf("copy %d of %v should not be red", i, k)
			}
		}
	}
	if FromID(int(Man4) * 4).IsRed() {
		t.Error("man4 is never red")
	}
}

func TestNewWall(t *testing.T) {
	wall := NewWall(rand.New(rand.NewSource(1)))
	if len(wall) != TileCount {
		t.Fatalf("wall size: %d", len(wall))
	}
	seen := make(map[int]bool)
	counts := wall.Counts()
	for _, tile := range wall {
		if seen[tile.ID] {
			t.Fatalf("duplicated tile id %d", tile.ID)
		}
		seen[tile.ID] = true
	}
	for k := Kind(0); k < KindCount; k++ {
		if counts[k] != 4 {
			t.Fatalf("kind %v count: %d", k, counts[k])
		}
	}
}

func TestTilesRemove(t *testing.T) {
	ts := Tiles{FromID(0), FromID(5), FromID(9)}
	rest, ok := ts.Remove(5)
	if !ok || len(rest) != 2 {
		t.Fatal("remove failed")
	}
	if _, ok := rest.Remove(5); ok {
		t.Fatal("tile should be gone")
	}
}

func TestPickByKind(t *testing.T) {
	// 赤5在普通5足够时应留在手里
	ts := Tiles{FromID(int(Man5) * 4), FromID(int(Man5)*4 + 1), FromID(int(Man5)*4 + 2), FromID(0)}
	picked, rest := ts.PickByKind(Man5, 2)
	if len(picked) != 2 || len(rest) != 2 {
		t.Fatalf("picked %d rest %d", len(picked), len(rest))
	}
	for _, tile := range picked {
		if tile.IsRed() {
			t.Error("red five picked while plain copies remain")
		}
	}

	// 普通牌不够时才用赤牌补足
	picked, rest = ts.PickByKind(Man5, 3)
	if len(picked) != 3 || len(rest) != 1 {
		t.Fatalf("picked %d rest %d", len(picked), len(rest))
	}
	redUsed := false
	for _, tile := range picked {
		if tile.IsRed() {
			redUsed = true
		}
	}
	if !redUsed {
		t.Error("red five should top up the shortfall")
	}
	if rest[0].Kind != Man1 {
		t.Errorf("rest = %v", rest)
	}
}
