package mahjong

import (
	"math/rand"
	"testing"
)

func countsOf(kinds ...Kind) Counts {
	var c Counts
	for _, k := range kinds {
		c[k]++
	}
	return c
}

func TestDecomposeStandard(t *testing.T) {
	// 123m 456m 789m 111p 东东
	c := countsOf(Man1, Man2, Man3, Man4, Man5, Man6, Man7, Man8, Man9,
		Pin1, Pin1, Pin1, East, East)
	form, groups, ok := Decompose(c, nil)
	if !ok || form != FormStandard {
		t.Fatalf("expect standard win, got %v %v", form, ok)
	}
	if len(groups) != 5 {
		t.Fatalf("expect 5 groups, got %d", len(groups))
	}
	var pairs, sets, runs int
	for _, g := range groups {
		switch g.Kind {
		case GroupPair:
			pairs++
			if g.Tile != East {
				t.Errorf("pair should be east, got %v", g.Tile)
			}
		case GroupTriplet:
			sets++
		case GroupRun:
			runs++
		}
	}
	if pairs != 1 || sets != 1 || runs != 3 {
		t.Fatalf("pairs=%d sets=%d runs=%d", pairs, sets, runs)
	}
}

func TestDecomposeWithMelds(t *testing.T) {
	melds := []Meld{
		{Kind: MeldPon, Tiles: Tiles{FromID(int(White) * 4), FromID(int(White)*4 + 1), FromID(int(White)*4 + 2)}, From: 1},
	}
	// 门前 234s 567s 99s + 碰白
	c := countsOf(Sou2, Sou3, Sou4, Sou5, Sou6, Sou7, Sou9, Sou9,
		Pin2, Pin3, Pin4)
	form, groups, ok := Decompose(c, melds)
	if !ok || form != FormStandard {
		t.Fatalf("expect standard win with meld, got %v %v", form, ok)
	}
	if len(groups) != 5 {
		t.Fatalf("expect 5 groups, got %d", len(groups))
	}
	found := false
	for _, g := range groups {
		if g.Kind == GroupTriplet && g.Tile == White && !g.Concealed {
			found = true
		}
	}
	if !found {
		t.Fatal("pon should appear as open triplet")
	}
}

func TestDecomposeDeterministic(t *testing.T) {
	// 111222333m 99s + 456p: 多解手牌必须取固定分解
	c := countsOf(Man1, Man1, Man1, Man2, Man2, Man2, Man3, Man3, Man3,
		Pin4, Pin5, Pin6, Sou9, Sou9)
	_, first, ok := Decompose(c, nil)
	if !ok {
		t.Fatal("should win")
	}
	for i := 0; i < 10; i++ {
		_, again, _ := Decompose(c, nil)
		if len(again) != len(first) {
			t.Fatal("unstable decomposition")
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("unstable decomposition at %d: %v vs %v", j, again[j], first[j])
			}
		}
	}
}

func TestSevenPairs(t *testing.T) {
	c := countsOf(Man1, Man1, Man3, Man3, Pin5, Pin5, Sou7, Sou7,
		East, East, White, White, Red, Red)
	form, groups, ok := Decompose(c, nil)
	if !ok || form != FormSevenPairs {
		t.Fatalf("expect seven pairs, got %v %v", form, ok)
	}
	if len(groups) != 7 {
		t.Fatalf("expect 7 pairs, got %d", len(groups))
	}

	// 同种四张不是两对
	c2 := countsOf(Man1, Man1, Man1, Man1, Pin5, Pin5, Sou7, Sou7,
		East, East, White, White, Red, Red)
	if form, _, _ := Decompose(c2, nil); form == FormSevenPairs {
		t.Fatal("four of a kind must not count as two pairs")
	}
}

func TestThirteenOrphans(t *testing.T) {
	c := countsOf(Man1, Man9, Pin1, Pin9, Sou1, Sou9,
		East, South, West, North, White, Green, Red, Red)
	form, _, ok := Decompose(c, nil)
	if !ok || form != FormThirteenOrphans {
		t.Fatalf("expect thirteen orphans, got %v %v", form, ok)
	}
}

func TestDecomposeNoWin(t *testing.T) {
	tests := []Counts{
		// 差一张
		countsOf(Man1, Man2, Man3, Man4, Man5, Man6, Man7, Man8, Man9,
			Pin1, Pin1, Pin1, East, South),
		// 牌数不合法(特殊动作后的12张形)
		countsOf(Man1, Man2, Man3, Man4, Man5, Man6, Man7, Man8, Man9,
			Pin1, Pin1, Pin1),
	}
	for i, c := range tests {
		if _, _, ok := Decompose(c, nil); ok {
			t.Errorf("case %d: should not win", i)
		}
	}
}

// 随机抓牌: 分解结果与听牌判定必须自洽
func TestRandomHandsConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		wall := NewWall(rng)
		hand := wall[:13]
		c := hand.Counts()

		waits := WaitingKinds(c, nil)
		for k := Kind(0); k < KindCount; k++ {
			if c[k] == 4 {
				continue // 第五张不存在, 不计入听牌
			}
			inWaits := false
			for _, w := range waits {
				if w == k {
					inWaits = true
				}
			}
			if got := CanWin(c, nil, k); got != inWaits {
				t.Fatalf("第%d副: %v 听牌=%v 和牌=%v", i, k, inWaits, got)
			}
		}

		full := wall[:14].Counts()
		if form, groups, ok := Decompose(full, nil); ok {
			if form == FormNone {
				t.Fatalf("第%d副: 和牌但形为空", i)
			}
			if form == FormStandard && len(groups) != 5 {
				t.Fatalf("第%d副: 标准形应有5组, got %d", i, len(groups))
			}
		}
	}
}

func TestCanWin(t *testing.T) {
	c := countsOf(Man1, Man2, Man3, Man4, Man5, Man6, Man7, Man8, Man9,
		Pin1, Pin1, Pin1, East)
	if !CanWin(c, nil, East) {
		t.Fatal("east should complete the hand")
	}
	if CanWin(c, nil, South) {
		t.Fatal("south should not complete the hand")
	}
}

func BenchmarkDecompose(b *testing.B) {
	c := countsOf(Man1, Man2, Man3, Man4, Man5, Man6, Man7, Man8, Man9,
		Pin1, Pin1, Pin1, East, East)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Decompose(c, nil)
	}
}

func BenchmarkWaitingKinds(b *testing.B) {
	c := countsOf(Man1, Man2, Man3, Man4, Man5, Man6, Man7, Man8, Man9,
		Pin1, Pin1, Pin1, East)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		WaitingKinds(c, nil)
	}
}
