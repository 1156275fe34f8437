package score

import (
	"testing"

	"github.com/tonpu/riichiserver/internal/game/mahjong"
)

func mustAnalyze(t *testing.T, ctx *Context) *handInfo {
	t.Helper()
	h := analyze(ctx)
	if h == nil {
		t.Fatal("hand does not win")
	}
	return h
}

func TestFuPinfuTsumoStaysTwenty(t *testing.T) {
	var b builder
	hand := b.hand(mahjong.Man2, mahjong.Man3, mahjong.Man4,
		mahjong.Pin3, mahjong.Pin4, mahjong.Pin5,
		mahjong.Sou4, mahjong.Sou5, mahjong.Sou6,
		mahjong.Sou6, mahjong.Sou7,
		mahjong.Pin8, mahjong.Pin8)
	win := b.tile(mahjong.Sou8)
	hand = append(hand, win)
	ctx := &Context{Hand: hand, WinTile: win, SelfDraw: true,
		SeatWind: mahjong.South, RoundWind: mahjong.East}
	h := mustAnalyze(t, ctx)
	if !isPinfu(ctx, h) {
		t.Fatal("hand should be pinfu")
	}
	if fu := fuCount(ctx, h, true); fu != 20 {
		t.Fatalf("pinfu tsumo fu = %d, want 20", fu)
	}
}

func TestFuPinfuClosedRonThirty(t *testing.T) {
	var b builder
	hand := b.hand(mahjong.Man2, mahjong.Man3, mahjong.Man4,
		mahjong.Pin3, mahjong.Pin4, mahjong.Pin5,
		mahjong.Sou4, mahjong.Sou5, mahjong.Sou6,
		mahjong.Sou6, mahjong.Sou7,
		mahjong.Pin8, mahjong.Pin8)
	win := b.tile(mahjong.Sou8)
	hand = append(hand, win)
	ctx := &Context{Hand: hand, WinTile: win,
		SeatWind: mahjong.South, RoundWind: mahjong.East}
	h := mustAnalyze(t, ctx)
	if fu := fuCount(ctx, h, isPinfu(ctx, h)); fu != 30 {
		t.Fatalf("closed-ron pinfu fu = %d, want 30", fu)
	}
}

func TestFuRoundsUpToThirty(t *testing.T) {
	// 嵌张自摸: 20 + 2自摸 + 2嵌张 = 24 -> 30
	var b builder
	hand := b.hand(mahjong.Man2, mahjong.Man4,
		mahjong.Pin3, mahjong.Pin4, mahjong.Pin5,
		mahjong.Sou4, mahjong.Sou5, mahjong.Sou6,
		mahjong.Sou6, mahjong.Sou7, mahjong.Sou8,
		mahjong.Pin8, mahjong.Pin8)
	win := b.tile(mahjong.Man3)
	hand = append(hand, win)
	ctx := &Context{Hand: hand, WinTile: win, SelfDraw: true,
		SeatWind: mahjong.South, RoundWind: mahjong.East}
	h := mustAnalyze(t, ctx)
	if h.winGroup < 0 || !h.waitFu {
		t.Fatalf("expect kanchan wait, got %+v", h)
	}
	if pinfu := isPinfu(ctx, h); pinfu {
		t.Fatal("kanchan is not pinfu")
	}
	if fu := fuCount(ctx, h, false); fu != 30 {
		t.Fatalf("fu = %d, want 30 (24 rounded up)", fu)
	}
}

func TestFuConcealedOrphanTriplet(t *testing.T) {
	// 门前荣和 + 1m暗刻: 20 + 10 + 16 = 46 -> 50
	var b builder
	hand := b.hand(mahjong.Man1, mahjong.Man1, mahjong.Man1,
		mahjong.Pin2, mahjong.Pin3,
		mahjong.Sou4, mahjong.Sou5, mahjong.Sou6,
		mahjong.Sou7, mahjong.Sou8, mahjong.Sou9,
		mahjong.Pin6, mahjong.Pin6)
	win := b.tile(mahjong.Pin4)
	hand = append(hand, win)
	ctx := &Context{Hand: hand, WinTile: win, Riichi: true,
		SeatWind: mahjong.South, RoundWind: mahjong.East}
	h := mustAnalyze(t, ctx)
	if fu := fuCount(ctx, h, false); fu != 50 {
		t.Fatalf("fu = %d, want 50", fu)
	}
}

func TestFuOpenHandFloor(t *testing.T) {
	// 副露平和形20符补到30
	var b builder
	melds := []mahjong.Meld{{
		Kind:  mahjong.MeldChi,
		Tiles: mahjong.Tiles{b.tile(mahjong.Man2), b.tile(mahjong.Man3), b.tile(mahjong.Man4)},
		From:  3,
	}}
	hand := b.hand(mahjong.Pin3, mahjong.Pin4, mahjong.Pin5,
		mahjong.Sou4, mahjong.Sou5, mahjong.Sou6,
		mahjong.Sou6, mahjong.Sou7,
		mahjong.Pin8, mahjong.Pin8)
	win := b.tile(mahjong.Sou8)
	hand = append(hand, win)
	ctx := &Context{Hand: hand, Melds: melds, WinTile: win,
		SeatWind: mahjong.South, RoundWind: mahjong.East}
	h := mustAnalyze(t, ctx)
	if fu := fuCount(ctx, h, false); fu != 30 {
		t.Fatalf("open 20 fu must floor to 30, got %d", fu)
	}
}

func TestFuAnkanHonor(t *testing.T) {
	// 白字暗杠: 16×2×2 = 64符
	var b builder
	melds := []mahjong.Meld{{
		Kind: mahjong.MeldAnkan,
		Tiles: mahjong.Tiles{b.tile(mahjong.White), b.tile(mahjong.White),
			b.tile(mahjong.White), b.tile(mahjong.White)},
		From: 0,
	}}
	hand := b.hand(mahjong.Man2, mahjong.Man3, mahjong.Man4,
		mahjong.Pin3, mahjong.Pin4, mahjong.Pin5,
		mahjong.Sou6, mahjong.Sou7,
		mahjong.Pin8, mahjong.Pin8)
	win := b.tile(mahjong.Sou8)
	hand = append(hand, win)
	ctx := &Context{Hand: hand, Melds: melds, WinTile: win, Riichi: true,
		SeatWind: mahjong.South, RoundWind: mahjong.East}
	h := mustAnalyze(t, ctx)
	// 20 + 10门前荣和 + 64 = 94 -> 100
	if fu := fuCount(ctx, h, false); fu != 100 {
		t.Fatalf("fu = %d, want 100", fu)
	}
}

func TestFuPairValue(t *testing.T) {
	// 双东(场风+自风)雀头: +4
	var b builder
	hand := b.hand(mahjong.Man2, mahjong.Man3, mahjong.Man4,
		mahjong.Pin3, mahjong.Pin4, mahjong.Pin5,
		mahjong.Sou5, mahjong.Sou6, mahjong.Sou7,
		mahjong.Sou6, mahjong.Sou7,
		mahjong.East, mahjong.East)
	win := b.tile(mahjong.Sou8)
	hand = append(hand, win)
	ctx := &Context{Hand: hand, WinTile: win,
		SeatWind: mahjong.East, RoundWind: mahjong.East}
	h := mustAnalyze(t, ctx)
	// 20 + 10 + 4 = 34 -> 40
	if fu := fuCount(ctx, h, false); fu != 40 {
		t.Fatalf("double-wind pair fu = %d, want 40", fu)
	}
}
