package score

import (
	"testing"

	"github.com/tonpu/riichiserver/internal/game/mahjong"
)

// builder 造牌器: 同种牌依次取不同ID, 默认避开赤牌
type builder struct {
	next [mahjong.KindCount]int
}

func (b *builder) tile(k mahjong.Kind) mahjong.Tile {
	if b.next[k] == 0 && k.IsFive() {
		b.next[k] = 1 // 第0张是赤牌
	}
	t := mahjong.FromID(int(k)*4 + b.next[k])
	b.next[k]++
	return t
}

func (b *builder) red(k mahjong.Kind) mahjong.Tile {
	return mahjong.FromID(int(k) * 4)
}

func (b *builder) hand(kinds ...mahjong.Kind) mahjong.Tiles {
	ts := make(mahjong.Tiles, 0, len(kinds))
	for _, k := range kinds {
		ts = append(ts, b.tile(k))
	}
	return ts
}

func hasYaku(r *Result, name string) bool {
	for _, e := range r.Yaku {
		if e.Name == name {
			return true
		}
	}
	return false
}

func TestZeroYakuWinRejected(t *testing.T) {
	// 门前自摸但未立直: 1m刻+9m对含幺九, 无任何役, 和牌宣言无效
	var b builder
	hand := b.hand(mahjong.Man1, mahjong.Man1, mahjong.Man1,
		mahjong.Pin2, mahjong.Pin3, mahjong.Pin4,
		mahjong.Sou5, mahjong.Sou6, mahjong.Sou7,
		mahjong.Sou7, mahjong.Sou8, mahjong.Sou9,
		mahjong.Man9, mahjong.Man9)
	ctx := &Context{
		Hand:      hand,
		WinTile:   hand[len(hand)-1],
		SelfDraw:  true,
		SeatWind:  mahjong.South,
		RoundWind: mahjong.East,
	}
	r := Evaluate(ctx)
	if r.Valid() {
		t.Fatalf("zero-yaku hand must not be a valid win, got %v", r)
	}
	if r.Form == mahjong.FormNone {
		t.Fatal("hand shape itself is complete")
	}
}

func TestDealerRiichiTsumoMangan(t *testing.T) {
	// 立直+一发+自摸+宝牌+赤宝牌 = 5番满贯, 庄家自摸4000×3
	var b builder
	hand := b.hand(mahjong.Pin1, mahjong.Pin1, mahjong.Pin1,
		mahjong.Man2, mahjong.Man3, mahjong.Man4,
		mahjong.Pin4, mahjong.Pin6,
		mahjong.Sou3, mahjong.Sou4,
		mahjong.Man9, mahjong.Man9)
	hand = append(hand, b.red(mahjong.Pin5))
	win := b.tile(mahjong.Sou5)
	hand = append(hand, win)
	ctx := &Context{
		Hand:           hand,
		WinTile:        win,
		SelfDraw:       true,
		Riichi:         true,
		Ippatsu:        true,
		Dealer:         true,
		SeatWind:       mahjong.East,
		RoundWind:      mahjong.East,
		DoraIndicators: mahjong.Tiles{b.tile(mahjong.Man1)}, // 宝牌=2m
		UraIndicators:  mahjong.Tiles{b.tile(mahjong.West)}, // 里不中
	}
	r := Evaluate(ctx)
	if !r.Valid() {
		t.Fatal("should be a valid win")
	}
	for _, name := range []string{"立直", "一发", "门前清自摸和", "宝牌", "赤宝牌"} {
		if !hasYaku(r, name) {
			t.Errorf("missing %s in %v", name, r.Yaku)
		}
	}
	if r.Han != 5 {
		t.Fatalf("han = %d, want 5", r.Han)
	}
	if r.Tier != TierMangan || r.Base != 2000 {
		t.Fatalf("tier %s base %d, want mangan 2000", r.Tier, r.Base)
	}
	if r.Total != 12000 {
		t.Fatalf("dealer tsumo total = %d, want 12000", r.Total)
	}
	_, fromOthers := TsumoPayments(r.Base, true)
	if fromOthers != 4000 {
		t.Fatalf("per-payer = %d, want 4000", fromOthers)
	}
}

func TestTsumoYakuNeedsRiichi(t *testing.T) {
	// 断幺九门前自摸, 未立直: 不计自摸役
	var b builder
	hand := b.hand(mahjong.Man2, mahjong.Man3, mahjong.Man4,
		mahjong.Pin3, mahjong.Pin4, mahjong.Pin5,
		mahjong.Sou4, mahjong.Sou5, mahjong.Sou6,
		mahjong.Sou7, mahjong.Sou7, mahjong.Sou7,
		mahjong.Pin8, mahjong.Pin8)
	ctx := &Context{
		Hand:      hand,
		WinTile:   hand[0],
		SelfDraw:  true,
		SeatWind:  mahjong.South,
		RoundWind: mahjong.East,
	}
	r := Evaluate(ctx)
	if !hasYaku(r, "断幺九") {
		t.Fatalf("expect tanyao, got %v", r.Yaku)
	}
	if hasYaku(r, "门前清自摸和") {
		t.Fatal("tsumo yaku must require riichi")
	}
}

func TestDaisangen(t *testing.T) {
	var b builder
	hand := b.hand(mahjong.White, mahjong.White, mahjong.White,
		mahjong.Green, mahjong.Green, mahjong.Green,
		mahjong.Red, mahjong.Red, mahjong.Red,
		mahjong.Man2, mahjong.Man3, mahjong.Man4,
		mahjong.Sou5, mahjong.Sou5)
	ctx := &Context{
		Hand:      hand,
		WinTile:   hand[9],
		SeatWind:  mahjong.South,
		RoundWind: mahjong.East,
	}
	r := Evaluate(ctx)
	if !hasYaku(r, "大三元") || r.Yakuman != 1 {
		t.Fatalf("expect daisangen yakuman, got %v", r)
	}
	if hasYaku(r, "役牌 白") {
		t.Fatal("standard yaku must be suppressed by yakuman")
	}
	if r.Tier != TierYakuman || r.Base != 8000 {
		t.Fatalf("tier %s base %d", r.Tier, r.Base)
	}
	if r.Total != 32000 { // 闲家荣和
		t.Fatalf("total = %d, want 32000", r.Total)
	}
}

func TestShousangenIsYakuman(t *testing.T) {
	// 本家规则: 小三元也按役满计
	var b builder
	hand := b.hand(mahjong.White, mahjong.White, mahjong.White,
		mahjong.Green, mahjong.Green, mahjong.Green,
		mahjong.Red, mahjong.Red,
		mahjong.Man2, mahjong.Man3, mahjong.Man4,
		mahjong.Sou5, mahjong.Sou6, mahjong.Sou7)
	ctx := &Context{
		Hand:      hand,
		WinTile:   hand[0],
		SeatWind:  mahjong.South,
		RoundWind: mahjong.East,
	}
	r := Evaluate(ctx)
	if !hasYaku(r, "小三元") || r.Yakuman != 1 {
		t.Fatalf("expect shousangen yakuman, got %v", r)
	}
}

func TestSuuankouTanki(t *testing.T) {
	var b builder
	hand := b.hand(mahjong.Man1, mahjong.Man1, mahjong.Man1,
		mahjong.Pin2, mahjong.Pin2, mahjong.Pin2,
		mahjong.Sou3, mahjong.Sou3, mahjong.Sou3,
		mahjong.Sou7, mahjong.Sou7, mahjong.Sou7,
		mahjong.Pin9)
	win := b.tile(mahjong.Pin9)
	hand = append(hand, win)
	ctx := &Context{
		Hand:      hand,
		WinTile:   win,
		SelfDraw:  true,
		SeatWind:  mahjong.South,
		RoundWind: mahjong.East,
	}
	r := Evaluate(ctx)
	if !hasYaku(r, "四暗刻单骑") || r.Yakuman != 2 {
		t.Fatalf("expect double yakuman, got %v", r)
	}
	if r.Base != 16000 {
		t.Fatalf("base = %d, want 16000", r.Base)
	}
}

func TestRonTripletNotConcealed(t *testing.T) {
	// 荣和补完的刻子不算暗刻: 不成四暗刻
	var b builder
	hand := b.hand(mahjong.Man1, mahjong.Man1, mahjong.Man1,
		mahjong.Pin2, mahjong.Pin2, mahjong.Pin2,
		mahjong.Sou3, mahjong.Sou3, mahjong.Sou3,
		mahjong.Sou7, mahjong.Sou7,
		mahjong.Pin9, mahjong.Pin9)
	win := b.tile(mahjong.Sou7)
	hand = append(hand, win)
	ctx := &Context{
		Hand:      hand,
		WinTile:   win,
		SelfDraw:  false,
		Riichi:    true,
		SeatWind:  mahjong.South,
		RoundWind: mahjong.East,
	}
	r := Evaluate(ctx)
	if r.Yakuman != 0 {
		t.Fatalf("ron-completed triplet must not make suuankou, got %v", r)
	}
	if !hasYaku(r, "三暗刻") {
		t.Fatalf("expect sanankou, got %v", r.Yaku)
	}
}

func TestChiitoi(t *testing.T) {
	var b builder
	hand := b.hand(mahjong.Man2, mahjong.Man2, mahjong.Man4, mahjong.Man4,
		mahjong.Pin3, mahjong.Pin3, mahjong.Pin6, mahjong.Pin6,
		mahjong.Sou5, mahjong.Sou5, mahjong.Sou8, mahjong.Sou8,
		mahjong.East, mahjong.East)
	ctx := &Context{
		Hand:      hand,
		WinTile:   hand[12],
		SeatWind:  mahjong.South,
		RoundWind: mahjong.East,
		Riichi:    true,
	}
	r := Evaluate(ctx)
	if !hasYaku(r, "七对子") {
		t.Fatalf("expect chiitoi, got %v", r.Yaku)
	}
	if r.Fu != 25 {
		t.Fatalf("chiitoi fu = %d, want 25", r.Fu)
	}
}

func TestRevolutionInvertsPatternHan(t *testing.T) {
	// 革命: 1番的副露断幺九反转为13番, 宝牌另计
	var b builder
	melds := []mahjong.Meld{{
		Kind:  mahjong.MeldPon,
		Tiles: mahjong.Tiles{b.tile(mahjong.Man2), b.tile(mahjong.Man2), b.tile(mahjong.Man2)},
		From:  1,
	}}
	hand := b.hand(mahjong.Pin3, mahjong.Pin4, mahjong.Pin5,
		mahjong.Sou4, mahjong.Sou5, mahjong.Sou6,
		mahjong.Sou7, mahjong.Sou8,
		mahjong.Pin8, mahjong.Pin8)
	win := b.tile(mahjong.Sou6)
	hand = append(hand, win)
	ctx := &Context{
		Hand:       hand,
		Melds:      melds,
		WinTile:    win,
		SeatWind:   mahjong.South,
		RoundWind:  mahjong.East,
		Revolution: true,
	}
	r := Evaluate(ctx)
	if !hasYaku(r, "革命") {
		t.Fatalf("expect revolution entry, got %v", r.Yaku)
	}
	if r.Han != 13 {
		t.Fatalf("han = %d, want 13", r.Han)
	}
}

func TestRevolutionSkipsYakuman(t *testing.T) {
	var b builder
	hand := b.hand(mahjong.White, mahjong.White, mahjong.White,
		mahjong.Green, mahjong.Green, mahjong.Green,
		mahjong.Red, mahjong.Red, mahjong.Red,
		mahjong.Man2, mahjong.Man3, mahjong.Man4,
		mahjong.Sou5, mahjong.Sou5)
	ctx := &Context{
		Hand:       hand,
		WinTile:    hand[0],
		SeatWind:   mahjong.South,
		RoundWind:  mahjong.East,
		Revolution: true,
	}
	r := Evaluate(ctx)
	if r.Yakuman != 1 || hasYaku(r, "革命") {
		t.Fatalf("yakuman must ignore revolution, got %v", r)
	}
}

func TestUraDoraOnlyWithRiichi(t *testing.T) {
	var b builder
	hand := b.hand(mahjong.Man2, mahjong.Man3, mahjong.Man4,
		mahjong.Pin3, mahjong.Pin4, mahjong.Pin5,
		mahjong.Sou4, mahjong.Sou5, mahjong.Sou6,
		mahjong.Sou7, mahjong.Sou7, mahjong.Sou7,
		mahjong.Pin8, mahjong.Pin8)
	ura := mahjong.Tiles{b.tile(mahjong.Sou6)} // 里宝牌=7s, 手里三张
	base := &Context{
		Hand:          hand,
		WinTile:       hand[0],
		SeatWind:      mahjong.South,
		RoundWind:     mahjong.East,
		UraIndicators: ura,
	}
	if r := Evaluate(base); hasYaku(r, "里宝牌") {
		t.Fatal("ura dora must require riichi")
	}
	base.Riichi = true
	r := Evaluate(base)
	if !hasYaku(r, "里宝牌") {
		t.Fatalf("expect ura dora, got %v", r.Yaku)
	}
}
