package score

import (
	"fmt"

	"github.com/tonpu/riichiserver/internal/game/mahjong"
)

const yakumanHan = 13

// Entry 单个役种及其番数
type Entry struct {
	Name string `json:"name"`
	Han  int    `json:"han"`
}

// Result 算点结果. Han为最终计算番(含革命调整与宝牌),
// Yakuman为役满倍数. 无役时Yaku为空且Han为0, 和牌宣言无效.
type Result struct {
	Form    mahjong.Form
	Yaku    []Entry
	Han     int
	Fu      int
	Yakuman int
	Tier    string
	Base    int
	Total   int
}

func (r *Result) Valid() bool {
	return len(r.Yaku) > 0
}

func (r *Result) String() string {
	return fmt.Sprintf("役=%v 番=%d 符=%d 档=%s 点=%d", r.Yaku, r.Han, r.Fu, r.Tier, r.Total)
}

// Evaluate 评定和牌. 先按固定顺序判役满, 命中则忽略一般役仅计宝牌;
// 否则走一般役目录. 仅宝牌不成役. 纯函数, 不修改上下文.
func Evaluate(ctx *Context) *Result {
	h := analyze(ctx)
	if h == nil {
		return &Result{}
	}
	r := &Result{Form: h.form}

	if entries := yakumanList(ctx, h); len(entries) > 0 {
		for _, e := range entries {
			r.Yaku = append(r.Yaku, e)
			r.Han += e.Han
			r.Yakuman += e.Han / yakumanHan
		}
		r.Yaku, r.Han = appendDora(ctx, r.Yaku, r.Han)
		r.Fu = 0
		r.Base, r.Total, r.Tier = settle(ctx, r.Han, r.Fu)
		return r
	}

	pinfu := isPinfu(ctx, h)
	entries := patternYaku(ctx, h, pinfu)
	if len(entries) == 0 {
		return r // 无役
	}
	patternHan := 0
	for _, e := range entries {
		patternHan += e.Han
	}
	r.Yaku = entries

	doraEntries, doraHan := doraEntries(ctx)
	han := patternHan + doraHan
	if ctx.Revolution {
		// 革命: 役番围绕14反转后再加宝牌
		inverted := 14 - patternHan
		if inverted < 1 {
			inverted = 1
		}
		r.Yaku = append(r.Yaku, Entry{Name: "革命", Han: inverted - patternHan})
		han = inverted + doraHan
	}
	r.Yaku = append(r.Yaku, doraEntries...)
	r.Han = han
	r.Fu = fuCount(ctx, h, pinfu)
	r.Base, r.Total, r.Tier = settle(ctx, r.Han, r.Fu)
	return r
}

func isPinfu(ctx *Context, h *handInfo) bool {
	if !h.closed || h.form != mahjong.FormStandard || len(ctx.Melds) > 0 {
		return false
	}
	for _, g := range h.groups {
		switch g.Kind {
		case mahjong.GroupRun:
		case mahjong.GroupPair:
			if g.Tile.IsDragon() || g.Tile == ctx.SeatWind || g.Tile == ctx.RoundWind {
				return false
			}
		default:
			return false
		}
	}
	// 必须两面听
	if h.winGroup < 0 || h.groups[h.winGroup].Kind != mahjong.GroupRun || h.waitFu {
		return false
	}
	return true
}

// patternYaku 一般役目录, 固定顺序评定
func patternYaku(ctx *Context, h *handInfo, pinfu bool) []Entry {
	var out []Entry
	add := func(name string, han int) {
		out = append(out, Entry{Name: name, Han: han})
	}
	closedOr := func(closed, open int) int {
		if h.closed {
			return closed
		}
		return open
	}

	// 状况役
	if ctx.Riichi {
		add("立直", 1)
		if ctx.Ippatsu {
			add("一发", 1)
		}
		// 本家规则: 自摸仅在立直状态下成役
		if ctx.SelfDraw {
			add("门前清自摸和", 1)
		}
	}
	if ctx.AfterKan && ctx.SelfDraw {
		add("岭上开花", 1)
	}
	if ctx.RobKan {
		add("抢杠", 1)
	}

	if pinfu {
		add("平和", 1)
	}

	allSimple := true
	for k := mahjong.Kind(0); k < mahjong.KindCount; k++ {
		if h.all[k] > 0 && k.IsOrphan() {
			allSimple = false
			break
		}
	}
	if allSimple {
		add("断幺九", 1)
	}

	if h.form == mahjong.FormStandard {
		for _, g := range h.groups {
			if !g.IsSet() {
				continue
			}
			switch g.Tile {
			case mahjong.White:
				add("役牌 白", 1)
			case mahjong.Green:
				add("役牌 发", 1)
			case mahjong.Red:
				add("役牌 中", 1)
			}
			if g.Tile.IsWind() {
				if g.Tile == ctx.SeatWind {
					add("自风牌", 1)
				}
				if g.Tile == ctx.RoundWind {
					add("场风牌", 1)
				}
			}
		}

		if h.closed && hasIipeikou(h.groups) {
			add("一杯口", 1)
		}
		if hasIttsu(h.groups) {
			add("一气通贯", closedOr(2, 1))
		}

		// 带幺九系(无顺子的全幺九由下方混老头覆盖)
		allOrphaned, hasRun, hasHonor := true, false, false
		for _, g := range h.groups {
			if !g.Orphaned() {
				allOrphaned = false
			}
			if g.Kind == mahjong.GroupRun {
				hasRun = true
			}
			if g.Tile.IsHonor() {
				hasHonor = true
			}
		}
		if allOrphaned && hasRun {
			if hasHonor {
				add("混全带幺九", closedOr(2, 1))
			} else {
				add("纯全带幺九", closedOr(3, 2))
			}
		}

		runs := 0
		for _, g := range h.groups {
			if g.Kind == mahjong.GroupRun {
				runs++
			}
		}
		if runs == 0 && h.setCount() == 4 {
			add("对对和", 2)
		}
		concealedSets := 0
		for i, g := range h.groups {
			if g.IsSet() && h.concealedGroup(i) {
				concealedSets++
			}
		}
		if concealedSets == 3 {
			add("三暗刻", 2)
		}
		if h.kanCount() == 3 {
			add("三杠子", 2)
		}
	}

	if h.form == mahjong.FormSevenPairs {
		add("七对子", 2)
	}

	// 混老头: 全幺九且同时含字牌与老头牌(纯字/纯老头为役满, 不会走到这里)
	allOrphanTiles, anyHonor, anyTerminal := true, false, false
	for k := mahjong.Kind(0); k < mahjong.KindCount; k++ {
		if h.all[k] == 0 {
			continue
		}
		if !k.IsOrphan() {
			allOrphanTiles = false
			break
		}
		if k.IsHonor() {
			anyHonor = true
		} else {
			anyTerminal = true
		}
	}
	if allOrphanTiles && anyHonor && anyTerminal {
		add("混老头", 2)
	}

	// 一色系
	suit, hasHonorTile := -1, false
	pure := true
	for k := mahjong.Kind(0); k < mahjong.KindCount; k++ {
		if h.all[k] == 0 {
			continue
		}
		if k.IsHonor() {
			hasHonorTile = true
			continue
		}
		if suit == -1 {
			suit = k.Suit()
		} else if k.Suit() != suit {
			pure = false
		}
	}
	if pure && suit != -1 {
		if hasHonorTile {
			add("混一色", closedOr(3, 2))
		} else {
			add("清一色", closedOr(6, 5))
		}
	}
	return out
}

func hasIipeikou(groups []mahjong.Group) bool {
	for i, a := range groups {
		if a.Kind != mahjong.GroupRun {
			continue
		}
		for _, b := range groups[i+1:] {
			if b.Kind == mahjong.GroupRun && b.Tile == a.Tile {
				return true
			}
		}
	}
	return false
}

func hasIttsu(groups []mahjong.Group) bool {
	for suit := 0; suit < 3; suit++ {
		need := [3]bool{}
		for _, g := range groups {
			if g.Kind != mahjong.GroupRun || g.Tile.Suit() != suit {
				continue
			}
			switch g.Tile.Number() {
			case 1:
				need[0] = true
			case 4:
				need[1] = true
			case 7:
				need[2] = true
			}
		}
		if need[0] && need[1] && need[2] {
			return true
		}
	}
	return false
}

// appendDora 追加宝牌项(役满时也计)
func appendDora(ctx *Context, entries []Entry, han int) ([]Entry, int) {
	more, n := doraEntries(ctx)
	return append(entries, more...), han + n
}

// doraEntries 统计宝牌/赤宝牌/里宝牌
func doraEntries(ctx *Context) ([]Entry, int) {
	all := ctx.AllTiles()
	counts := all.Counts()

	var out []Entry
	total := 0
	count := func(name string, indicators mahjong.Tiles) {
		n := 0
		for _, ind := range indicators {
			n += counts[ind.Kind.DoraNext()]
		}
		if n > 0 {
			out = append(out, Entry{Name: name, Han: n})
			total += n
		}
	}
	count("宝牌", ctx.DoraIndicators)

	reds := 0
	for _, t := range all {
		if t.IsRed() {
			reds++
		}
	}
	if reds > 0 {
		out = append(out, Entry{Name: "赤宝牌", Han: reds})
		total += reds
	}
	if ctx.Riichi {
		count("里宝牌", ctx.UraIndicators)
	}
	return out, total
}
