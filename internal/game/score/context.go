package score

import (
	"github.com/tonpu/riichiserver/internal/game/mahjong"
)

// Context 和牌时的完整上下文, 对局状态的只读快照.
type Context struct {
	Hand    mahjong.Tiles // 门前牌,含和牌张
	Melds   []mahjong.Meld
	WinTile mahjong.Tile

	SelfDraw bool // 自摸
	Riichi   bool
	Ippatsu  bool
	AfterKan bool // 岭上开花
	RobKan   bool // 抢杠

	SeatWind  mahjong.Kind
	RoundWind mahjong.Kind
	Dealer    bool

	DoraIndicators mahjong.Tiles
	UraIndicators  mahjong.Tiles // 立直和了时才非空

	Revolution bool // 革命(累计杠数为奇数)
}

// Closed 门前清(仅暗杠不破门清)
func (ctx *Context) Closed() bool {
	for _, m := range ctx.Melds {
		if m.Kind != mahjong.MeldAnkan {
			return false
		}
	}
	return true
}

// AllTiles 含副露的全部牌
func (ctx *Context) AllTiles() mahjong.Tiles {
	all := make(mahjong.Tiles, 0, len(ctx.Hand)+len(ctx.Melds)*4)
	all = append(all, ctx.Hand...)
	for _, m := range ctx.Melds {
		all = append(all, m.Tiles...)
	}
	return all
}

// handInfo 分解结果加上和牌张归属的推导, 役种与符数共用.
type handInfo struct {
	form   mahjong.Form
	groups []mahjong.Group
	counts mahjong.Counts // 门前
	all    mahjong.Counts // 含副露
	closed bool

	winKind  mahjong.Kind
	winGroup int  // 和牌张落入的分解组, 无法归属时为-1
	pairWait bool // 单骑
	waitFu   bool // 单骑/边张/嵌张
	openWin  int  // 荣和补完的刻子下标(计为明刻), 无则-1
}

func analyze(ctx *Context) *handInfo {
	counts := ctx.Hand.Counts()
	form, groups, ok := mahjong.Decompose(counts, ctx.Melds)
	if !ok {
		return nil
	}
	info := &handInfo{
		form:     form,
		groups:   groups,
		counts:   counts,
		all:      ctx.AllTiles().Counts(),
		closed:   ctx.Closed(),
		winKind:  ctx.WinTile.Kind,
		winGroup: -1,
		openWin:  -1,
	}
	info.classifyWait(ctx)
	return info
}

// classifyWait 确定和牌张落入的组及听型. 分解是确定性的,
// 取首个包含和牌种的门前组.
func (h *handInfo) classifyWait(ctx *Context) {
	concealed := len(h.groups) - len(ctx.Melds)
	for i := 0; i < concealed; i++ {
		g := h.groups[i]
		if !groupContains(g, h.winKind) {
			continue
		}
		h.winGroup = i
		switch g.Kind {
		case mahjong.GroupPair:
			h.pairWait = true
			h.waitFu = true
		case mahjong.GroupRun:
			lo, n := g.Tile, g.Tile.Number()
			switch {
			case h.winKind == lo+1: // 嵌张
				h.waitFu = true
			case h.winKind == lo+2 && n == 1: // 12+3
				h.waitFu = true
			case h.winKind == lo && n == 7: // 89+7
				h.waitFu = true
			}
		case mahjong.GroupTriplet:
			if !ctx.SelfDraw {
				// 荣和补完的刻子按明刻计
				h.openWin = i
			}
		}
		return
	}
}

func groupContains(g mahjong.Group, k mahjong.Kind) bool {
	if g.Kind == mahjong.GroupRun {
		return k >= g.Tile && k <= g.Tile+2
	}
	return g.Tile == k
}

// concealedGroup 该组是否计为暗组
func (h *handInfo) concealedGroup(i int) bool {
	if i == h.openWin {
		return false
	}
	return h.groups[i].Concealed
}

// setCount 刻子与杠的数量
func (h *handInfo) setCount() int {
	n := 0
	for _, g := range h.groups {
		if g.IsSet() {
			n++
		}
	}
	return n
}

func (h *handInfo) kanCount() int {
	n := 0
	for _, g := range h.groups {
		if g.Kind == mahjong.GroupKan {
			n++
		}
	}
	return n
}

func (h *handInfo) pairKind() (mahjong.Kind, bool) {
	for _, g := range h.groups {
		if g.Kind == mahjong.GroupPair {
			return g.Tile, true
		}
	}
	return 0, false
}
