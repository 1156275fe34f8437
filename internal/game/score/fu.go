package score

import (
	"github.com/tonpu/riichiserver/internal/game/mahjong"
)

// fuCount 符数计算. 七对子固定25符.
func fuCount(ctx *Context, h *handInfo, pinfu bool) int {
	if h.form == mahjong.FormSevenPairs {
		return 25
	}

	fu := 20
	if h.closed && !ctx.SelfDraw {
		fu += 10
	}
	if ctx.SelfDraw && !pinfu {
		fu += 2
	}

	for i, g := range h.groups {
		if !g.IsSet() {
			continue
		}
		var n int
		if g.Kind == mahjong.GroupKan {
			n = 16
		} else {
			n = 4
		}
		if h.concealedGroup(i) {
			n *= 2
		}
		if g.Tile.IsOrphan() {
			n *= 2
		}
		fu += n
	}

	if pair, ok := h.pairKind(); ok {
		if pair.IsDragon() {
			fu += 2
		} else {
			if pair == ctx.RoundWind {
				fu += 2
			}
			if pair == ctx.SeatWind {
				fu += 2
			}
		}
	}

	if h.waitFu {
		fu += 2
	}

	// 特例: 20符的副露手与门前荣和平和形补到30
	if fu == 20 && !h.closed {
		fu = 30
	}
	if pinfu && h.closed && !ctx.SelfDraw {
		fu = 30
	}

	// 进位到10
	if rem := fu % 10; rem != 0 {
		fu += 10 - rem
	}
	return fu
}
