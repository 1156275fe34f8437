package score

import (
	"github.com/tonpu/riichiserver/internal/game/mahjong"
)

// greenKinds 绿一色的合法牌种
var greenKinds = map[mahjong.Kind]bool{
	mahjong.Sou2:  true,
	mahjong.Sou3:  true,
	mahjong.Sou4:  true,
	mahjong.Sou6:  true,
	mahjong.Sou8:  true,
	mahjong.Green: true,
}

// yakumanList 按固定顺序评定役满. 返回各役满及其倍数.
func yakumanList(ctx *Context, h *handInfo) []Entry {
	var out []Entry
	add := func(name string, mult int) {
		out = append(out, Entry{Name: name, Han: yakumanHan * mult})
	}

	if h.form == mahjong.FormThirteenOrphans {
		add("国士无双", 1)
		return out
	}

	if h.form == mahjong.FormStandard {
		// 四暗刻: 四组暗刻, 单骑听牌为双倍
		concealedSets := 0
		for i, g := range h.groups {
			if g.IsSet() && h.concealedGroup(i) {
				concealedSets++
			}
		}
		if concealedSets == 4 {
			if h.pairWait {
				add("四暗刻单骑", 2)
			} else {
				add("四暗刻", 1)
			}
		}

		dragonSets, windSets := 0, 0
		var pairK mahjong.Kind = -1
		for _, g := range h.groups {
			switch {
			case g.Kind == mahjong.GroupPair:
				pairK = g.Tile
			case g.IsSet() && g.Tile.IsDragon():
				dragonSets++
			case g.IsSet() && g.Tile.IsWind():
				windSets++
			}
		}
		if dragonSets == 3 {
			add("大三元", 1)
		} else if dragonSets == 2 && pairK.IsDragon() {
			add("小三元", 1)
		}
		if windSets == 4 {
			add("大四喜", 1)
		} else if windSets == 3 && pairK.IsWind() {
			add("小四喜", 1)
		}

		if h.kanCount() == 4 {
			add("四杠子", 1)
		}
	}

	allHonor, allTerminal, allGreen := true, true, true
	for k := mahjong.Kind(0); k < mahjong.KindCount; k++ {
		if h.all[k] == 0 {
			continue
		}
		if !k.IsHonor() {
			allHonor = false
		}
		if !k.IsTerminal() {
			allTerminal = false
		}
		if !greenKinds[k] {
			allGreen = false
		}
	}
	if allHonor {
		add("字一色", 1)
	}
	if allTerminal {
		add("清老头", 1)
	}
	if allGreen {
		add("绿一色", 1)
	}

	if h.closed && len(ctx.Melds) == 0 && isChuuren(h.counts) {
		add("九莲宝灯", 1)
	}
	return out
}

// isChuuren 九莲宝灯: 清一色1112345678999+任意一张
func isChuuren(c mahjong.Counts) bool {
	suit := -1
	for k := mahjong.Kind(0); k < mahjong.KindCount; k++ {
		if c[k] == 0 {
			continue
		}
		if k.IsHonor() {
			return false
		}
		if suit == -1 {
			suit = k.Suit()
		} else if k.Suit() != suit {
			return false
		}
	}
	if suit == -1 {
		return false
	}
	extra := 0
	for n := 1; n <= 9; n++ {
		k := mahjong.Kind(suit*9 + n - 1)
		need := 1
		if n == 1 || n == 9 {
			need = 3
		}
		switch c[k] - need {
		case 0:
		case 1:
			extra++
		default:
			return false
		}
	}
	return extra == 1
}
