package mahjong

// Form 和牌形态
type Form int

const (
	FormNone Form = iota
	FormStandard
	FormSevenPairs
	FormThirteenOrphans
)

// GroupKind 和牌分解后的面子类型
type GroupKind int

const (
	GroupRun GroupKind = iota
	GroupTriplet
	GroupKan
	GroupPair
)

// Group 分解出的一组面子. Tile为顺子最小张/刻子雀头的牌种.
type Group struct {
	Kind      GroupKind
	Tile      Kind
	Concealed bool
}

func (g Group) IsSet() bool {
	return g.Kind == GroupTriplet || g.Kind == GroupKan
}

// Orphaned 该组是否含幺九牌
func (g Group) Orphaned() bool {
	if g.Kind == GroupRun {
		return g.Tile.Number() == 1 || g.Tile.Number() == 7
	}
	return g.Tile.IsOrphan()
}

// meldGroup 副露转换为面子
func meldGroup(m Meld) Group {
	switch m.Kind {
	case MeldChi:
		return Group{Kind: GroupRun, Tile: m.BaseKind()}
	case MeldPon:
		return Group{Kind: GroupTriplet, Tile: m.BaseKind()}
	case MeldAnkan:
		return Group{Kind: GroupKan, Tile: m.BaseKind(), Concealed: true}
	default:
		return Group{Kind: GroupKan, Tile: m.BaseKind()}
	}
}

// Decompose 判定并分解和牌形. c为门前牌(含和牌张)的种类计数.
// 分解是确定性的: 雀头按牌种升序尝试, 面子在最小牌种处先试刻子再试顺子,
// 取首个成功方案. 牌数不合法时直接返回FormNone.
func Decompose(c Counts, melds []Meld) (Form, []Group, bool) {
	total := c.Total()
	if total%3 != 2 || total > 14 {
		return FormNone, nil, false
	}

	if len(melds) == 0 && total == 14 {
		if isThirteenOrphans(c) {
			return FormThirteenOrphans, nil, true
		}
		if groups, ok := sevenPairGroups(c); ok {
			return FormSevenPairs, groups, true
		}
	}

	need := (total - 2) / 3
	for head := Kind(0); head < KindCount; head++ {
		if c[head] < 2 {
			continue
		}
		c[head] -= 2
		if groups, ok := decomposeSets(&c, need); ok {
			c[head] += 2
			groups = append(groups, Group{Kind: GroupPair, Tile: head, Concealed: true})
			for _, m := range melds {
				groups = append(groups, meldGroup(m))
			}
			return FormStandard, groups, true
		}
		c[head] += 2
	}
	return FormNone, nil, false
}

func decomposeSets(c *Counts, need int) ([]Group, bool) {
	if need == 0 {
		return nil, true
	}
	k := Kind(0)
	for ; k < KindCount; k++ {
		if c[k] > 0 {
			break
		}
	}
	if k == KindCount {
		return nil, false
	}

	// 先刻后顺
	if c[k] >= 3 {
		c[k] -= 3
		if rest, ok := decomposeSets(c, need-1); ok {
			c[k] += 3
			return append(rest, Group{Kind: GroupTriplet, Tile: k, Concealed: true}), true
		}
		c[k] += 3
	}
	if !k.IsHonor() && k.Number() <= 7 && c[k+1] > 0 && c[k+2] > 0 {
		c[k]--
		c[k+1]--
		c[k+2]--
		if rest, ok := decomposeSets(c, need-1); ok {
			c[k]++
			c[k+1]++
			c[k+2]++
			return append(rest, Group{Kind: GroupRun, Tile: k, Concealed: true}), true
		}
		c[k]++
		c[k+1]++
		c[k+2]++
	}
	return nil, false
}

func sevenPairGroups(c Counts) ([]Group, bool) {
	groups := make([]Group, 0, 7)
	for k := Kind(0); k < KindCount; k++ {
		switch c[k] {
		case 0:
		case 2:
			groups = append(groups, Group{Kind: GroupPair, Tile: k, Concealed: true})
		default:
			return nil, false
		}
	}
	if len(groups) != 7 {
		return nil, false
	}
	return groups, true
}

func isThirteenOrphans(c Counts) bool {
	pair := false
	for k := Kind(0); k < KindCount; k++ {
		if k.IsOrphan() {
			switch c[k] {
			case 1:
			case 2:
				if pair {
					return false
				}
				pair = true
			default:
				return false
			}
		} else if c[k] != 0 {
			return false
		}
	}
	return pair
}

// CanWin 13张形的手牌加上一张tile后能否成和
func CanWin(c Counts, melds []Meld, tile Kind) bool {
	if c.Total()%3 != 1 || c[tile] >= 4 {
		return false
	}
	c[tile]++
	_, _, ok := Decompose(c, melds)
	return ok
}
