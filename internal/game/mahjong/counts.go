package mahjong

// Counts 按种类统计的牌数
type Counts [KindCount]int

func (c Counts) Total() int {
	sum := 0
	for _, n := range c {
		sum += n
	}
	return sum
}

// OrphanKinds 幺九牌种数(九种九牌判定用)
func (c Counts) OrphanKinds() int {
	n := 0
	for k := Kind(0); k < KindCount; k++ {
		if c[k] > 0 && k.IsOrphan() {
			n++
		}
	}
	return n
}
