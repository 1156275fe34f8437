package mahjong

// WaitingKinds 计算13张形手牌的所有听牌种类.
// 牌数不是3n+1时(特殊动作造成的缺牌/多牌)返回nil.
func WaitingKinds(c Counts, melds []Meld) []Kind {
	if c.Total()%3 != 1 {
		return nil
	}
	var waits []Kind
	for k := Kind(0); k < KindCount; k++ {
		if c[k] >= 4 {
			continue
		}
		c[k]++
		if _, _, ok := Decompose(c, melds); ok {
			waits = append(waits, k)
		}
		c[k]--
	}
	return waits
}

// IsTenpai 是否听牌
func IsTenpai(c Counts, melds []Meld) bool {
	return len(WaitingKinds(c, melds)) > 0
}
