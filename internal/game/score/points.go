package score

// 点数档位
const (
	TierNone      = ""
	TierMangan    = "满贯"
	TierHaneman   = "跳满"
	TierBaiman    = "倍满"
	TierSanbaiman = "三倍满"
	TierYakuman   = "役满"
)

// BasePoints 基本点. 役满按13番一倍叠加, 5番或基本点超2000时封顶满贯.
func BasePoints(han, fu int) int {
	switch {
	case han >= 13:
		return 8000 * (han / 13)
	case han >= 11:
		return 6000
	case han >= 8:
		return 4000
	case han >= 6:
		return 3000
	}
	base := fu * (1 << uint(2+han))
	if base > 2000 || han == 5 {
		return 2000
	}
	return base
}

func tierName(han, base int) string {
	switch {
	case han >= 13:
		return TierYakuman
	case han >= 11:
		return TierSanbaiman
	case han >= 8:
		return TierBaiman
	case han >= 6:
		return TierHaneman
	case base >= 2000:
		return TierMangan
	}
	return TierNone
}

// RoundUp100 每笔支付单独进位到100
func RoundUp100(n int) int {
	if rem := n % 100; rem != 0 {
		n += 100 - rem
	}
	return n
}

// RonPayment 荣和时放铳者的单笔支付
func RonPayment(base int, dealer bool) int {
	if dealer {
		return RoundUp100(base * 6)
	}
	return RoundUp100(base * 4)
}

// TsumoPayments 自摸时各家支付: 庄家自摸三家均付fromOthers,
// 闲家自摸庄家付fromDealer、另两家各付fromOthers.
func TsumoPayments(base int, dealer bool) (fromDealer, fromOthers int) {
	if dealer {
		return 0, RoundUp100(base * 2)
	}
	return RoundUp100(base * 2), RoundUp100(base)
}

// settle 按上下文计算基本点/总得点/档位
func settle(ctx *Context, han, fu int) (base, total int, tier string) {
	base = BasePoints(han, fu)
	tier = tierName(han, base)
	if ctx.SelfDraw {
		fromDealer, fromOthers := TsumoPayments(base, ctx.Dealer)
		if ctx.Dealer {
			total = fromOthers * 3
		} else {
			total = fromDealer + fromOthers*2
		}
	} else {
		total = RonPayment(base, ctx.Dealer)
	}
	return base, total, tier
}
