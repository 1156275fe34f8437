package mahjong

import (
	"fmt"
	"math/rand"
	"strings"
)

// Kind 牌种(0~33): 9万 + 9筒 + 9索 + 7字
type Kind int

const (
	Man1 Kind = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	Sou1
	Sou2
	Sou3
	Sou4
	Sou5
	Sou6
	Sou7
	Sou8
	Sou9

	East
	South
	West
	North
	White
	Green
	Red
)

const (
	KindCount = 34  // 牌种数
	TileCount = 136 // 全部实体牌数
)

var suitNames = []string{"万", "筒", "索"}
var honorNames = []string{"东", "南", "西", "北", "白", "发", "中"}

func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return fmt.Sprintf("非法牌(%d)", int(k))
	}
	if k.IsHonor() {
		return honorNames[k-East]
	}
	return fmt.Sprintf("%d%s", k.Number(), suitNames[k.Suit()])
}

// Suit 花色: 0万 1筒 2索, 字牌返回-1
func (k Kind) Suit() int {
	if k.IsHonor() {
		return -1
	}
	return int(k) / 9
}

// Number 点数1~9, 字牌返回0
func (k Kind) Number() int {
	if k.IsHonor() {
		return 0
	}
	return int(k)%9 + 1
}

func (k Kind) IsHonor() bool {
	return k >= East
}

func (k Kind) IsWind() bool {
	return k >= East && k <= North
}

func (k Kind) IsDragon() bool {
	return k >= White
}

// IsTerminal 数牌1、9
func (k Kind) IsTerminal() bool {
	if k.IsHonor() {
		return false
	}
	n := k.Number()
	return n == 1 || n == 9
}

// IsOrphan 幺九牌(数牌1、9及字牌)
func (k Kind) IsOrphan() bool {
	return k.IsHonor() || k.IsTerminal()
}

func (k Kind) IsSimple() bool {
	return !k.IsOrphan()
}

func (k Kind) IsFive() bool {
	return !k.IsHonor() && k.Number() == 5
}

// DoraNext 指示牌对应的宝牌
func (k Kind) DoraNext() Kind {
	switch {
	case k.IsWind():
		return East + (k-East+1)%4
	case k.IsDragon():
		return White + (k-White+1)%3
	case k.Number() == 9:
		return k - 8
	default:
		return k + 1
	}
}

// Tile 实体牌. ID为0~135全局唯一, ID/4即Kind.
// 数牌5的第0张为赤牌: 与普通5同种参与组牌,计分时额外算宝牌.
type Tile struct {
	Kind Kind
	ID   int
}

func FromID(id int) Tile {
	if id < 0 || id >= TileCount {
		panic(fmt.Errorf("illegal tile id: %d", id))
	}
	return Tile{Kind: Kind(id / 4), ID: id}
}

func (t Tile) IsRed() bool {
	return t.Kind.IsFive() && t.ID%4 == 0
}

func (t Tile) String() string {
	if t.IsRed() {
		return "红" + t.Kind.String()
	}
	return t.Kind.String()
}

type Tiles []Tile

func (ts Tiles) String() string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func (ts Tiles) IDs() []int {
	ids := make([]int, len(ts))
	for i, t := range ts {
		ids[i] = t.ID
	}
	return ids
}

func (ts Tiles) Counts() Counts {
	var c Counts
	for _, t := range ts {
		c[t.Kind]++
	}
	return c
}

// Sort 按种类排序,同种按ID
func (ts Tiles) Sort() {
	for i := 1; i < len(ts); i++ {
		for j := i; j > 0 && less(ts[j], ts[j-1]); j-- {
			ts[j], ts[j-1] = ts[j-1], ts[j]
		}
	}
}

func less(a, b Tile) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.ID < b.ID
}

// IndexOf 返回指定id的下标,未找到返回-1
func (ts Tiles) IndexOf(id int) int {
	for i, t := range ts {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Remove 移除指定id的牌
func (ts Tiles) Remove(id int) (Tiles, bool) {
	i := ts.IndexOf(id)
	if i < 0 {
		return ts, false
	}
	rest := make(Tiles, 0, len(ts)-1)
	rest = append(rest, ts[:i]...)
	rest = append(rest, ts[i+1:]...)
	return rest, true
}

// PickByKind 取出n张指定种类的牌(优先非赤牌)
func (ts Tiles) PickByKind(k Kind, n int) (picked Tiles, rest Tiles) {
	rest = make(Tiles, 0, len(ts))
	var reds Tiles
	for _, t := range ts {
		switch {
		case t.Kind != k:
			rest = append(rest, t)
		case t.IsRed():
			reds = append(reds, t)
		case len(picked) < n:
			picked = append(picked, t)
		default:
			rest = append(rest, t)
		}
	}
	for len(picked) < n && len(reds) > 0 {
		picked = append(picked, reds[0])
		reds = reds[1:]
	}
	rest = append(rest, reds...)
	return picked, rest
}

// NewWall 生成洗好的136张牌山
func NewWall(rng *rand.Rand) Tiles {
	wall := make(Tiles, TileCount)
	for i := range wall {
		wall[i] = FromID(i)
	}
	rng.Shuffle(len(wall), func(i, j int) {
		wall[i], wall[j] = wall[j], wall[i]
	})
	return wall
}
