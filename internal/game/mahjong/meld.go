package mahjong

import "fmt"

// MeldKind 副露/暗杠类型
type MeldKind int

const (
	MeldChi MeldKind = iota
	MeldPon
	MeldAnkan  // 暗杠
	MeldMinkan // 大明杠
	MeldKakan  // 加杠
)

var meldNames = [...]string{
	MeldChi:    "吃",
	MeldPon:    "碰",
	MeldAnkan:  "暗杠",
	MeldMinkan: "明杠",
	MeldKakan:  "加杠",
}

func (k MeldKind) String() string { return meldNames[k] }

// Meld 一组副露. From为被鸣牌的座位, 暗杠时等于自家座位.
type Meld struct {
	Kind  MeldKind
	Tiles Tiles
	From  int
}

func (m Meld) String() string {
	return fmt.Sprintf("%s[%s]", m.Kind, m.Tiles)
}

// IsKan 是否为杠
func (m Meld) IsKan() bool {
	return m.Kind == MeldAnkan || m.Kind == MeldMinkan || m.Kind == MeldKakan
}

// Concealed 是否计为暗刻(仅暗杠)
func (m Meld) Concealed() bool {
	return m.Kind == MeldAnkan
}

// BaseKind 碰/杠的牌种, 吃为最小一张的牌种
func (m Meld) BaseKind() Kind {
	k := m.Tiles[0].Kind
	for _, t := range m.Tiles[1:] {
		if t.Kind < k {
			k = t.Kind
		}
	}
	return k
}
