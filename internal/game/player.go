package game

import (
	"github.com/lonng/nano/session"
	log "github.com/sirupsen/logrus"

	"github.com/tonpu/riichiserver/internal/game/mahjong"
)

type discardRecord struct {
	tile    mahjong.Tile
	riichi  bool
	claimed bool // 被他家鸣走
}

// Player 一个座位上的玩家, 机器人时session为空.
// 所有字段只在调度器协程内读写.
type Player struct {
	uid   int64
	name  string
	robot bool
	seat  int
	score int

	session *session.Session
	desk    *Desk
	logger  *log.Entry

	hand     mahjong.Tiles
	melds    []mahjong.Meld
	discards []discardRecord

	riichi     bool
	riichiTurn int // 立直宣言在弃牌河中的位置
	ippatsu    bool

	furiten       bool // 舍张振听
	tempFuriten   bool // 同巡振听
	riichiFuriten bool // 立直后见逃, 永久

	kyuushuUsed bool // 九种九牌每场限一次
}

func newPlayer(uid int64, name string, robot bool) *Player {
	return &Player{
		uid:    uid,
		name:   name,
		robot:  robot,
		logger: logger.WithField("player", uid),
	}
}

func (p *Player) bindSession(s *session.Session) {
	p.session = s
	p.session.Set(fieldPlayer, p)
}

func (p *Player) removeSession() {
	if p.session != nil {
		p.session.Remove(fieldPlayer)
		p.session = nil
	}
}

// push 给本座位推送消息, 机器人与断线玩家直接丢弃
func (p *Player) push(route string, v interface{}) {
	if p.session == nil {
		return
	}
	if err := p.session.Push(route, v); err != nil {
		p.logger.Error(err.Error())
	}
}

func (p *Player) resetRound() {
	p.hand = nil
	p.melds = nil
	p.discards = nil
	p.riichi = false
	p.riichiTurn = 0
	p.ippatsu = false
	p.furiten = false
	p.tempFuriten = false
	p.riichiFuriten = false
}

// closedHand 门前清(仅暗杠)
func (p *Player) closedHand() bool {
	for _, m := range p.melds {
		if m.Kind != mahjong.MeldAnkan {
			return false
		}
	}
	return true
}

// waits 当前听牌集合, 手牌不是13张形时为空
func (p *Player) waits() []mahjong.Kind {
	return mahjong.WaitingKinds(p.hand.Counts(), p.melds)
}

// recomputeFuriten 由当前听牌与弃牌河重算舍张振听
func (p *Player) recomputeFuriten() {
	if p.riichiFuriten {
		p.furiten = true
		return
	}
	waits := p.waits()
	p.furiten = false
	for _, d := range p.discards {
		for _, w := range waits {
			if d.tile.Kind == w {
				p.furiten = true
				return
			}
		}
	}
}

// markMissedRon 见逃: 立直中永久振听, 否则同巡振听
func (p *Player) markMissedRon() {
	if p.riichi {
		p.riichiFuriten = true
		p.furiten = true
		p.logger.Debug("立直中见逃, 进入永久振听")
	} else {
		p.tempFuriten = true
	}
}

// canRon 门前牌加tile是否能荣和(含振听与役检查在desk层)
func (p *Player) canRon(k mahjong.Kind) bool {
	if p.furiten || p.tempFuriten {
		return false
	}
	return mahjong.CanWin(p.hand.Counts(), p.melds, k)
}

// kindCount 手中指定种类的张数
func (p *Player) kindCount(k mahjong.Kind) int {
	n := 0
	for _, t := range p.hand {
		if t.Kind == k {
			n++
		}
	}
	return n
}
