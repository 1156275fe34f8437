package game

import (
	"fmt"
	"sync/atomic"

	"github.com/lonng/nano/component"
	"github.com/lonng/nano/session"
	"github.com/pborman/uuid"

	"github.com/tonpu/riichiserver/pkg/errutil"
	"github.com/tonpu/riichiserver/protocol"
)

// Manager 桌子管理器, nano组件. 所有handler都在调度器协程内执行.
type Manager struct {
	component.Base
	desks   map[string]*Desk
	pending *Desk // 凑人中的桌子
	uidSeq  int64
	botSeq  int64

	// 统计值跨协程读(web状态页), 原子访问
	deskCount   int64
	playerCount int64
}

func NewManager() *Manager {
	return &Manager{
		desks: map[string]*Desk{},
	}
}

func (m *Manager) AfterInit() {
	session.Lifetime.OnClosed(func(s *session.Session) {
		atomic.AddInt64(&m.playerCount, -1)
		if v := s.Value(fieldDesk); v != nil {
			v.(*Desk).onPlayerExit(s)
		}
	})
}

func playerWithSession(s *session.Session) (*Player, *Desk, error) {
	v := s.Value(fieldPlayer)
	if v == nil {
		return nil, nil, errutil.ErrPlayerNotFound
	}
	p := v.(*Player)
	if p.desk == nil {
		return nil, nil, errutil.ErrDeskNotFound
	}
	return p, p.desk, nil
}

// Join 进入匹配: 加入凑人中的桌子, 没有则新开一张.
// 超时未满四人由机器人补位.
func (m *Manager) Join(s *session.Session, req *protocol.JoinRequest) error {
	if s.Value(fieldPlayer) != nil {
		return s.Response(&protocol.ErrorResponse{
			Code:  errutil.Code(errutil.ErrIllegalDeskStatus),
			Error: "already seated",
		})
	}

	m.uidSeq++
	uid := m.uidSeq
	if err := s.Bind(uid); err != nil {
		logger.Error(err.Error())
	}
	atomic.AddInt64(&m.playerCount, 1)

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("玩家%d", uid)
	}
	p := newPlayer(uid, name, false)
	p.bindSession(s)

	d := m.pending
	if d == nil {
		d = newDesk(uuid.New(), newRand())
		m.desks[d.deskNo] = d
		m.pending = d
		atomic.AddInt64(&m.deskCount, 1)
		d.logger.Info("新开桌子")
		desk := d
		d.armTimer(fillTimeout, func() { m.fillBots(desk) })
	}
	if err := d.addPlayer(p); err != nil {
		return s.Response(&protocol.ErrorResponse{Code: errutil.Code(err), Error: err.Error()})
	}

	enter := &protocol.PlayerEnterDesk{}
	for _, q := range d.players {
		enter.Data = append(enter.Data, protocol.EnterDeskInfo{
			Seat:    q.seat,
			Uid:     q.uid,
			Name:    q.name,
			IsBot:   q.robot,
			Score:   q.score,
			Offline: q.session == nil && !q.robot,
		})
	}
	if err := d.group.Broadcast("onPlayerEnter", enter); err != nil {
		d.logger.Error(err.Error())
	}

	if len(d.players) == deskPlayerCount {
		m.pending = nil
		d.cancelTimer()
		d.setupRound(true)
	}
	return s.Response(&protocol.JoinResponse{DeskNo: d.deskNo, Seat: p.seat})
}

// fillBots 凑人超时, 机器人补位开局
func (m *Manager) fillBots(d *Desk) {
	if m.pending == d {
		m.pending = nil
	}
	if len(d.players) == 0 {
		d.destroy()
		return
	}
	for len(d.players) < deskPlayerCount {
		m.botSeq++
		bot := newPlayer(-m.botSeq, fmt.Sprintf("旅人%d", m.botSeq), true)
		if err := d.addPlayer(bot); err != nil {
			d.logger.Error(err.Error())
			return
		}
	}
	d.logger.Info("机器人补位, 开局")
	d.setupRound(true)
}

// Discard 出牌请求. 非法请求只回错误码, 不影响局面.
func (m *Manager) Discard(s *session.Session, req *protocol.DiscardRequest) error {
	p, d, err := playerWithSession(s)
	if err != nil {
		return s.Response(&protocol.ErrorResponse{Code: errutil.Code(err), Error: err.Error()})
	}
	if err := d.onDiscard(p.seat, req); err != nil {
		p.logger.WithField("tile", req.TileID).Debug(err.Error())
		return s.Response(&protocol.ErrorResponse{Code: errutil.Code(err), Error: err.Error()})
	}
	return s.Response(&protocol.SuccessResponse)
}

// Action 其余动作请求(和/杠/鸣牌/九种九牌/赠牌/过)
func (m *Manager) Action(s *session.Session, req *protocol.ActionRequest) error {
	p, d, err := playerWithSession(s)
	if err != nil {
		return s.Response(&protocol.ErrorResponse{Code: errutil.Code(err), Error: err.Error()})
	}
	if err := d.onAction(p.seat, req); err != nil {
		p.logger.WithField("op", req.Type).Debug(err.Error())
		return s.Response(&protocol.ErrorResponse{Code: errutil.Code(err), Error: err.Error()})
	}
	return s.Response(&protocol.SuccessResponse)
}

func (m *Manager) removeDesk(deskNo string) {
	if _, ok := m.desks[deskNo]; ok {
		delete(m.desks, deskNo)
		atomic.AddInt64(&m.deskCount, -1)
	}
	if m.pending != nil && m.pending.deskNo == deskNo {
		m.pending = nil
	}
}

// Stats 在线桌数与人数, 供状态页跨协程读取
func Stats() (desks, players int64) {
	return atomic.LoadInt64(&defaultManager.deskCount),
		atomic.LoadInt64(&defaultManager.playerCount)
}
