package game

import (
	"time"

	"github.com/lonng/nano/scheduler"

	"github.com/tonpu/riichiserver/pkg/constant"
	"github.com/tonpu/riichiserver/protocol"
)

// 机器人与托管座位走和真人完全相同的请求通道,
// 只是以随机短延迟代替人手速度, 与超时定时器公平竞争.

func (d *Desk) actorDelay() time.Duration {
	return actorDelayMin + time.Duration(d.rng.Int63n(int64(actorDelayMax-actorDelayMin)))
}

// scheduleTurnActor 轮到机器人出牌/特殊动作时挂决策回调
func (d *Desk) scheduleTurnActor(seat int) {
	if !d.players[seat].robot {
		return
	}
	d.cancelActorTimer()
	seq := d.seq
	d.actorTimer = scheduler.NewAfterTimer(d.actorDelay(), func() {
		if d.seq != seq || d.status() == constant.DeskStatusDestory {
			return
		}
		d.actTurn(seat)
	})
}

func (d *Desk) actTurn(seat int) {
	p := d.players[seat]

	if d.status() == constant.DeskStatusSpecial {
		sp := d.special
		if sp != nil && sp.kind == specialGift {
			targets := d.giftTargets(seat)
			if len(targets) == 0 || len(p.hand) == 0 {
				_ = d.onAction(seat, &protocol.ActionRequest{Type: protocol.OptypePass})
				return
			}
			_ = d.onAction(seat, &protocol.ActionRequest{
				Type:   protocol.OptypeGift,
				TileID: p.hand[0].ID,
				Target: targets[0],
			})
			return
		}
		// 连打: 直接再出一张
		d.autoDiscard(seat)
		return
	}

	hint := d.turnOps(seat)
	for _, op := range hint.Ops {
		switch op.Type {
		case protocol.OptypeTsumo:
			if err := d.onAction(seat, &protocol.ActionRequest{Type: protocol.OptypeTsumo}); err == nil {
				return
			}
		case protocol.OptypeRiichi:
			if len(op.TileIDs) > 0 {
				req := &protocol.DiscardRequest{TileID: op.TileIDs[0], Riichi: true}
				if err := d.onDiscard(seat, req); err == nil {
					return
				}
			}
		}
	}
	d.autoDiscard(seat)
}

// scheduleCallActors 鸣牌窗口内的机器人: 可和则和, 否则过
func (d *Desk) scheduleCallActors() {
	w := d.call
	var robots []int
	for s := range w.eligible {
		if d.players[s].robot {
			robots = append(robots, s)
		}
	}
	if len(robots) == 0 {
		return
	}
	d.cancelActorTimer()
	seq := d.seq
	d.actorTimer = scheduler.NewAfterTimer(d.actorDelay(), func() {
		if d.seq != seq {
			return
		}
		for _, s := range robots {
			if d.call != w {
				return // 裁定已完成
			}
			typ := protocol.OptypePass
			if opsContain(w.eligible[s], protocol.OptypeRon) {
				typ = protocol.OptypeRon
			}
			if err := d.onAction(s, &protocol.ActionRequest{Type: typ}); err != nil {
				d.players[s].logger.Error(err.Error())
			}
		}
	})
}

// scheduleRobActors 抢杠窗口内的机器人: 一律抢和
func (d *Desk) scheduleRobActors() {
	w := d.rob
	var robots []int
	for s := range w.eligible {
		if d.players[s].robot {
			robots = append(robots, s)
		}
	}
	if len(robots) == 0 {
		return
	}
	d.cancelActorTimer()
	seq := d.seq
	d.actorTimer = scheduler.NewAfterTimer(d.actorDelay(), func() {
		if d.seq != seq {
			return
		}
		for _, s := range robots {
			if d.rob != w {
				return
			}
			if err := d.onAction(s, &protocol.ActionRequest{Type: protocol.OptypeRon}); err != nil {
				d.players[s].logger.Error(err.Error())
			}
		}
	})
}
