package game

import (
	log "github.com/sirupsen/logrus"

	"github.com/tonpu/riichiserver/internal/game/mahjong"
	"github.com/tonpu/riichiserver/internal/game/score"
	"github.com/tonpu/riichiserver/pkg/constant"
	"github.com/tonpu/riichiserver/protocol"
)

// resolveRon 荣和(含抢杠). 役检查失败按上游逻辑缺陷处理,
// 强制荒牌流局而不是中断对局.
func (d *Desk) resolveRon(winner, loser int, tile mahjong.Tile, robKan bool) {
	r := score.Evaluate(d.winContext(winner, tile, false, robKan))
	if !r.Valid() {
		d.logger.WithFields(log.Fields{
			"winner": winner,
			"tile":   tile.String(),
		}).Error("和牌宣言无役, 强制流局")
		d.resolveExhaustive(protocol.AbortZeroYaku)
		return
	}
	p := d.players[winner]
	p.hand = append(p.hand, tile)
	d.settleWin(winner, loser, tile, r)
}

// settleWin 点数转移并结束单局. loser为-1表示自摸.
func (d *Desk) settleWin(winner, loser int, tile mahjong.Tile, r *score.Result) {
	d.cancelTimer()
	d.cancelActorTimer()

	payments := make([]int, deskPlayerCount)
	if loser < 0 {
		fromDealer, fromOthers := score.TsumoPayments(r.Base, winner == d.dealer)
		for s := 0; s < deskPlayerCount; s++ {
			if s == winner {
				continue
			}
			pay := fromOthers
			if winner != d.dealer && s == d.dealer {
				pay = fromDealer
			}
			pay += d.honba * honbaTsumoBonus
			payments[s] = -pay
			payments[winner] += pay
		}
	} else {
		pay := r.Total + d.honba*honbaRonBonus
		payments[loser] = -pay
		payments[winner] = pay
	}
	payments[winner] += d.riichiSticks * riichiStickCost

	for s, p := range d.players {
		p.score += payments[s]
	}
	sticks := d.riichiSticks
	d.riichiSticks = 0

	yaku := make([]protocol.YakuEntry, 0, len(r.Yaku))
	dora := 0
	for _, e := range r.Yaku {
		yaku = append(yaku, protocol.YakuEntry{Name: e.Name, Han: e.Han})
		switch e.Name {
		case "宝牌", "赤宝牌", "里宝牌":
			dora += e.Han
		}
	}
	resultType := protocol.ResultRon
	if loser < 0 {
		resultType = protocol.ResultTsumo
	}
	d.logger.WithFields(log.Fields{
		"winner": winner,
		"loser":  loser,
		"han":    r.Han,
		"fu":     r.Fu,
		"tier":   r.Tier,
		"total":  r.Total,
		"sticks": sticks,
	}).Info("和牌")

	d.broadcastResult(&protocol.RoundResult{
		DeskNo: d.deskNo,
		Type:   resultType,
		Win: &protocol.WinBreakdown{
			Winner:    winner,
			Loser:     loser,
			WinTile:   tile.ID,
			Yaku:      yaku,
			Han:       r.Han,
			Fu:        r.Fu,
			Yakuman:   r.Yakuman,
			Tier:      r.Tier,
			Total:     r.Total,
			Payments:  payments,
			DoraCount: dora,
		},
	})
	d.endRound(winner == d.dealer, winner == d.dealer)
}

// resolveExhaustive 荒牌流局: 听牌者分享3000点罚符.
// abortReason非零时表示由异常路径强制进入.
func (d *Desk) resolveExhaustive(abortReason int) {
	d.cancelTimer()
	d.cancelActorTimer()

	tenpai := make([]bool, deskPlayerCount)
	n := 0
	for s, p := range d.players {
		tenpai[s] = mahjong.IsTenpai(p.hand.Counts(), p.melds)
		if tenpai[s] {
			n++
		}
	}
	payments := make([]int, deskPlayerCount)
	if n > 0 && n < deskPlayerCount {
		gain := drawPoolTotal / n
		cost := drawPoolTotal / (deskPlayerCount - n)
		for s := range d.players {
			if tenpai[s] {
				payments[s] = gain
			} else {
				payments[s] = -cost
			}
		}
		for s, p := range d.players {
			p.score += payments[s]
		}
	}
	d.logger.WithFields(log.Fields{
		"tenpai": tenpai,
		"reason": abortReason,
	}).Info("荒牌流局")

	d.broadcastResult(&protocol.RoundResult{
		DeskNo: d.deskNo,
		Type:   protocol.ResultExhaustive,
		Draw: &protocol.DrawBreakdown{
			Reason:   abortReason,
			Tenpai:   tenpai,
			Payments: payments,
		},
	})
	// 庄家听牌则连庄加本场, 否则过庄且本场清零; 供托留到下局
	d.endRound(tenpai[d.dealer], tenpai[d.dealer])
}

// abortRound 特殊流局(三家和了/四杠/九种九牌): 无点数转移, 庄家无条件连庄
func (d *Desk) abortRound(reason int) {
	d.cancelTimer()
	d.cancelActorTimer()
	d.call = nil
	d.rob = nil
	d.special = nil
	d.logger.WithField("reason", reason).Info("特殊流局")

	d.broadcastResult(&protocol.RoundResult{
		DeskNo: d.deskNo,
		Type:   protocol.ResultAbort,
		Draw: &protocol.DrawBreakdown{
			Reason:   reason,
			Tenpai:   make([]bool, deskPlayerCount),
			Payments: make([]int, deskPlayerCount),
		},
	})
	d.endRound(true, true)
}

func (d *Desk) broadcastResult(r *protocol.RoundResult) {
	r.Scores = make([]int, deskPlayerCount)
	for s, p := range d.players {
		r.Scores[s] = p.score
	}
	d.setStatus(constant.DeskStatusRoundOver)
	d.bump()
	d.sync()
	if err := d.group.Broadcast("onRoundEnd", r); err != nil {
		d.logger.Error(err.Error())
	}
}

// endRound 庄位推进与下一局调度
func (d *Desk) endRound(dealerKeeps, honbaUp bool) {
	if dealerKeeps {
		if honbaUp {
			d.honba++
		}
	} else {
		d.rotations++
		d.dealer = (d.dealer + 1) % deskPlayerCount
		if honbaUp {
			d.honba++
		} else {
			d.honba = 0
		}
	}

	if d.rotations >= maxRounds {
		d.finishMatch()
		return
	}
	d.armTimer(roundInterval, func() { d.setupRound(false) })
}

func (d *Desk) finishMatch() {
	d.setStatus(constant.DeskStatusMatchOver)
	d.bump()

	result := &protocol.MatchResult{
		DeskNo: d.deskNo,
		Scores: make([]int, deskPlayerCount),
		Uids:   make([]int64, deskPlayerCount),
	}
	for s, p := range d.players {
		result.Scores[s] = p.score
		result.Uids[s] = p.uid
	}
	d.logger.WithField("scores", result.Scores).Info("对局结束")
	if err := d.group.Broadcast("onMatchEnd", result); err != nil {
		d.logger.Error(err.Error())
	}
	d.armTimer(roundInterval, d.destroy)
}
