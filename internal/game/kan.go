package game

import (
	"github.com/tonpu/riichiserver/internal/game/mahjong"
	"github.com/tonpu/riichiserver/internal/game/score"
	"github.com/tonpu/riichiserver/pkg/constant"
	"github.com/tonpu/riichiserver/pkg/errutil"
	"github.com/tonpu/riichiserver/protocol"
)

// robWindow 抢杠窗口: 只允许荣和
type robWindow struct {
	seat      int // 加杠座位
	tile      mahjong.Tile
	meldIndex int
	eligible  map[int]bool
	claims    map[int]int
}

// afterKanBookkeeping 开杠后的公共处理: 计数、翻新宝牌、革命开关、
// 两家以上满四杠流局. 返回false表示本局已终止.
func (d *Desk) afterKanBookkeeping(seat int) bool {
	d.kanCount++
	d.revolution = d.kanCount%2 == 1
	d.kanSeats[seat] = true
	d.anyCall = true
	for _, q := range d.players {
		q.ippatsu = false
	}
	if d.doraCount < 5 {
		d.doraCount++
	}
	d.logger.WithField("kanCount", d.kanCount).
		WithField("revolution", d.revolution).Info("开杠")
	if d.kanCount == 4 && len(d.kanSeats) > 1 {
		d.logger.Info("两家以上开满四杠, 流局")
		d.abortRound(protocol.AbortFourKan)
		return false
	}
	return true
}

// tryAnkan 暗杠. 立直后仅允许杠刚摸的牌且不改听.
func (d *Desk) tryAnkan(seat int, tileID int) error {
	p := d.players[seat]
	if tileID < 0 || tileID >= mahjong.TileCount {
		return errutil.ErrIllegalParameter
	}
	if p.hand.IndexOf(tileID) < 0 {
		return errutil.ErrTileNotFound
	}
	k := mahjong.FromID(tileID).Kind
	allowed := false
	for _, ak := range d.ankanKinds(p) {
		if ak == k {
			allowed = true
			break
		}
	}
	if !allowed {
		return errutil.ErrIllegalAction
	}

	picked, rest := p.hand.PickByKind(k, 4)
	if len(picked) != 4 {
		return errutil.ErrDismatchTileNum
	}
	p.hand = rest
	p.melds = append(p.melds, mahjong.Meld{Kind: mahjong.MeldAnkan, Tiles: picked, From: seat})
	p.logger.WithField("tile", k.String()).Info("暗杠")
	if !d.afterKanBookkeeping(seat) {
		return nil
	}
	d.beginTurn(seat, true)
	return nil
}

// tryKakan 加杠: 先开抢杠窗口, 无人抢则落杠
func (d *Desk) tryKakan(seat int, tileID int) error {
	p := d.players[seat]
	if p.hand.IndexOf(tileID) < 0 {
		return errutil.ErrTileNotFound
	}
	tile := mahjong.FromID(tileID)
	meldIndex := -1
	for i, m := range p.melds {
		if m.Kind == mahjong.MeldPon && m.BaseKind() == tile.Kind {
			meldIndex = i
			break
		}
	}
	if meldIndex < 0 || p.riichi {
		return errutil.ErrIllegalAction
	}

	p.hand, _ = p.hand.Remove(tileID)
	eligible := map[int]bool{}
	for s := 0; s < deskPlayerCount; s++ {
		if s == seat {
			continue
		}
		q := d.players[s]
		if !q.canRon(tile.Kind) {
			continue
		}
		if r := score.Evaluate(d.winContext(s, tile, false, true)); r.Valid() {
			eligible[s] = true
		}
	}
	d.rob = &robWindow{
		seat:      seat,
		tile:      tile,
		meldIndex: meldIndex,
		eligible:  eligible,
		claims:    map[int]int{},
	}
	if len(eligible) == 0 {
		d.finalizeKakan()
		return nil
	}

	p.logger.WithField("tile", tile.String()).Info("加杠宣言, 开抢杠窗口")
	d.setStatus(constant.DeskStatusRobbing)
	d.bump()
	for s := range eligible {
		d.players[s].push("onHint", &protocol.Hint{
			Uid: d.players[s].uid,
			Ops: protocol.Ops{{Type: protocol.OptypeRon}, {Type: protocol.OptypePass}},
		})
	}
	d.sync()
	d.armTimer(callTimeout, d.timeoutRob)
	d.scheduleRobActors()
	return nil
}

func (d *Desk) onRobAction(seat int, req *protocol.ActionRequest) error {
	w := d.rob
	if !w.eligible[seat] {
		return errutil.ErrIllegalAction
	}
	if _, ok := w.claims[seat]; ok {
		return errutil.ErrIllegalAction
	}
	if req.Type != protocol.OptypeRon && req.Type != protocol.OptypePass {
		return errutil.ErrIllegalAction
	}
	w.claims[seat] = req.Type
	if len(w.claims) == len(w.eligible) {
		d.resolveRob()
	}
	return nil
}

func (d *Desk) timeoutRob() {
	for s := range d.rob.eligible {
		if _, ok := d.rob.claims[s]; !ok {
			d.rob.claims[s] = protocol.OptypePass
		}
	}
	d.resolveRob()
}

func (d *Desk) resolveRob() {
	d.cancelTimer()
	d.cancelActorTimer()
	w := d.rob

	var rons []int
	for s := range w.eligible {
		if w.claims[s] == protocol.OptypeRon {
			rons = append(rons, s)
		} else {
			d.players[s].markMissedRon()
		}
	}
	if len(rons) >= 3 {
		d.rob = nil
		d.abortRound(protocol.AbortTripleRon)
		return
	}
	if len(rons) > 0 {
		best := rons[0]
		for _, s := range rons[1:] {
			if downstream(w.seat, s) < downstream(w.seat, best) {
				best = s
			}
		}
		d.rob = nil
		d.resolveRon(best, w.seat, w.tile, true)
		return
	}
	d.finalizeKakan()
}

// finalizeKakan 无人抢杠, 明刻升级为加杠
func (d *Desk) finalizeKakan() {
	w := d.rob
	d.rob = nil
	p := d.players[w.seat]
	m := &p.melds[w.meldIndex]
	m.Kind = mahjong.MeldKakan
	m.Tiles = append(m.Tiles, w.tile)
	if !d.afterKanBookkeeping(w.seat) {
		return
	}
	d.beginTurn(w.seat, true)
}
