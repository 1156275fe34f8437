package game

import (
	"sort"

	"github.com/tonpu/riichiserver/internal/game/mahjong"
	"github.com/tonpu/riichiserver/internal/game/score"
	"github.com/tonpu/riichiserver/pkg/constant"
	"github.com/tonpu/riichiserver/pkg/errutil"
	"github.com/tonpu/riichiserver/protocol"
)

type claim struct {
	typ     int
	tileIDs []int
}

// callWindow 一次弃牌的鸣牌裁定窗口, 三家同时响应
type callWindow struct {
	tile     mahjong.Tile
	from     int
	eligible map[int]protocol.Ops
	claims   map[int]*claim
}

func (w *callWindow) chiOnly() bool {
	for _, ops := range w.eligible {
		for _, op := range ops {
			if op.Type != protocol.OptypeChi {
				return false
			}
		}
	}
	return true
}

// openCallWindow 弃牌后对其余三家做合法操作判定.
// 无人可操作时直接进入触发牌检查.
func (d *Desk) openCallWindow(from int, tile mahjong.Tile) {
	eligible := map[int]protocol.Ops{}
	for s := 0; s < deskPlayerCount; s++ {
		if s == from {
			continue
		}
		if ops := d.callOps(s, from, tile); len(ops) > 0 {
			eligible[s] = ops
		}
	}
	if len(eligible) == 0 {
		d.finishDiscard(from, tile)
		return
	}

	d.call = &callWindow{
		tile:     tile,
		from:     from,
		eligible: eligible,
		claims:   map[int]*claim{},
	}
	d.setStatus(constant.DeskStatusCalling)
	d.bump()
	for s, ops := range eligible {
		hint := &protocol.Hint{
			Uid: d.players[s].uid,
			Ops: append(append(protocol.Ops{}, ops...), protocol.Op{Type: protocol.OptypePass}),
		}
		d.players[s].push("onHint", hint)
	}
	d.sync()

	timeout := callTimeout
	if d.call.chiOnly() {
		timeout = chiCallTimeout
	}
	d.armTimer(timeout, d.timeoutCalls)
	d.scheduleCallActors()
}

// callOps 某座位对该弃牌的合法操作
func (d *Desk) callOps(seat, from int, tile mahjong.Tile) protocol.Ops {
	p := d.players[seat]
	var ops protocol.Ops

	if p.canRon(tile.Kind) {
		if r := score.Evaluate(d.winContext(seat, tile, false, false)); r.Valid() {
			ops = append(ops, protocol.Op{Type: protocol.OptypeRon})
		}
	}
	if !p.riichi {
		switch n := p.kindCount(tile.Kind); {
		case n >= 3:
			ops = append(ops, protocol.Op{Type: protocol.OptypePon})
			ops = append(ops, protocol.Op{Type: protocol.OptypeMinkan})
		case n == 2:
			ops = append(ops, protocol.Op{Type: protocol.OptypePon})
		}
		if seat == (from+1)%deskPlayerCount {
			for _, pair := range chiCombos(p.hand, tile.Kind) {
				ops = append(ops, protocol.Op{Type: protocol.OptypeChi, TileIDs: pair})
			}
		}
	}
	return ops
}

// chiCombos 吃的三种相邻组合, 返回所用两张手牌id
func chiCombos(hand mahjong.Tiles, k mahjong.Kind) [][]int {
	if k.IsHonor() {
		return nil
	}
	var out [][]int
	n := k.Number()
	pick := func(a, b mahjong.Kind) {
		ia, ib := firstOfKind(hand, a), firstOfKind(hand, b)
		if ia >= 0 && ib >= 0 {
			out = append(out, []int{ia, ib})
		}
	}
	if n >= 3 {
		pick(k-2, k-1)
	}
	if n >= 2 && n <= 8 {
		pick(k-1, k+1)
	}
	if n <= 7 {
		pick(k+1, k+2)
	}
	return out
}

func firstOfKind(ts mahjong.Tiles, k mahjong.Kind) int {
	for _, t := range ts {
		if t.Kind == k {
			return t.ID
		}
	}
	return -1
}

// onCallAction 裁定窗口内的响应, 全员表态后立即裁定
func (d *Desk) onCallAction(seat int, req *protocol.ActionRequest) error {
	w := d.call
	ops, ok := w.eligible[seat]
	if !ok {
		return errutil.ErrIllegalAction
	}
	if _, responded := w.claims[seat]; responded {
		return errutil.ErrIllegalAction
	}
	if req.Type != protocol.OptypePass && !opsContain(ops, req.Type) {
		return errutil.ErrIllegalAction
	}
	// 吃必须指明所用两张, 且只认提示过的组合
	if req.Type == protocol.OptypeChi && !offeredChiPair(ops, req.TileIDs) {
		return errutil.ErrIllegalAction
	}
	w.claims[seat] = &claim{typ: req.Type, tileIDs: req.TileIDs}
	if len(w.claims) == len(w.eligible) {
		d.resolveCalls()
	}
	return nil
}

// offeredChiPair 声明所用的两张手牌是否出自提示过的吃组合
func offeredChiPair(ops protocol.Ops, ids []int) bool {
	if len(ids) != 2 {
		return false
	}
	for _, op := range ops {
		if op.Type != protocol.OptypeChi || len(op.TileIDs) != 2 {
			continue
		}
		if (op.TileIDs[0] == ids[0] && op.TileIDs[1] == ids[1]) ||
			(op.TileIDs[0] == ids[1] && op.TileIDs[1] == ids[0]) {
			return true
		}
	}
	return false
}

func opsContain(ops protocol.Ops, typ int) bool {
	for _, op := range ops {
		if op.Type == typ {
			return true
		}
	}
	return false
}

// timeoutCalls 裁定超时, 未响应的座位一律按过处理
func (d *Desk) timeoutCalls() {
	w := d.call
	for s := range w.eligible {
		if _, ok := w.claims[s]; !ok {
			w.claims[s] = &claim{typ: protocol.OptypePass}
		}
	}
	d.logger.Debug("鸣牌裁定超时")
	d.resolveCalls()
}

// resolveCalls 裁定: 和 > 杠/碰 > 吃. 三家和了则流局,
// 多家和了时下家优先. 可和未和记见逃振听.
func (d *Desk) resolveCalls() {
	d.cancelTimer()
	d.cancelActorTimer()
	w := d.call
	d.call = nil

	var rons []int
	for s, ops := range w.eligible {
		c := w.claims[s]
		if !opsContain(ops, protocol.OptypeRon) {
			continue
		}
		if c != nil && c.typ == protocol.OptypeRon {
			rons = append(rons, s)
		} else {
			d.players[s].markMissedRon()
		}
	}
	if len(rons) >= 3 {
		d.logger.Info("三家和了, 流局")
		d.abortRound(protocol.AbortTripleRon)
		return
	}
	if len(rons) > 0 {
		sort.Slice(rons, func(i, j int) bool {
			return downstream(w.from, rons[i]) < downstream(w.from, rons[j])
		})
		discarder := d.players[w.from]
		discarder.discards[len(discarder.discards)-1].claimed = true
		d.resolveRon(rons[0], w.from, w.tile, false)
		return
	}

	for _, typ := range []int{protocol.OptypeMinkan, protocol.OptypePon, protocol.OptypeChi} {
		for s, c := range w.claims {
			if c.typ == typ {
				d.executeMeld(s, w, c)
				return
			}
		}
	}
	d.finishDiscard(w.from, w.tile)
}

// downstream 从from起顺位距离
func downstream(from, seat int) int {
	return (seat - from + deskPlayerCount) % deskPlayerCount
}

// executeMeld 执行吃碰杠: 亮出面子, 转移出牌权
func (d *Desk) executeMeld(seat int, w *callWindow, c *claim) {
	p := d.players[seat]
	// 所用手牌先全部核对, 面子要么完整亮出要么完全不动
	if c.typ == protocol.OptypeChi {
		for _, id := range c.tileIDs {
			if p.hand.IndexOf(id) < 0 {
				p.logger.WithField("tile", id).Error("吃牌所用手牌不存在")
				d.finishDiscard(w.from, w.tile)
				return
			}
		}
	}
	discarder := d.players[w.from]
	discarder.discards[len(discarder.discards)-1].claimed = true
	d.anyCall = true
	for _, q := range d.players {
		q.ippatsu = false
	}

	switch c.typ {
	case protocol.OptypePon:
		picked, rest := p.hand.PickByKind(w.tile.Kind, 2)
		p.hand = rest
		p.melds = append(p.melds, mahjong.Meld{
			Kind:  mahjong.MeldPon,
			Tiles: append(picked, w.tile),
			From:  w.from,
		})
	case protocol.OptypeMinkan:
		picked, rest := p.hand.PickByKind(w.tile.Kind, 3)
		p.hand = rest
		p.melds = append(p.melds, mahjong.Meld{
			Kind:  mahjong.MeldMinkan,
			Tiles: append(picked, w.tile),
			From:  w.from,
		})
		p.logger.WithField("tile", w.tile.String()).Info("大明杠")
		if !d.afterKanBookkeeping(seat) {
			return
		}
		d.beginTurn(seat, true)
		return
	case protocol.OptypeChi:
		tiles := mahjong.Tiles{w.tile}
		for _, id := range c.tileIDs {
			p.hand, _ = p.hand.Remove(id)
			tiles = append(tiles, mahjong.FromID(id))
		}
		tiles.Sort()
		p.melds = append(p.melds, mahjong.Meld{Kind: mahjong.MeldChi, Tiles: tiles, From: w.from})
	}

	p.logger.WithField("tile", w.tile.String()).Info("鸣牌成功")
	d.turn = seat
	d.drawnID = -1
	d.afterKan = false
	d.setStatus(constant.DeskStatusTurn)
	d.bump()
	p.push("onHint", d.turnOps(seat))
	d.sync()
	d.armTimer(turnTimeout, func() { d.autoDiscard(seat) })
	d.scheduleTurnActor(seat)
}

// finishDiscard 无人鸣牌: 检查触发牌, 否则正常过庄.
// 立直锁定中的弃牌不触发任何特殊动作.
func (d *Desk) finishDiscard(from int, tile mahjong.Tile) {
	p := d.players[from]
	if !p.riichi && d.special == nil {
		switch {
		case tile.Kind.Number() == skipTriggerNumber:
			d.logger.WithField("tile", tile.String()).Info("触发快进, 跳过下家")
			d.advanceTurn(2)
			return
		case tile.Kind == mahjong.White:
			d.logger.Info("触发连庄再摸")
			d.beginTurn(from, false)
			return
		case tile.Kind.Number() == doubleTriggerNumber:
			d.logger.Info("触发连打, 需再出一张")
			d.beginDoubleDiscard(from)
			return
		case tile.Kind == mahjong.North:
			d.logger.Info("触发赠牌")
			d.beginGift(from)
			return
		}
	}
	d.advanceTurn(1)
}

// beginDoubleDiscard 连打: 同一座位立即再出一张, 不摸牌
func (d *Desk) beginDoubleDiscard(seat int) {
	d.special = &specialState{kind: specialDouble, seat: seat}
	d.setStatus(constant.DeskStatusSpecial)
	d.bump()
	p := d.players[seat]
	p.push("onHint", &protocol.Hint{Uid: p.uid, Ops: protocol.Ops{{Type: protocol.OptypeChu}}})
	d.sync()
	d.armTimer(turnTimeout, func() { d.autoDiscard(seat) })
	d.scheduleTurnActor(seat)
}

// beginGift 赠牌: 选一张手牌与一个接收座位(不能是自己或立直家)
func (d *Desk) beginGift(seat int) {
	if len(d.giftTargets(seat)) == 0 || len(d.players[seat].hand) == 0 {
		d.advanceTurn(1)
		return
	}
	d.special = &specialState{kind: specialGift, seat: seat}
	d.setStatus(constant.DeskStatusSpecial)
	d.bump()
	p := d.players[seat]
	p.push("onHint", &protocol.Hint{Uid: p.uid, Ops: protocol.Ops{
		{Type: protocol.OptypeGift, TileIDs: p.hand.IDs()},
		{Type: protocol.OptypePass},
	}})
	d.sync()
	d.armTimer(callTimeout, func() {
		// 超时放弃赠牌
		d.special = nil
		d.bump()
		d.advanceTurn(1)
	})
	d.scheduleTurnActor(seat)
}

func (d *Desk) giftTargets(seat int) []int {
	var out []int
	for s, p := range d.players {
		if s != seat && !p.riichi {
			out = append(out, s)
		}
	}
	return out
}

// onSpecialAction 赠牌选择(连打走onDiscard)
func (d *Desk) onSpecialAction(seat int, req *protocol.ActionRequest) error {
	sp := d.special
	if sp == nil || sp.kind != specialGift || sp.seat != seat {
		return errutil.ErrIllegalAction
	}
	if req.Type == protocol.OptypePass {
		d.special = nil
		d.bump()
		d.advanceTurn(1)
		return nil
	}
	if req.Type != protocol.OptypeGift {
		return errutil.ErrIllegalAction
	}
	p := d.players[seat]
	if req.Target == seat || req.Target < 0 || req.Target >= deskPlayerCount ||
		d.players[req.Target].riichi {
		return errutil.ErrIllegalAction
	}
	rest, ok := p.hand.Remove(req.TileID)
	if !ok {
		return errutil.ErrTileNotFound
	}
	p.hand = rest
	target := d.players[req.Target]
	target.hand = append(target.hand, mahjong.FromID(req.TileID))
	target.hand.Sort()
	target.recomputeFuriten()
	p.logger.WithFields(map[string]interface{}{
		"tile":   mahjong.FromID(req.TileID).String(),
		"target": req.Target,
	}).Info("赠牌完成")

	d.special = nil
	d.bump()
	d.sync()
	d.advanceTurn(1)
	return nil
}
