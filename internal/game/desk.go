package game

import (
	"math/rand"
	"time"

	"github.com/lonng/nano"
	"github.com/lonng/nano/scheduler"
	"github.com/lonng/nano/session"
	log "github.com/sirupsen/logrus"

	"github.com/tonpu/riichiserver/internal/game/mahjong"
	"github.com/tonpu/riichiserver/internal/game/score"
	"github.com/tonpu/riichiserver/pkg/constant"
	"github.com/tonpu/riichiserver/pkg/errutil"
	"github.com/tonpu/riichiserver/protocol"
)

// specialKind 进行中的特殊出牌动作
type specialKind int

const (
	specialDouble specialKind = iota // 连打: 同一座位再出一张
	specialGift                      // 赠牌: 选一张手牌转移给他家
)

type specialState struct {
	kind specialKind
	seat int
}

// Desk 一张桌子, 即单个对局的聚合根.
// 所有状态只在nano调度器协程内变更: 外部请求、定时器、
// 机器人决策都经由同一事件队列, 无需加锁.
type Desk struct {
	deskNo    string
	createdAt int64
	group     *nano.Group
	players   []*Player
	logger    *log.Entry
	rng       *rand.Rand

	state constant.DeskStatus
	seq   uint64 // 状态序号, 定时器触发时校验

	timer      *scheduler.Timer
	actorTimer *scheduler.Timer

	// 整场进度
	dealer       int
	rotations    int // 已完成的庄数
	roundWind    mahjong.Kind
	honba        int
	riichiSticks int

	// 单局状态
	wall         mahjong.Tiles
	deadWall     mahjong.Tiles
	doraCount    int
	rinshanDrawn int
	turn         int
	drawnID      int // 刚摸进的牌id, 无则-1
	afterKan     bool
	revolution   bool
	kanCount     int
	kanSeats     map[int]bool
	anyCall      bool
	lastDiscard  int // 最近弃牌id, 无则-1

	call    *callWindow
	rob     *robWindow
	special *specialState
}

func newDesk(deskNo string, rng *rand.Rand) *Desk {
	return &Desk{
		deskNo:    deskNo,
		createdAt: time.Now().Unix(),
		group:     nano.NewGroup("desk-" + deskNo),
		players:   make([]*Player, 0, deskPlayerCount),
		logger:    logger.WithField(fieldDesk, deskNo),
		rng:       rng,
		drawnID:   -1,
		lastDiscard: -1,
	}
}

func (d *Desk) status() constant.DeskStatus {
	return d.state
}

func (d *Desk) setStatus(s constant.DeskStatus) {
	d.state = s
}

// bump 状态推进, 作废所有在途定时器回调
func (d *Desk) bump() {
	d.seq++
}

// armTimer 挂接定时器, 回调触发时校验状态序号未变
func (d *Desk) armTimer(delay time.Duration, fn func()) {
	d.cancelTimer()
	seq := d.seq
	d.timer = scheduler.NewAfterTimer(delay, func() {
		if d.seq != seq || d.status() == constant.DeskStatusDestory {
			return // 定时器已过期
		}
		fn()
	})
}

func (d *Desk) cancelTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Desk) cancelActorTimer() {
	if d.actorTimer != nil {
		d.actorTimer.Stop()
		d.actorTimer = nil
	}
}

func (d *Desk) addPlayer(p *Player) error {
	if len(d.players) >= deskPlayerCount {
		return errutil.ErrDeskFull
	}
	p.seat = len(d.players)
	p.desk = d
	p.score = initialScore
	p.logger = d.logger.WithField("player", p.uid)
	d.players = append(d.players, p)
	if p.session != nil {
		d.group.Add(p.session)
		p.session.Set(fieldDesk, d)
	}
	return nil
}

func (d *Desk) playerWithId(uid int64) (*Player, error) {
	for _, p := range d.players {
		if p.uid == uid {
			return p, nil
		}
	}
	return nil, errutil.ErrPlayerNotFound
}

func (d *Desk) seatWind(seat int) mahjong.Kind {
	return mahjong.East + mahjong.Kind((seat-d.dealer+deskPlayerCount)%deskPlayerCount)
}

func (d *Desk) doraIndicators() mahjong.Tiles {
	return d.deadWall[:d.doraCount]
}

func (d *Desk) uraIndicators() mahjong.Tiles {
	return d.deadWall[5 : 5+d.doraCount]
}

// setupRound 单局初始化并开始第一个回合
func (d *Desk) setupRound(newMatch bool) {
	if newMatch {
		d.dealer = 0
		d.rotations = 0
		d.honba = 0
		d.riichiSticks = 0
		for _, p := range d.players {
			p.score = initialScore
			p.kyuushuUsed = false
		}
	}
	d.roundWind = mahjong.East + mahjong.Kind(d.rotations/deskPlayerCount)

	wall := mahjong.NewWall(d.rng)
	d.deadWall = wall[:deadWallSize]
	d.wall = wall[deadWallSize:]
	d.doraCount = 1
	d.rinshanDrawn = 0
	d.drawnID = -1
	d.lastDiscard = -1
	d.afterKan = false
	d.revolution = false
	d.kanCount = 0
	d.kanSeats = map[int]bool{}
	d.anyCall = false
	d.call = nil
	d.rob = nil
	d.special = nil

	for _, p := range d.players {
		p.resetRound()
	}
	// 从庄家起每人13张
	for i := 0; i < 13; i++ {
		for s := 0; s < deskPlayerCount; s++ {
			seat := (d.dealer + s) % deskPlayerCount
			t, _ := d.drawFromWall()
			d.players[seat].hand = append(d.players[seat].hand, t)
		}
	}
	for _, p := range d.players {
		p.hand.Sort()
	}

	d.setStatus(constant.DeskStatusDeal)
	d.bump()
	d.logger.WithFields(log.Fields{
		"dealer": d.dealer,
		"wind":   d.roundWind.String(),
		"honba":  d.honba,
	}).Info("单局开始")

	deal := &protocol.Deal{
		Dealer:    d.dealer,
		RoundWind: int(d.roundWind),
		Honba:     d.honba,
		Dice1:     d.rng.Intn(6) + 1,
		Dice2:     d.rng.Intn(6) + 1,
	}
	for _, p := range d.players {
		p.push("onDeal", &protocol.Deal{
			Dealer:    deal.Dealer,
			RoundWind: deal.RoundWind,
			Honba:     deal.Honba,
			Dice1:     deal.Dice1,
			Dice2:     deal.Dice2,
			AccountInfo: []protocol.DealInfo{
				{Uid: p.uid, OnHand: p.hand.IDs()},
			},
		})
	}

	d.beginTurn(d.dealer, false)
}

func (d *Desk) drawFromWall() (mahjong.Tile, bool) {
	if len(d.wall) == 0 {
		return mahjong.Tile{}, false
	}
	t := d.wall[0]
	d.wall = d.wall[1:]
	return t, true
}

// drawRinshan 岭上摸牌, 王牌末尾取
func (d *Desk) drawRinshan() (mahjong.Tile, bool) {
	if d.rinshanDrawn >= 4 || len(d.deadWall) <= 10 {
		return mahjong.Tile{}, false
	}
	t := d.deadWall[len(d.deadWall)-1]
	d.deadWall = d.deadWall[:len(d.deadWall)-1]
	d.rinshanDrawn++
	return t, true
}

// beginTurn 进入某座位的回合. rinshan为杠后补牌.
// 摸牌直到手牌为3n+2形: 普通回合摸一张, 吃碰后不摸,
// 赠牌造成的牌数偏差也在这里自然补齐.
func (d *Desk) beginTurn(seat int, rinshan bool) {
	p := d.players[seat]
	d.turn = seat
	d.drawnID = -1
	d.afterKan = rinshan
	p.tempFuriten = false
	p.recomputeFuriten()

	if rinshan {
		t, ok := d.drawRinshan()
		if !ok {
			d.resolveExhaustive(protocol.AbortNone)
			return
		}
		p.hand = append(p.hand, t)
		d.drawnID = t.ID
		p.push("onMoPai", &protocol.MoPai{AccountID: p.uid, TileID: t.ID, DeadWall: true})
	}
	for len(p.hand)%3 != 2 {
		t, ok := d.drawFromWall()
		if !ok {
			d.resolveExhaustive(protocol.AbortNone)
			return
		}
		p.hand = append(p.hand, t)
		d.drawnID = t.ID
		p.push("onMoPai", &protocol.MoPai{AccountID: p.uid, TileID: t.ID})
	}

	d.setStatus(constant.DeskStatusTurn)
	d.bump()
	p.push("onHint", d.turnOps(seat))
	d.sync()
	d.armTimer(turnTimeout, func() { d.autoDiscard(seat) })
	d.scheduleTurnActor(seat)
}

// turnOps 当前回合座位的合法操作
func (d *Desk) turnOps(seat int) *protocol.Hint {
	p := d.players[seat]
	ops := []protocol.Op{{Type: protocol.OptypeChu}}

	if d.drawnID >= 0 {
		if r := score.Evaluate(d.winContext(seat, mahjong.FromID(d.drawnID), true, false)); r.Valid() {
			ops = append(ops, protocol.Op{Type: protocol.OptypeTsumo})
		}
		if ids := d.riichiCandidates(p); len(ids) > 0 {
			ops = append(ops, protocol.Op{Type: protocol.OptypeRiichi, TileIDs: ids})
		}
		for _, k := range d.ankanKinds(p) {
			ids := kindIDs(p.hand, k)
			ops = append(ops, protocol.Op{Type: protocol.OptypeAnkan, TileIDs: ids})
		}
		for _, id := range d.kakanTiles(p) {
			ops = append(ops, protocol.Op{Type: protocol.OptypeKakan, TileIDs: []int{id}})
		}
		if !p.kyuushuUsed && !d.anyCall && len(p.discards) == 0 &&
			p.hand.Counts().OrphanKinds() >= 9 {
			ops = append(ops, protocol.Op{Type: protocol.OptypeKyuushu})
		}
	}
	return &protocol.Hint{Uid: p.uid, Ops: ops}
}

// riichiCandidates 立直宣言可打的牌id. 条件: 门前清、未立直、
// 非振听、点数足够、牌山余量足够、且打出后仍有听牌.
func (d *Desk) riichiCandidates(p *Player) []int {
	if p.riichi || !p.closedHand() || p.furiten ||
		p.score < riichiStickCost || len(d.wall) < riichiMinWall {
		return nil
	}
	var ids []int
	seen := map[mahjong.Kind]bool{}
	counts := p.hand.Counts()
	for _, t := range p.hand {
		if seen[t.Kind] {
			continue
		}
		seen[t.Kind] = true
		counts[t.Kind]--
		if len(mahjong.WaitingKinds(counts, p.melds)) > 0 {
			for _, h := range p.hand {
				if h.Kind == t.Kind {
					ids = append(ids, h.ID)
				}
			}
		}
		counts[t.Kind]++
	}
	return ids
}

// ankanKinds 可暗杠的牌种. 立直后只允许杠刚摸进的那张,
// 且不得改变听牌.
func (d *Desk) ankanKinds(p *Player) []mahjong.Kind {
	counts := p.hand.Counts()
	var kinds []mahjong.Kind
	for k := mahjong.Kind(0); k < mahjong.KindCount; k++ {
		if counts[k] != 4 {
			continue
		}
		if p.riichi {
			if d.drawnID < 0 || mahjong.Kind(d.drawnID/4) != k {
				continue
			}
			if !sameWaits(p, k) {
				continue
			}
		}
		kinds = append(kinds, k)
	}
	return kinds
}

// sameWaits 去掉四张k做暗杠后听牌是否不变
func sameWaits(p *Player, k mahjong.Kind) bool {
	counts := p.hand.Counts()
	counts[mahjong.Kind(p.desk.drawnID/4)]--
	before := mahjong.WaitingKinds(counts, p.melds)

	after := p.hand.Counts()
	after[k] = 0
	kan := mahjong.Meld{Kind: mahjong.MeldAnkan, From: p.seat}
	for i := 0; i < 4; i++ {
		kan.Tiles = append(kan.Tiles, mahjong.FromID(int(k)*4+i))
	}
	got := mahjong.WaitingKinds(after, append(append([]mahjong.Meld{}, p.melds...), kan))

	if len(before) != len(got) {
		return false
	}
	for i := range before {
		if before[i] != got[i] {
			return false
		}
	}
	return true
}

// kakanTiles 可加杠的手牌id(已有对应明刻)
func (d *Desk) kakanTiles(p *Player) []int {
	if p.riichi {
		return nil
	}
	var ids []int
	for _, m := range p.melds {
		if m.Kind != mahjong.MeldPon {
			continue
		}
		for _, t := range p.hand {
			if t.Kind == m.BaseKind() {
				ids = append(ids, t.ID)
			}
		}
	}
	return ids
}

func kindIDs(ts mahjong.Tiles, k mahjong.Kind) []int {
	var ids []int
	for _, t := range ts {
		if t.Kind == k {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// onDiscard 出牌请求. 非法请求记日志后拒绝, 不改动状态.
func (d *Desk) onDiscard(seat int, req *protocol.DiscardRequest) error {
	inDouble := d.special != nil && d.special.kind == specialDouble && d.special.seat == seat
	if d.status() == constant.DeskStatusTurn {
		if d.turn != seat {
			return errutil.ErrNotYourTurn
		}
	} else if !(d.status() == constant.DeskStatusSpecial && inDouble) {
		return errutil.ErrIllegalDeskStatus
	}

	if req.TileID < 0 || req.TileID >= mahjong.TileCount {
		return errutil.ErrIllegalParameter
	}
	p := d.players[seat]
	if p.riichi && !inDouble && req.TileID != d.drawnID {
		return errutil.ErrRiichiLocked
	}
	if p.hand.IndexOf(req.TileID) < 0 {
		return errutil.ErrTileNotFound
	}
	if req.Riichi && !containsID(d.riichiCandidates(p), req.TileID) {
		return errutil.ErrIllegalAction
	}

	tile := mahjong.FromID(req.TileID)
	p.hand, _ = p.hand.Remove(req.TileID)
	p.discards = append(p.discards, discardRecord{tile: tile, riichi: req.Riichi})
	d.lastDiscard = tile.ID
	d.drawnID = -1

	if req.Riichi {
		p.riichi = true
		p.ippatsu = true
		p.riichiTurn = len(p.discards) - 1
		p.score -= riichiStickCost
		d.riichiSticks++
		p.logger.Info("立直宣言")
	} else if p.riichi {
		// 立直后的下一次出牌消一发
		p.ippatsu = false
	}
	p.recomputeFuriten()

	if inDouble {
		// 连打的第二张不开鸣牌窗口, 直接过庄
		d.special = nil
		d.bump()
		d.sync()
		d.advanceTurn(1)
		return nil
	}
	d.openCallWindow(seat, tile)
	return nil
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// autoDiscard 出牌超时: 默认打出刚摸的牌, 无摸牌则打最右一张
func (d *Desk) autoDiscard(seat int) {
	p := d.players[seat]
	id := d.drawnID
	if id < 0 {
		if len(p.hand) == 0 {
			return
		}
		id = p.hand[len(p.hand)-1].ID
	}
	p.logger.WithField("tile", mahjong.FromID(id).String()).Debug("出牌超时, 自动打出")
	if err := d.onDiscard(seat, &protocol.DiscardRequest{TileID: id}); err != nil {
		p.logger.Error(err.Error())
	}
}

func (d *Desk) advanceTurn(step int) {
	d.beginTurn((d.turn+step)%deskPlayerCount, false)
}

// onAction 玩家动作入口, 按状态分派. 非法动作一律拒绝不生效.
func (d *Desk) onAction(seat int, req *protocol.ActionRequest) error {
	switch d.status() {
	case constant.DeskStatusTurn:
		return d.onTurnAction(seat, req)
	case constant.DeskStatusCalling:
		return d.onCallAction(seat, req)
	case constant.DeskStatusRobbing:
		return d.onRobAction(seat, req)
	case constant.DeskStatusSpecial:
		return d.onSpecialAction(seat, req)
	}
	return errutil.ErrIllegalDeskStatus
}

func (d *Desk) onTurnAction(seat int, req *protocol.ActionRequest) error {
	if d.turn != seat {
		return errutil.ErrNotYourTurn
	}
	switch req.Type {
	case protocol.OptypeTsumo:
		return d.tryTsumo(seat)
	case protocol.OptypeAnkan:
		return d.tryAnkan(seat, req.TileID)
	case protocol.OptypeKakan:
		return d.tryKakan(seat, req.TileID)
	case protocol.OptypeKyuushu:
		return d.tryKyuushu(seat)
	}
	return errutil.ErrIllegalAction
}

func (d *Desk) tryTsumo(seat int) error {
	if d.drawnID < 0 {
		return errutil.ErrNotWon
	}
	win := mahjong.FromID(d.drawnID)
	r := score.Evaluate(d.winContext(seat, win, true, false))
	if !r.Valid() {
		return errutil.ErrNotWon
	}
	d.settleWin(seat, -1, win, r)
	return nil
}

func (d *Desk) tryKyuushu(seat int) error {
	p := d.players[seat]
	if p.kyuushuUsed || d.anyCall || len(p.discards) > 0 ||
		p.hand.Counts().OrphanKinds() < 9 {
		return errutil.ErrIllegalAction
	}
	p.kyuushuUsed = true
	p.logger.Info("九种九牌流局")
	d.abortRound(protocol.AbortKyuushu)
	return nil
}

// winContext 构造算点引擎的只读快照
func (d *Desk) winContext(seat int, win mahjong.Tile, selfDraw, robKan bool) *score.Context {
	p := d.players[seat]
	hand := make(mahjong.Tiles, len(p.hand))
	copy(hand, p.hand)
	if !selfDraw {
		hand = append(hand, win)
	}
	ctx := &score.Context{
		Hand:           hand,
		Melds:          p.melds,
		WinTile:        win,
		SelfDraw:       selfDraw,
		Riichi:         p.riichi,
		Ippatsu:        p.ippatsu,
		AfterKan:       d.afterKan && selfDraw,
		RobKan:         robKan,
		SeatWind:       d.seatWind(seat),
		RoundWind:      d.roundWind,
		Dealer:         seat == d.dealer,
		DoraIndicators: d.doraIndicators(),
		Revolution:     d.revolution,
	}
	if p.riichi {
		ctx.UraIndicators = d.uraIndicators()
	}
	return ctx
}

func (d *Desk) destroy() {
	if d.status() == constant.DeskStatusDestory {
		return
	}
	d.setStatus(constant.DeskStatusDestory)
	d.bump()
	d.cancelTimer()
	d.cancelActorTimer()
	for _, p := range d.players {
		if p.session != nil {
			p.session.Remove(fieldDesk)
		}
		p.removeSession()
	}
	d.group.Close()
	d.logger.Info("桌子销毁")
	defaultManager.removeDesk(d.deskNo)
}

func (d *Desk) onPlayerExit(s *session.Session) {
	d.group.Leave(s)
	for _, p := range d.players {
		if p.session == s {
			p.removeSession()
			p.logger.Info("玩家离线, 座位转为托管")
			p.robot = true
			break
		}
	}
}
