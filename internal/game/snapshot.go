package game

import (
	"github.com/tonpu/riichiserver/protocol"
)

// snapshot 全量桌面快照. 手牌以明文给出, 由外层按座位过滤,
// 测试与回放也依赖完整信息.
func (d *Desk) snapshot() *protocol.DeskSnapshot {
	seats := make([]protocol.SeatSnapshot, 0, len(d.players))
	for _, p := range d.players {
		melds := make([]protocol.Group, 0, len(p.melds))
		for _, m := range p.melds {
			melds = append(melds, protocol.Group{
				Kind:  int(m.Kind),
				Tiles: m.Tiles.IDs(),
				From:  m.From,
			})
		}
		discards := make([]int, 0, len(p.discards))
		for _, rec := range p.discards {
			if rec.claimed {
				continue
			}
			discards = append(discards, rec.tile.ID)
		}
		riichiAt := -1
		if p.riichi {
			riichiAt = p.riichiTurn
		}
		seats = append(seats, protocol.SeatSnapshot{
			Uid:         p.uid,
			Seat:        p.seat,
			Score:       p.score,
			OnHand:      p.hand.IDs(),
			Melds:       melds,
			Discards:    discards,
			RiichiAt:    riichiAt,
			Ippatsu:     p.ippatsu,
			Furiten:     p.furiten,
			TempFuriten: p.tempFuriten,
		})
	}
	return &protocol.DeskSnapshot{
		DeskNo:       d.deskNo,
		Status:       int32(d.status()),
		Seats:        seats,
		WallCount:    len(d.wall),
		DoraShown:    d.doraIndicators().IDs(),
		RoundWind:    int(d.roundWind),
		Dealer:       d.dealer,
		Honba:        d.honba,
		RiichiSticks: d.riichiSticks,
		Revolution:   d.revolution,
		KanCount:     d.kanCount,
		Turn:         d.turn,
		DrawnTile:    d.drawnID,
		LastDiscard:  d.lastDiscard,
		CallPending:  d.call != nil,
		RobPending:   d.rob != nil,
		GiftPending:  d.special != nil && d.special.kind == specialGift,
	}
}

// sync 每次状态变化后广播快照
func (d *Desk) sync() {
	if err := d.group.Broadcast("onDeskSnapshot", d.snapshot()); err != nil {
		d.logger.Error(err.Error())
	}
}
