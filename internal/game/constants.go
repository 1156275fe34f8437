package game

import "time"

const (
	fieldDesk   = "desk"
	fieldPlayer = "player"
)

const (
	deskPlayerCount = 4
	deadWallSize    = 14
	riichiStickCost = 1000
	honbaRonBonus   = 300
	honbaTsumoBonus = 100
	drawPoolTotal   = 3000
	riichiMinWall   = 4
)

// 可被配置覆盖的默认时长, 见Startup
var (
	turnTimeout    = 30 * time.Second
	callTimeout    = 10 * time.Second
	chiCallTimeout = 5 * time.Second
	fillTimeout    = 10 * time.Second
	roundInterval  = 3 * time.Second
	actorDelayMin  = 500 * time.Millisecond
	actorDelayMax  = 2 * time.Second
)

var (
	initialScore = 25000
	maxRounds    = 8 // 东风+南风共8庄
)

// 触发牌: 任意8快进两家, 白连打, 任意2连出两张, 北风赠牌
const (
	skipTriggerNumber   = 8
	doubleTriggerNumber = 2
)
