package constant

type DeskStatus int32

const (
	//创建桌子
	DeskStatusCreate DeskStatus = iota
	//发牌
	DeskStatusDeal
	//等待当前座位打牌
	DeskStatusTurn
	//等待他家吃碰杠和
	DeskStatusCalling
	//抢杠窗口
	DeskStatusRobbing
	//特殊出牌动作进行中(赠牌/连打)
	DeskStatusSpecial
	//单局结算
	DeskStatusRoundOver
	//对局结束
	DeskStatusMatchOver
	//已销毁
	DeskStatusDestory
)

var stringify = [...]string{
	DeskStatusCreate:    "创建",
	DeskStatusDeal:      "发牌",
	DeskStatusTurn:      "出牌",
	DeskStatusCalling:   "鸣牌裁定",
	DeskStatusRobbing:   "抢杠",
	DeskStatusSpecial:   "特殊动作",
	DeskStatusRoundOver: "单局完成",
	DeskStatusMatchOver: "对局完成",
	DeskStatusDestory:   "已销毁",
}

func (s DeskStatus) String() string {
	return stringify[s]
}
