package protocol

//玩家操作类型
const (
	OptypeIllegal = iota
	OptypePass    //过
	OptypeChu     //出牌
	OptypeTsumo   //自摸和
	OptypeRon     //荣和
	OptypeRiichi  //立直宣言(带出牌)
	OptypeChi     //吃
	OptypePon     //碰
	OptypeAnkan   //暗杠
	OptypeMinkan  //大明杠
	OptypeKakan   //加杠
	OptypeKyuushu //九种九牌流局
	OptypeGift    //赠牌跟随操作
	OptypeMoPai   //摸牌(仅用于记录)
)

//单局结束类型
const (
	ResultRon        = iota + 1 //荣和
	ResultTsumo                 //自摸
	ResultExhaustive            //荒牌流局
	ResultAbort                 //特殊流局
)

//特殊流局原因
const (
	AbortNone      = iota
	AbortTripleRon //三家和了
	AbortFourKan   //两家以上开杠满四杠
	AbortKyuushu   //九种九牌
	AbortZeroYaku  //和牌无役,强制流局
)
