package protocol

type JoinRequest struct {
	Name string `json:"name"`
}

type JoinResponse struct {
	Code   int    `json:"code"`
	DeskNo string `json:"deskNo"`
	Seat   int    `json:"seat"`
}

type DiscardRequest struct {
	TileID int  `json:"tileId"`
	Riichi bool `json:"riichi"` //此张是否为立直宣言牌
}

type ActionRequest struct {
	Type    int   `json:"op"`
	TileID  int   `json:"tileId"`  //单张操作(杠、赠牌)
	TileIDs []int `json:"tileIds"` //吃所用的两张手牌
	Target  int   `json:"target"`  //赠牌接收座位
}

type EnterDeskInfo struct {
	Seat    int    `json:"seat"`
	Uid     int64  `json:"acId"`
	Name    string `json:"name"`
	IsBot   bool   `json:"isBot"`
	Score   int    `json:"score"`
	Offline bool   `json:"offline"`
}

type PlayerEnterDesk struct {
	Data []EnterDeskInfo `json:"data"`
}

type DeskBasicInfo struct {
	DeskID string `json:"deskId"`
	Title  string `json:"title"`
	Desc   string `json:"desc"`
}

//发牌
type DealInfo struct {
	Uid    int64 `json:"acId"`
	OnHand []int `json:"tiles"`
}

type Deal struct {
	Dealer      int        `json:"dealer"`
	RoundWind   int        `json:"roundWind"`
	Honba       int        `json:"honba"`
	Dice1       int        `json:"dice1"`
	Dice2       int        `json:"dice2"`
	AccountInfo []DealInfo `json:"accountInfo"`
}

type MoPai struct {
	AccountID int64 `json:"acId"`
	TileID    int   `json:"tileId"`
	DeadWall  bool  `json:"deadWall"` //是否岭上摸牌
}

type OpTypeDo struct {
	Uid     []int64 `json:"uid"`
	OpType  int     `json:"optype"`
	TileIDs []int   `json:"tiles"`
}

//座位快照
type SeatSnapshot struct {
	Uid         int64   `json:"acId"`
	Seat        int     `json:"seat"`
	Score       int     `json:"score"`
	OnHand      []int   `json:"onHand"`
	Melds       []Group `json:"melds"`
	Discards    []int   `json:"discards"`
	RiichiAt    int     `json:"riichiAt"` //立直宣言牌在牌河中的下标,-1未立直
	Ippatsu     bool    `json:"ippatsu"`
	Furiten     bool    `json:"furiten"`
	TempFuriten bool    `json:"tempFuriten"`
}

type Group struct {
	Kind  int   `json:"kind"`
	Tiles []int `json:"tiles"`
	From  int   `json:"from"`
}

//全量桌面快照: 每次状态变化后广播
type DeskSnapshot struct {
	DeskNo       string         `json:"deskNo"`
	Status       int32          `json:"status"`
	Seats        []SeatSnapshot `json:"seats"`
	WallCount    int            `json:"wallCount"`
	DoraShown    []int          `json:"doraShown"` //已翻开的宝牌指示牌id
	RoundWind    int            `json:"roundWind"`
	Dealer       int            `json:"dealer"`
	Honba        int            `json:"honba"`
	RiichiSticks int            `json:"riichiSticks"`
	Revolution   bool           `json:"revolution"`
	KanCount     int            `json:"kanCount"`
	Turn         int            `json:"turn"`
	DrawnTile    int            `json:"drawnTile"` //当前摸牌id,-1无
	LastDiscard  int            `json:"lastDiscard"`
	CallPending  bool           `json:"callPending"`
	RobPending   bool           `json:"robPending"`
	GiftPending  bool           `json:"giftPending"`
}

type YakuEntry struct {
	Name string `json:"name"`
	Han  int    `json:"han"`
}

type WinBreakdown struct {
	Winner    int         `json:"winner"`
	Loser     int         `json:"loser"` //-1为自摸
	WinTile   int         `json:"winTile"`
	Yaku      []YakuEntry `json:"yaku"`
	Han       int         `json:"han"`
	Fu        int         `json:"fu"`
	Yakuman   int         `json:"yakuman"` //役满倍数,0为非役满
	Tier      string      `json:"tier"`
	Total     int         `json:"total"`
	Payments  []int       `json:"payments"` //各座位点数变化(含本场/供托)
	DoraCount int         `json:"doraCount"`
}

type DrawBreakdown struct {
	Reason   int    `json:"reason"` //AbortXXX
	Tenpai   []bool `json:"tenpai"`
	Payments []int  `json:"payments"`
}

//单局结果
type RoundResult struct {
	DeskNo string         `json:"deskNo"`
	Type   int            `json:"type"` //ResultXXX
	Win    *WinBreakdown  `json:"win,omitempty"`
	Draw   *DrawBreakdown `json:"draw,omitempty"`
	Scores []int          `json:"scores"` //各座位局后持点
}

//对局结束
type MatchResult struct {
	DeskNo string  `json:"deskNo"`
	Scores []int   `json:"scores"`
	Uids   []int64 `json:"uids"`
}
