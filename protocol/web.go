package protocol

type VersionResponse struct {
	Version string `json:"version"`
}

//同时在线人数、桌数
type OnlineStatsResponse struct {
	DeskCount   int64 `json:"deskCount"`
	PlayerCount int64 `json:"playerCount"`
}
