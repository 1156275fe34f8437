package protocol

import "fmt"

type StringResponse struct {
	Code int    `json:"code"` //状态码
	Data string `json:"data"` //字符串数据
}

var SuccessResponse = StringResponse{0, "success"}

var EmptyMessage = &None{}

type None struct{}

type StringMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

//所有可执行的操作
type Ops []Op

type Op struct {
	Type    int   `json:"op"`
	TileIDs []int `json:"tiles"` //操作涉及的牌id
}

//提示: 当前座位可以执行的操作
type Hint struct {
	Uid int64 `json:"uid"`
	Ops Ops   `json:"ops"`
}

func (h *Hint) String() string {
	return fmt.Sprintf("UID=%d, Ops=%+v", h.Uid, h.Ops)
}
