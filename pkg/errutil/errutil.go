package errutil

import (
	"github.com/pkg/errors"
)

var (
	ErrIllegalParameter  = errors.New("illegal parameter")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrDeskNotFound      = errors.New("desk not found")
	ErrDeskFull          = errors.New("desk is full")
	ErrIllegalDeskStatus = errors.New("illegal desk status")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrTileNotFound      = errors.New("tile not in hand")
	ErrRiichiLocked      = errors.New("riichi locked discard")
	ErrIllegalAction     = errors.New("illegal action for seat")
	ErrNotWon            = errors.New("not won now")
	ErrDismatchTileNum   = errors.New("a shortage or surplus of tiles")
)

//Code code for the error
func Code(err error) int {
	if c, ok := errs[err]; ok {
		return c
	}
	return Unknown
}
