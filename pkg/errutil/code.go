package errutil

const (
	codeBase = 1000
)

const (
	Unknown = codeBase + iota
	tpIllegalParameter
	tpPlayerNotFound
	tpDeskNotFound
	tpDeskFull
	tpIllegalDeskStatus
	tpNotYourTurn
	tpTileNotFound
	tpRiichiLocked
	tpIllegalAction
	tpNotWon
	tpDismatchTileNum
)

var errs = map[error]int{
	ErrIllegalParameter:  tpIllegalParameter,
	ErrPlayerNotFound:    tpPlayerNotFound,
	ErrDeskNotFound:      tpDeskNotFound,
	ErrDeskFull:          tpDeskFull,
	ErrIllegalDeskStatus: tpIllegalDeskStatus,
	ErrNotYourTurn:       tpNotYourTurn,
	ErrTileNotFound:      tpTileNotFound,
	ErrRiichiLocked:      tpRiichiLocked,
	ErrIllegalAction:     tpIllegalAction,
	ErrNotWon:            tpNotWon,
	ErrDismatchTileNum:   tpDismatchTileNum,
}
