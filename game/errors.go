package game

import "errors"

var (
	ErrOffBoard       = errors.New("square off board")
	ErrNotPlayable    = errors.New("square not playable")
	ErrSquareOccupied = errors.New("square occupied")
	ErrPieceNotFound  = errors.New("piece not on board")
)
