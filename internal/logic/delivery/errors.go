package delivery

import "errors"

var ErrDeliver = errors.New("deliver alert")
