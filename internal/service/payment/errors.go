package payment

import "errors"

var ErrUpdateOrder = errors.New("update order record")
