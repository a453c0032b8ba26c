package send_reminders

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("send_reminders: internal error")
