package sequence

import "errors"

// ErrAllocate возвращается, когда номер проекта не удалось выделить
var ErrAllocate = errors.New("sequence.allocator: failed to allocate project number")
