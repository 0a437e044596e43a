package classify

import "errors"

// ErrUnknownType is returned when decoding a clause type outside the taxonomy.
var ErrUnknownType = errors.New("unknown clause type")
