package blocks

import "errors"

// errUnknownParam is wrapped by graph.Modulate/BindParameter/SetConstant
// into a bbxerr.BindingError; blocks only need to signal "not mine".
var errUnknownParam = errors.New("bbx: unknown parameter")
