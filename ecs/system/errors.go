package system

import "errors"

var errNoScriptLoader = errors.New("routine: no script loader")
