package config

import "errors"

// ErrInvalid is wrapped into errors for settings files that exist but
// cannot be parsed. Callers degrade to defaults rather than failing.
var ErrInvalid = errors.New("invalid config")
