package perspective

import "errors"

// ErrUnknownLocation reports a site code other than H, A or N.
var ErrUnknownLocation = errors.New("unknown location code")
