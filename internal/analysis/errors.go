package analysis

import "errors"

// ErrUnknownJoint is returned for a sweep joint other than shoulder or elbow.
var ErrUnknownJoint = errors.New("analysis: unknown joint")
