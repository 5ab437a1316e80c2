package service

import "errors"

// ErrNoSource is returned when the service has no data source configured.
var ErrNoSource = errors.New("no data source configured")
