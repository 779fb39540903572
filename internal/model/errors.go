package model

import "errors"

// ErrMissingClientName is returned when the export has no "Client Name" column
// or a record is too short to carry one. The whole file is rejected.
var ErrMissingClientName = errors.New(`missing required column "Client Name"`)
