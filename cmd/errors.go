package cmd

import (
	"errors"

	"github.com/sbpo/datapoints/internal/output"
)

// errReported marks an error that has already been printed
var errReported = errors.New("error already reported")

// reportError prints err as a JSON error object or a styled message and
// returns an error Execute will not print again
func reportError(err error, jsonOut bool) error {
	if jsonOut {
		output.JSONError(output.ErrorCode(err), err.Error())
	} else {
		output.Error("%v", err)
	}
	return errors.Join(errReported, err)
}
