package rpc

import (
	"errors"

	"connectrpc.com/connect"
	"github.com/mcdev12/bpl/go/internal/apperr"
	"github.com/rs/zerolog/log"
)

// ErrorKindHeader carries the apperr kind of a failed call. Conflicts share
// invalid_argument with validation failures, the header tells them apart.
const ErrorKindHeader = "Bpl-Error-Kind"

// Error translates an app-layer error into a *connect.Error.
func Error(err error) error {
	if err == nil {
		return nil
	}

	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	kind := apperr.Kind(err)
	var code connect.Code
	switch kind {
	case "validation", "conflict":
		code = connect.CodeInvalidArgument
	case "not_found":
		code = connect.CodeNotFound
	default:
		log.Error().Err(err).Msg("internal error")
		code = connect.CodeInternal
	}

	out := connect.NewError(code, errors.New(apperr.Message(err)))
	out.Meta().Set(ErrorKindHeader, kind)
	return out
}

// InvalidArgument builds the error returned for malformed request fields
// such as unparsable ids.
func InvalidArgument(format string, args ...any) error {
	return Error(apperr.Validation(format, args...))
}
