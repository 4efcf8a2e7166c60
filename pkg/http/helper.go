package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "dopo/pkg/errors"
)

// DecodeJSON decodes the request body into target and maps decoding
// failures onto client errors.
func DecodeJSON(r *http.Request, target any) error {
	if r.Body == nil {
		return apperrors.InvalidInput("request body is required")
	}

	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		var maxBytesErr *http.MaxBytesError
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError

		switch {
		case errors.As(err, &maxBytesErr):
			return apperrors.PayloadTooLarge(maxBytesErr.Limit)
		case errors.Is(err, io.EOF):
			return apperrors.InvalidInput("request body is required")
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return apperrors.InvalidInput("request body is not valid JSON")
		case errors.As(err, &typeErr):
			return apperrors.InvalidInput("request body has the wrong shape: " + typeErr.Error())
		default:
			return apperrors.InvalidInput("invalid request body")
		}
	}

	return nil
}
