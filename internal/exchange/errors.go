package exchange

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cxf/models"
)

var (
	// ErrEmptyPayload is returned by Importer.Open for a response without
	// a payload.
	ErrEmptyPayload = errors.New("export response has an empty payload")

	// ErrHpkeMismatch is returned when a response was sealed with
	// parameters the importer did not ask for.
	ErrHpkeMismatch = errors.New("export response hpke parameters were not requested")
)

// ProtocolError is a failure that has a protocol error code and should be
// answered with an ErrorResponse.
type ProtocolError struct {
	Code models.ErrorCode
	Err  error
}

func (e *ProtocolError) Error() string {
	if e.Err == nil {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// Response converts e into the message sent back to the importer.
func (e *ProtocolError) Response() *models.ErrorResponse {
	return models.NewErrorResponse(e.Code)
}

func protocolError(resp *models.ErrorResponse, err error) *ProtocolError {
	return &ProtocolError{Code: resp.Error, Err: err}
}
