package atlas

import (
	"errors"
	"fmt"
)

// Result classifies the outcome of Generate.
type Result int

const (
	OK Result = iota
	// BadPolygon: a sprite produced no polygon, or the packer left one unplaced.
	BadPolygon
	// TooManyImages: the sprites need 255 or more atlas pages.
	TooManyImages
	// BadImage: a raster's size or channel layout cannot be processed.
	BadImage
)

var (
	ErrBadPolygon    = errors.New("atlas: bad polygon")
	ErrTooManyImages = errors.New("atlas: too many images")
	ErrBadImage      = errors.New("atlas: bad image")
)

func (r Result) String() string {
	switch r {
	case OK:
		return "OK"
	case BadPolygon:
		return "BAD_POLYGON"
	case TooManyImages:
		return "TOO_MANY_IMAGES"
	case BadImage:
		return "BAD_IMAGE"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

func (r Result) sentinel() error {
	switch r {
	case BadPolygon:
		return ErrBadPolygon
	case TooManyImages:
		return ErrTooManyImages
	case BadImage:
		return ErrBadImage
	}
	return nil
}

// Error is returned by Generate. Item is the index of the offending sprite, or
// -1 when the failure concerns the whole batch.
type Error struct {
	Code Result
	Item int
	Err  error
}

func (e *Error) Error() string {
	msg := e.Code.sentinel().Error()
	if e.Item >= 0 {
		msg = fmt.Sprintf("%s (item %d)", msg, e.Item)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's code.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Code.sentinel()
}

func newError(code Result, item int, err error) *Error {
	return &Error{Code: code, Item: item, Err: err}
}

// ResultOf maps an error returned by Generate to its Result code.
func ResultOf(err error) Result {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return BadImage
}
