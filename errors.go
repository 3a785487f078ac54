package checkbox

import "fmt"

// ErrorKind identifies which gate of the pipeline rejected the input.
type ErrorKind string

const (
	ErrNoFile            ErrorKind = "no_file"
	ErrUnsupportedFormat ErrorKind = "unsupported_format"
	ErrFileTooLarge      ErrorKind = "file_too_large"
	ErrDecode            ErrorKind = "decode_error"
	ErrImageTooSmall     ErrorKind = "image_too_small"
	ErrImageTooLarge     ErrorKind = "image_too_large"
	ErrExport            ErrorKind = "export_error"
	ErrProcessing        ErrorKind = "processing_error"
)

// Error is a pipeline failure with a machine-readable kind and a
// message carrying the offending measurement.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsKind reports whether err is a pipeline error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	cerr, ok := err.(*Error)
	return ok && cerr.Kind == kind
}

func errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// wrapProcessing folds an unexpected failure into a generic processing
// error so callers never see an unstructured message. Errors that
// already carry a kind pass through untouched.
func wrapProcessing(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	return errorf(ErrProcessing, "processing error: %v", err)
}
