package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrMissingFile             = errors.New("no file was uploaded")
	ErrFileTooLarge            = errors.New("file exceeds maximum allowed size")
	ErrEmptyInput              = errors.New("spreadsheet is empty or invalid")
	ErrUnreadableFormat        = errors.New("unsupported format or invalid file")
	ErrVisionFailure           = errors.New("vision extraction failed")
	ErrNoClassifiableStructure = errors.New("could not identify asset and liability columns automatically")
)

// FailureReason enumerates why an upload could not be turned into a result.
type FailureReason string

const (
	ReasonNone                    FailureReason = ""
	ReasonMissingFile             FailureReason = "MISSING_FILE"
	ReasonFileTooLarge            FailureReason = "FILE_TOO_LARGE"
	ReasonEmptyInput              FailureReason = "EMPTY_INPUT"
	ReasonUnreadableFormat        FailureReason = "UNREADABLE_FORMAT"
	ReasonVisionAdapterFailure    FailureReason = "VISION_ADAPTER_FAILURE"
	ReasonNoClassifiableStructure FailureReason = "NO_CLASSIFIABLE_STRUCTURE"
	ReasonNotFound                FailureReason = "NOT_FOUND"
	ReasonInternal                FailureReason = "INTERNAL_ERROR"
)

// ReasonOf maps err onto its enumerated FailureReason.
func ReasonOf(err error) FailureReason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrMissingFile):
		return ReasonMissingFile
	case errors.Is(err, ErrFileTooLarge):
		return ReasonFileTooLarge
	case errors.Is(err, ErrEmptyInput):
		return ReasonEmptyInput
	case errors.Is(err, ErrUnreadableFormat):
		return ReasonUnreadableFormat
	case errors.Is(err, ErrVisionFailure):
		return ReasonVisionAdapterFailure
	case errors.Is(err, ErrNoClassifiableStructure):
		return ReasonNoClassifiableStructure
	case errors.Is(err, ErrNotFound):
		return ReasonNotFound
	default:
		return ReasonInternal
	}
}
