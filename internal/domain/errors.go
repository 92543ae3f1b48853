package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrMissingField        = errors.New("missing required field")
	ErrInvalidStage        = errors.New("operation not allowed in current stage")
	ErrEmptyChecklist      = errors.New("checklist for ad type is empty")
	ErrUnknownAdType       = errors.New("unknown ad type")

	// ErrUpstreamFailure covers network/quota/malformed-request failures of
	// the generative or catalog collaborator.
	ErrUpstreamFailure = errors.New("upstream collaborator failure")
	// ErrNoJSONFound means the model output contained no span of the
	// requested JSON kind at all.
	ErrNoJSONFound = errors.New("no JSON payload found in model output")
	// ErrInvalidJSON means a span was located but failed strict parsing.
	ErrInvalidJSON = errors.New("matched JSON span failed to parse")
	// ErrUnparsableResponse means the model output contained no well-formed
	// JSON payload where one was required.
	ErrUnparsableResponse = errors.New("model response contained no parsable JSON")
	// ErrSchemaMismatch means the extracted JSON did not satisfy the expected
	// shape (missing field, bad enum value, confidence out of range, index
	// out of bounds).
	ErrSchemaMismatch = errors.New("model response did not match expected schema")
)
