package domain

import "errors"

var (
	ErrInvalidAssetMetadata = errors.New("invalid asset metadata")
	ErrMissingDimensions    = errors.New("missing dimensions")
	ErrInvalidDisplaySize   = errors.New("invalid display size")
	ErrInvalidAssetPath     = errors.New("invalid asset path")

	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrQuotaExceeded      = errors.New("daily quota exceeded")
)
