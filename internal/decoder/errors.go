package decoder

import "errors"

var (
	// ErrDestinationWrite reports an error or short write from the data-fork or resource-fork sink
	ErrDestinationWrite = errors.New("destination write failed")

	// ErrResourceForkOpen reports that the resource fork could not be opened for writing
	ErrResourceForkOpen = errors.New("resource fork open failed")

	// ErrMetadataWrite reports that finalized metadata could not be written to the host catalog
	ErrMetadataWrite = errors.New("metadata write failed")

	// ErrSessionClosed is returned by calls made after Finish, Close or Abort
	ErrSessionClosed = errors.New("decode session closed")

	// ErrSessionFailed is returned by writes made after a fatal error
	ErrSessionFailed = errors.New("decode session failed")
)
