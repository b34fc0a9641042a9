package federation

import "errors"

var (
	// ErrUnknownTypename indicates no resolver is registered for the
	// reference's typename
	ErrUnknownTypename = errors.New("unknown reference typename")

	// ErrReferenceNotFound indicates the reference did not resolve to an
	// existing record. A reference never resolves to a partial object.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrRemoteResolve indicates the peer service failed to answer a
	// resolve call
	ErrRemoteResolve = errors.New("remote resolve failed")
)
