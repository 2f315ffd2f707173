package tinyuf2

import "fmt"

// NetworkError is a failed download: the request could not be made or the
// server answered with a non-2xx status.
type NetworkError struct {
	Variant    string
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: GET %s: status %d", e.Variant, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: GET %s: %v", e.Variant, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MissingMemberError means a downloaded archive lacks a required file.
type MissingMemberError struct {
	Variant string
	Archive string
	Member  string
}

func (e *MissingMemberError) Error() string {
	return fmt.Sprintf("%s: archive %s has no %s", e.Variant, e.Archive, e.Member)
}
