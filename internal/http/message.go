package http

import "time"

// CGIPrefix marks request URIs that are executed rather than served
const CGIPrefix = "/cgi-bin"

// Request is built once per connection by the parser and never mutated afterwards
type Request struct {
	Method Method
	URI    string
	// RangeStart is the first byte to send. The range is always open-ended, up to
	// the end of the file
	RangeStart int64
	// ModifiedSince is zero if the request has no If-Modified-Since field
	ModifiedSince time.Time
	IsCGI         bool
}

type ContentRange struct {
	Begin, Total int64
}

// Response holds everything the transmitter needs to answer a request. Content-related
// fields (LastModified, ContentLength, ContentType, ContentRange) are populated only
// if Status is StatusOK or StatusPartialContent. LastModified is additionally kept
// for StatusNotModified
type Response struct {
	Status          Status
	Method          Method
	Date            time.Time
	LastModified    time.Time
	ContentLength   int64
	ContentType     string
	ContentLocation string
	ContentRange    ContentRange
	IsCGI           bool
}

// HasContent reports whether content-related fields may be read
func (r Response) HasContent() bool {
	return r.Status == StatusOK || r.Status == StatusPartialContent
}
