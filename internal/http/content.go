package http

import (
	"path/filepath"
	"strings"
)

const DefaultContentType = "text/plain"

var contentTypes = []struct {
	ext, name string
}{
	{".html", "text/html"},
	{".htm", "text/html"},
	{".css", "text/css"},
	{".js", "application/javascript"},
	{".txt", "text/plain"},
	{".gif", "image/gif"},
	{".jpg", "image/jpeg"},
	{".jpeg", "image/jpeg"},
	{".png", "image/png"},
	{".pdf", "application/pdf"},
	{".tar", "application/x-tar"},
	{".xml", "application/xml"},
}

// ContentType looks up the MIME type by the extension of the file name. Extensions
// are compared case-insensitively
func ContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) == 0 {
		return DefaultContentType
	}

	for _, entry := range contentTypes {
		if entry.ext == ext {
			return entry.name
		}
	}

	return DefaultContentType
}
