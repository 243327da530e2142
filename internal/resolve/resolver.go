package resolve

import (
	"github.com/wolframreinke/distsys-pe/internal/http"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// DefaultPage is served for request URIs ending with a slash
const DefaultPage = "default.html"

const (
	otherRead fs.FileMode = 0o004
	otherExec fs.FileMode = 0o001
)

type Resolver struct {
	// Stat defaults to os.Stat
	Stat func(name string) (fs.FileInfo, error)
	// Now defaults to time.Now
	Now func() time.Time
}

func New() *Resolver {
	return &Resolver{
		Stat: os.Stat,
		Now:  time.Now,
	}
}

// Resolve computes the response for a request, whose resource is mapped onto name.
// The hint is the status the parser ended up with; anything except StatusOK and
// StatusPartialContent is returned as is, without touching the filesystem.
//
// The order of checks matters: the resource must exist, must not be a directory and
// must be world-readable before the range is even looked at. Not Modified is decided
// the last, after Last-Modified is known
func (r *Resolver) Resolve(name string, request http.Request, hint http.Status) http.Response {
	response := http.Response{
		Status:          hint,
		Method:          request.Method,
		Date:            r.Now(),
		ContentLocation: request.URI,
		IsCGI:           request.IsCGI,
	}

	if hint != http.StatusOK && hint != http.StatusPartialContent {
		return response
	}

	info, err := r.Stat(name)
	switch {
	case err != nil:
		response.Status = http.StatusNotFound
		return response
	case info.IsDir():
		response.Status = http.StatusMovedPermanently
		return response
	case !info.Mode().IsRegular() || info.Mode().Perm()&otherRead == 0:
		response.Status = http.StatusForbidden
		return response
	case request.RangeStart < 0 || request.RangeStart >= info.Size():
		response.Status = http.StatusRangeNotSatisfiable
		return response
	}

	response.LastModified = info.ModTime().Truncate(time.Second)

	if request.IsCGI && info.Mode().Perm()&otherExec == 0 {
		response.Status = http.StatusForbidden
	} else {
		response.ContentRange = http.ContentRange{
			Begin: request.RangeStart,
			Total: info.Size(),
		}
		response.ContentLength = info.Size() - request.RangeStart
		response.ContentType = http.ContentType(name)
	}

	if !request.ModifiedSince.IsZero() && !response.LastModified.After(request.ModifiedSince) {
		response.Status = http.StatusNotModified
	}

	return response
}

// MapPath maps the request URI onto the filesystem under root. The query is cut off,
// dot-dot segments can't leave the root, and a trailing slash selects DefaultPage
func MapPath(root, uri string) string {
	if q := strings.IndexByte(uri, '?'); q != -1 {
		uri = uri[:q]
	}

	cleaned := path.Clean("/" + uri)
	if strings.HasSuffix(uri, "/") {
		cleaned = path.Join(cleaned, DefaultPage)
	}

	return filepath.Join(root, filepath.FromSlash(cleaned))
}
