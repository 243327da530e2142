package resolve

import (
	"github.com/stretchr/testify/require"
	"github.com/wolframreinke/distsys-pe/internal/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var (
	now      = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	modified = time.Date(2024, time.February, 1, 12, 0, 0, 0, time.UTC)
)

func newResolver() *Resolver {
	r := New()
	r.Now = func() time.Time { return now }

	return r
}

func writeFile(t *testing.T, dir, name string, size int, perm os.FileMode) string {
	filename := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filename, make([]byte, size), perm))
	require.NoError(t, os.Chmod(filename, perm))
	require.NoError(t, os.Chtimes(filename, modified, modified))

	return filename
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	big := writeFile(t, root, "big.bin", 1000, 0o644)
	page := writeFile(t, root, "index.html", 12, 0o644)
	private := writeFile(t, root, "private.txt", 10, 0o640)
	require.NoError(t, os.Mkdir(filepath.Join(root, "cgi-bin"), 0o755))
	script := writeFile(t, root, "cgi-bin/hello.sh", 20, 0o755)
	notExec := writeFile(t, root, "cgi-bin/data.sh", 20, 0o644)

	t.Run("ok", func(t *testing.T) {
		request := http.Request{Method: http.MethodGET, URI: "/index.html"}
		response := newResolver().Resolve(page, request, http.StatusOK)
		require.Equal(t, http.StatusOK, response.Status)
		require.Equal(t, int64(12), response.ContentLength)
		require.Equal(t, http.ContentRange{Begin: 0, Total: 12}, response.ContentRange)
		require.Equal(t, "text/html", response.ContentType)
		require.Equal(t, "/index.html", response.ContentLocation)
		require.True(t, modified.Equal(response.LastModified))
		require.Equal(t, now, response.Date)
	})

	t.Run("partial content", func(t *testing.T) {
		for _, start := range []int64{0, 1, 100, 999} {
			request := http.Request{Method: http.MethodGET, URI: "/big.bin", RangeStart: start}
			response := newResolver().Resolve(big, request, http.StatusPartialContent)
			require.Equal(t, http.StatusPartialContent, response.Status)
			require.Equal(t, start, response.ContentRange.Begin)
			require.Equal(t, int64(1000), response.ContentRange.Total)
			require.Equal(t, 1000-start, response.ContentLength)
		}
	})

	t.Run("range not satisfiable", func(t *testing.T) {
		for _, start := range []int64{-1, 1000, 5000} {
			request := http.Request{Method: http.MethodGET, URI: "/big.bin", RangeStart: start}
			response := newResolver().Resolve(big, request, http.StatusPartialContent)
			require.Equal(t, http.StatusRangeNotSatisfiable, response.Status)
		}
	})

	t.Run("not found", func(t *testing.T) {
		request := http.Request{Method: http.MethodGET, URI: "/missing.html"}
		response := newResolver().Resolve(filepath.Join(root, "missing.html"), request, http.StatusOK)
		require.Equal(t, http.StatusNotFound, response.Status)
	})

	t.Run("directory precedes range", func(t *testing.T) {
		request := http.Request{Method: http.MethodGET, URI: "/cgi-bin", RangeStart: 1 << 40}
		response := newResolver().Resolve(filepath.Join(root, "cgi-bin"), request, http.StatusPartialContent)
		require.Equal(t, http.StatusMovedPermanently, response.Status)
		require.Equal(t, "/cgi-bin", response.ContentLocation)
	})

	t.Run("not world-readable precedes range", func(t *testing.T) {
		request := http.Request{Method: http.MethodGET, URI: "/private.txt", RangeStart: 1 << 40}
		response := newResolver().Resolve(private, request, http.StatusPartialContent)
		require.Equal(t, http.StatusForbidden, response.Status)
	})

	t.Run("cgi", func(t *testing.T) {
		request := http.Request{Method: http.MethodGET, URI: "/cgi-bin/hello.sh", IsCGI: true}
		response := newResolver().Resolve(script, request, http.StatusOK)
		require.Equal(t, http.StatusOK, response.Status)
		require.True(t, response.IsCGI)
	})

	t.Run("cgi not executable", func(t *testing.T) {
		request := http.Request{Method: http.MethodGET, URI: "/cgi-bin/data.sh", IsCGI: true}
		response := newResolver().Resolve(notExec, request, http.StatusOK)
		require.Equal(t, http.StatusForbidden, response.Status)
	})

	t.Run("not modified", func(t *testing.T) {
		for _, since := range []time.Time{modified, modified.Add(time.Hour)} {
			request := http.Request{Method: http.MethodGET, URI: "/big.bin", RangeStart: 100, ModifiedSince: since}
			response := newResolver().Resolve(big, request, http.StatusPartialContent)
			require.Equal(t, http.StatusNotModified, response.Status)
			require.True(t, modified.Equal(response.LastModified))
		}
	})

	t.Run("modified", func(t *testing.T) {
		request := http.Request{Method: http.MethodGET, URI: "/big.bin", ModifiedSince: modified.Add(-time.Second)}
		response := newResolver().Resolve(big, request, http.StatusOK)
		require.Equal(t, http.StatusOK, response.Status)
	})

	t.Run("hint is kept", func(t *testing.T) {
		stat := func(string) (os.FileInfo, error) {
			t.Fatal("filesystem must not be touched")
			return nil, nil
		}

		for _, hint := range []http.Status{http.StatusBadRequest, http.StatusNotImplemented, http.StatusInternalServerError} {
			r := newResolver()
			r.Stat = stat
			response := r.Resolve(page, http.Request{URI: "/index.html"}, hint)
			require.Equal(t, hint, response.Status)
		}
	})

	t.Run("idempotence", func(t *testing.T) {
		request := http.Request{Method: http.MethodHEAD, URI: "/big.bin", RangeStart: 10}
		r := newResolver()
		require.Equal(t, r.Resolve(big, request, http.StatusPartialContent), r.Resolve(big, request, http.StatusPartialContent))
	})
}

func TestMapPath(t *testing.T) {
	require.Equal(t, "/srv/www/index.html", MapPath("/srv/www", "/index.html"))
	require.Equal(t, "/srv/www/default.html", MapPath("/srv/www", "/"))
	require.Equal(t, "/srv/www/docs/default.html", MapPath("/srv/www", "/docs/"))
	require.Equal(t, "/srv/www/docs", MapPath("/srv/www", "/docs"))
	require.Equal(t, "/srv/www/etc/passwd", MapPath("/srv/www", "/../../etc/passwd"))
	require.Equal(t, "/srv/www/cgi-bin/env.sh", MapPath("/srv/www", "/cgi-bin/env.sh?name=value"))
}
