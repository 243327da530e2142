package http

import (
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestStatus(t *testing.T) {
	t.Run("codes", func(t *testing.T) {
		codes := map[Status]int{
			StatusOK:                  200,
			StatusPartialContent:      206,
			StatusMovedPermanently:    301,
			StatusNotModified:         304,
			StatusBadRequest:          400,
			StatusForbidden:           403,
			StatusNotFound:            404,
			StatusRangeNotSatisfiable: 416,
			StatusInternalServerError: 500,
			StatusNotImplemented:      501,
		}

		for status, code := range codes {
			require.Equal(t, code, status.Code())
			require.NotEmpty(t, status.Text())
		}
	})

	t.Run("errors", func(t *testing.T) {
		require.False(t, StatusNotModified.IsError())
		require.True(t, StatusBadRequest.IsError())
		require.True(t, StatusNotImplemented.IsError())
	})

	t.Run("unknown panics", func(t *testing.T) {
		require.Panics(t, func() {
			_ = Status(200).Code()
		})
	})
}

func TestLookupMethod(t *testing.T) {
	require.Equal(t, MethodGET, LookupMethod("GET"))
	require.Equal(t, MethodHEAD, LookupMethod("HEAD"))
	require.Equal(t, MethodNotImplemented, LookupMethod("POST"))
	require.Equal(t, MethodNotImplemented, LookupMethod("get"))
	require.Equal(t, MethodNotImplemented, LookupMethod("BREW"))
}

func TestContentType(t *testing.T) {
	require.Equal(t, "text/html", ContentType("/srv/www/index.html"))
	require.Equal(t, "image/jpeg", ContentType("photo.JPG"))
	require.Equal(t, "application/x-tar", ContentType("dist/archive.tar"))
	require.Equal(t, DefaultContentType, ContentType("Makefile"))
	require.Equal(t, DefaultContentType, ContentType("data.bin"))
	require.Equal(t, DefaultContentType, ContentType("index.html.bak"))
}

func TestDate(t *testing.T) {
	date := time.Date(2016, time.July, 22, 13, 4, 5, 0, time.UTC)
	require.Equal(t, "Fri, 22 Jul 2016 13:04:05 GMT", FormatDate(date))

	parsed, err := ParseDate("Fri, 22 Jul 2016 13:04:05 GMT")
	require.NoError(t, err)
	require.True(t, date.Equal(parsed))

	_, err = ParseDate("22/Jul/2016")
	require.Error(t, err)
}
