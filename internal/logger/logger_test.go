package logger

import (
	"bytes"
	"github.com/stretchr/testify/require"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLogger(t *testing.T) {
	t.Run("log request", func(t *testing.T) {
		access := new(bytes.Buffer)
		log := New(access, new(bytes.Buffer), false)
		date := time.Date(2016, time.July, 22, 13, 4, 5, 0, time.UTC)
		log.LogRequest("127.0.0.1", date, "GET /index.html HTTP/1.1", 200, 1337)
		require.Equal(t, "127.0.0.1 - - [22/Jul/2016:13:04:05 +0000] \"GET /index.html HTTP/1.1\" 200 1337\n", access.String())
	})

	t.Run("non-UTC date", func(t *testing.T) {
		access := new(bytes.Buffer)
		log := New(access, new(bytes.Buffer), false)
		date := time.Date(2016, time.July, 22, 15, 4, 5, 0, time.FixedZone("CEST", 2*60*60))
		log.LogRequest("::1", date, "HEAD / HTTP/1.1", 404, 0)
		require.Equal(t, "::1 - - [22/Jul/2016:13:04:05 +0000] \"HEAD / HTTP/1.1\" 404 0\n", access.String())
	})

	t.Run("printf", func(t *testing.T) {
		diag := new(bytes.Buffer)
		log := New(new(bytes.Buffer), diag, false)
		log.Printf("connection from %s", "127.0.0.1")
		log.Printf("already terminated\n")
		prefix := "[" + strconv.Itoa(os.Getpid()) + "] "
		require.Equal(t, prefix+"connection from 127.0.0.1\n"+prefix+"already terminated\n", diag.String())
	})

	t.Run("debug", func(t *testing.T) {
		diag := new(bytes.Buffer)
		New(new(bytes.Buffer), diag, false).Debugf("hidden")
		require.Empty(t, diag.String())

		log := New(new(bytes.Buffer), diag, true)
		require.True(t, log.Verbose())
		log.Debugf("shown")
		require.Contains(t, diag.String(), "shown\n")
	})

	t.Run("concurrent lines don't interleave", func(t *testing.T) {
		access := new(bytes.Buffer)
		log := New(access, access, true)
		wg := new(sync.WaitGroup)

		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				log.LogRequest("10.0.0."+strconv.Itoa(i), time.Now(), "GET / HTTP/1.1", 200, int64(i))
				log.Debugf("finished %d", i)
			}(i)
		}

		wg.Wait()
		lines := strings.Split(strings.TrimSuffix(access.String(), "\n"), "\n")
		require.Len(t, lines, 100)

		for _, line := range lines {
			require.True(t,
				strings.HasPrefix(line, "10.0.0.") || strings.Contains(line, "] finished "),
				line,
			)
		}
	})
}
