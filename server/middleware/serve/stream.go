package serve

import (
	"context"
	"net/http"
	"os"

	"github.com/omalloc/prox/pkg/iobuf"
)

// stream writes [start, end) of f to w, reading via pool-bounded positional
// reads. Any mid-stream read error simply stops writing; the connection's
// own teardown handles the rest, since headers are already committed.
func stream(ctx context.Context, w http.ResponseWriter, pool *iobuf.Pool, f *os.File, start, end int64) {
	reader := iobuf.NewChunkReader(pool, f, start, end)
	flusher, _ := w.(http.Flusher)

	for chunk := range reader.Stream(ctx) {
		if chunk.Err != nil {
			return
		}
		if _, err := w.Write(chunk.Data); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}
