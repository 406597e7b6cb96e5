package serve

import (
	"os"

	xhttp "github.com/omalloc/prox/pkg/x/http"
)

// entity is the handle to a file-backed response body: everything the
// conditional-GET and range logic needs, read once from the open file's
// metadata.
type entity struct {
	inode        uint64
	length       int64
	mtime        int64 // milliseconds since epoch
	contentType  string
	compressible bool
}

func newEntity(info os.FileInfo, path string) entity {
	contentType, compressible := xhttp.GuessContentType(path)
	return entity{
		inode:        xhttp.Inode(info),
		length:       info.Size(),
		mtime:        info.ModTime().UnixMilli(),
		contentType:  contentType,
		compressible: compressible,
	}
}

func (e entity) etag() xhttp.ETag {
	return xhttp.NewEntityTag(e.inode, uint64(e.length), e.mtime)
}
