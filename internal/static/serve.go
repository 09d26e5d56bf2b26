package static

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Brownie44l1/simplehttp/internal/headers"
	"github.com/Brownie44l1/simplehttp/internal/response"
)

// ErrShortFile is returned when a file shrinks while it is being sent.
var ErrShortFile = errors.New("file shorter than announced length")

// Server serves files from one root directory.
type Server struct {
	root       string
	indexFiles []string
	mimeTypes  map[string]string
}

// New creates a Server for root. root is made absolute so that resolved
// paths are absolute too.
func New(root string, mimeTypes map[string]string, indexFiles []string) (*Server, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("static root %q: %w", root, err)
	}

	return &Server{
		root:       abs,
		indexFiles: append([]string(nil), indexFiles...),
		mimeTypes:  mimeTypes,
	}, nil
}

func (s *Server) Root() string {
	return s.root
}

// Resolve resolves relPath below the server root.
func (s *Server) Resolve(relPath string) Result {
	return Resolve(s.root, relPath, s.indexFiles)
}

// Serve streams the file of a found Result. If an error is returned and
// w.Started() is false nothing has been sent and the caller may still
// answer with an error status.
func (s *Server) Serve(w *response.Writer, res Result) error {
	f, err := os.Open(res.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", res.Path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", res.Path, err)
	}

	size := info.Size()

	h := headers.NewHeaders()
	h.Set("Content-Type", ContentType(res.Path, s.mimeTypes))
	h.Set("Content-Length", strconv.FormatInt(size, 10))
	h.Set("Last-Modified", response.FormatDate(info.ModTime()))

	if err := w.WriteStatusLine(response.StatusOK); err != nil {
		return err
	}
	if err := w.WriteHeaders(h); err != nil {
		return err
	}

	buf := getChunk()
	defer putChunk(buf)

	var sent int64
	body := io.LimitReader(f, size)
	for {
		n, rerr := body.Read(*buf)
		if n > 0 {
			if err := w.WriteBody((*buf)[:n]); err != nil {
				return err
			}
			sent += int64(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("read %s: %w", res.Path, rerr)
		}
	}

	if sent < size {
		return fmt.Errorf("%s: %w", res.Path, ErrShortFile)
	}

	return nil
}
