// Package assets resolves static graphic references (such as the feature
// card icons) to their contents. The default loader serves the graphics
// embedded in the binary; DirLoader reads them from a directory instead.
package assets

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"

	siteerrors "github.com/crabby-lang/website/internal/errors"
)

// sitePrefixes are stripped from references so that paths written for the
// site generator ("@site/static/img/x.svg") resolve here as "img/x.svg".
var sitePrefixes = []string{"@site/static/", "/static/", "static/", "/"}

// Loader resolves an asset reference to its bytes.
type Loader interface {
	Open(ref string) ([]byte, error)
}

// FSLoader resolves references against an fs.FS.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader returns a loader over fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// Embedded returns a loader over the graphics compiled into the binary.
func Embedded() *FSLoader {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic("assets: embedded static directory missing: " + err.Error())
	}
	return NewFSLoader(sub)
}

// DirLoader returns a loader over an on-disk directory.
func DirLoader(dir string) *FSLoader {
	return NewFSLoader(os.DirFS(dir))
}

// FS exposes the underlying file system, e.g. for http.FileServerFS.
func (l *FSLoader) FS() fs.FS {
	return l.fsys
}

// Open implements Loader.
func (l *FSLoader) Open(ref string) ([]byte, error) {
	name, err := Clean(ref)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, siteerrors.NewAssetError(siteerrors.CodeAssetNotFound, "asset not found", err).WithPath(ref)
		}
		return nil, siteerrors.NewAssetError(siteerrors.CodeAssetInvalid, "reading asset", err).WithPath(ref)
	}
	return data, nil
}

// Clean turns a reference into an fs.FS path.
func Clean(ref string) (string, error) {
	name := strings.TrimSpace(ref)
	for _, prefix := range sitePrefixes {
		if strings.HasPrefix(name, prefix) {
			name = strings.TrimPrefix(name, prefix)
			break
		}
	}
	name = path.Clean(name)

	if name == "." || name == "" || !fs.ValidPath(name) {
		return "", siteerrors.NewAssetError(siteerrors.CodeAssetInvalid, "invalid asset reference", nil).WithPath(ref)
	}
	return name, nil
}
