package features

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	siteerrors "github.com/crabby-lang/website/internal/errors"
)

// File is the on-disk layout of a features document:
//
//	features:
//	  - title: Simplicity
//	    icon: img/crabbylogo.svg
//	    description: Crabby is designed with simplicity in mind.
type File struct {
	Features List `yaml:"features"`
}

// Parse decodes a features document. An empty document or an empty
// sequence yields an empty list.
func Parse(r io.Reader) (List, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, siteerrors.NewIOError(siteerrors.CodeFeatureFile, "reading features", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return List{}, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, siteerrors.NewValidationError(siteerrors.CodeFeatureParse,
			fmt.Sprintf("decoding features: %v", err))
	}

	list := make(List, len(f.Features))
	for i, d := range f.Features {
		list[i] = normalize(d)
	}
	return list, nil
}

// LoadFile reads and parses a features document from disk.
func LoadFile(path string) (List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, siteerrors.NewIOError(siteerrors.CodeFeatureFile, "opening features file", err).WithPath(path)
	}
	defer f.Close()

	list, err := Parse(f)
	if err != nil {
		var se *siteerrors.SiteError
		if errors.As(err, &se) && se.Path == "" {
			se.WithPath(path)
		}
		return nil, err
	}
	return list, nil
}

// LoadOrDefault loads path, or returns Default when path is empty.
func LoadOrDefault(path string) (List, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

func normalize(d Descriptor) Descriptor {
	return Descriptor{
		Title:       norm.NFC.String(strings.TrimSpace(d.Title)),
		Icon:        strings.TrimSpace(d.Icon),
		Description: norm.NFC.String(strings.TrimSpace(d.Description)),
	}
}
