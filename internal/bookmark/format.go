// Package bookmark reads and writes bookmark collections in the two common
// export formats: the flat JSON shape ({name, url} links nested under
// {name, children} folders) and the Netscape bookmark HTML produced by
// browser export dialogs.
package bookmark

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rojanmagar2001/tabtidy/internal/domain"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatNetscape Format = "netscape"
)

// Codec decodes a bookmark file into a tree and encodes a tree back out.
// Decoded trees satisfy the domain invariants: the root is a folder, links
// carry a non-empty URL and no children, folders carry no URL.
type Codec interface {
	Decode(r io.Reader) (*domain.Node, error)
	Encode(w io.Writer, root *domain.Node) error
}

// CodecFor returns the codec for a named format.
func CodecFor(f Format) (Codec, error) {
	switch f {
	case FormatJSON:
		return JSONCodec{}, nil
	case FormatNetscape:
		return NetscapeCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown bookmark format %q", f)
	}
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".html", ".htm":
		return FormatNetscape, nil
	default:
		return "", fmt.Errorf("cannot detect bookmark format from %q (use --format)", path)
	}
}
