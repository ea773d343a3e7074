package bookmark

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojanmagar2001/tabtidy/internal/domain"
)

const sampleJSON = `{
  "name": "Bookmarks",
  "children": [
    {
      "name": "F1",
      "children": [
        {"name": "A", "url": "https://good.example"},
        {"name": "B", "url": "https://dead.example"}
      ]
    },
    {"name": "F2", "children": []}
  ]
}`

func TestJSONCodec_Decode(t *testing.T) {
	root, err := JSONCodec{}.Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	assert.Equal(t, domain.KindFolder, root.Kind)
	assert.Equal(t, "Bookmarks", root.Name)
	require.Len(t, root.Children, 2)

	f1 := root.Children[0]
	assert.Equal(t, domain.KindFolder, f1.Kind)
	require.Len(t, f1.Children, 2)
	assert.Equal(t, domain.KindLink, f1.Children[0].Kind)
	assert.Equal(t, "https://good.example", f1.Children[0].URL)

	f2 := root.Children[1]
	assert.Equal(t, domain.KindFolder, f2.Kind)
	assert.Empty(t, f2.Children)
}

func TestJSONCodec_RoundTrip(t *testing.T) {
	root, err := JSONCodec{}.Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, JSONCodec{}.Encode(&buf, root))

	again, err := JSONCodec{}.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, root, again)
}

func TestJSONCodec_EmptyFolderKeepsChildrenKey(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONCodec{}.Encode(&buf, domain.NewFolder("F2")))
	assert.Contains(t, buf.String(), `"children": []`,
		"an empty folder must stay a folder on re-read")
}

func TestJSONCodec_RejectsRootLink(t *testing.T) {
	_, err := JSONCodec{}.Decode(strings.NewReader(`{"name":"A","url":"https://a.example"}`))
	assert.ErrorIs(t, err, domain.ErrRootNotFolder)
}

func TestJSONCodec_RejectsLinkWithChildren(t *testing.T) {
	in := `{"children":[{"name":"A","url":"https://a.example","children":[{"name":"B","url":"https://b.example"}]}]}`
	_, err := JSONCodec{}.Decode(strings.NewReader(in))
	assert.ErrorIs(t, err, domain.ErrLinkWithChildren)
}

func TestJSONCodec_DoesNotEscapeURLs(t *testing.T) {
	root := domain.NewFolder("", domain.NewLink("q", "https://example.com/?a=1&b=2"))

	var buf bytes.Buffer
	require.NoError(t, JSONCodec{}.Encode(&buf, root))
	assert.Contains(t, buf.String(), "a=1&b=2")
}
