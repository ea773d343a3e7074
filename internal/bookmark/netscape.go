package bookmark

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/rojanmagar2001/tabtidy/internal/domain"
)

// NetscapeCodec handles the NETSCAPE-Bookmark-file-1 HTML format written by
// browser export dialogs: nested <DL> lists where <DT><H3> opens a folder
// and <DT><A HREF=...> is a link.
type NetscapeCodec struct{}

func (NetscapeCodec) Decode(r io.Reader) (*domain.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse bookmark html: %w", err)
	}

	root := domain.NewFolder("")
	if title := findElement(doc, "h1"); title != nil {
		root.Name = nodeText(title)
	}
	if dl := findElement(doc, "dl"); dl != nil {
		parseList(dl, root)
	}
	return root, nil
}

// parseList appends the entries of one <dl> to folder. Browser exports leave
// <dt> unclosed, so the parser may hang a subfolder's <dl> either inside the
// <dt> that holds its <h3> or directly under the outer list; both layouts
// are handled.
func parseList(dl *html.Node, folder *domain.Node) {
	var lastFolder *domain.Node
	for c := dl.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "dt":
			lastFolder = parseEntry(c, folder)
		case "dl":
			if lastFolder != nil {
				parseList(c, lastFolder)
				lastFolder = nil
			} else {
				parseList(c, folder)
			}
		}
	}
}

// parseEntry handles one <dt>. It returns the subfolder opened by an <h3>,
// if any, so a trailing sibling <dl> can be attached to it.
func parseEntry(dt *html.Node, folder *domain.Node) *domain.Node {
	var opened *domain.Node
	for e := dt.FirstChild; e != nil; e = e.NextSibling {
		if e.Type != html.ElementNode {
			continue
		}
		switch e.Data {
		case "a":
			href := strings.TrimSpace(attrValue(e, "href"))
			if href == "" {
				continue
			}
			folder.Children = append(folder.Children, domain.NewLink(nodeText(e), href))
		case "h3":
			opened = domain.NewFolder(nodeText(e))
			folder.Children = append(folder.Children, opened)
		case "dl":
			if opened != nil {
				parseList(e, opened)
				opened = nil
			} else {
				parseList(e, folder)
			}
		case "dt":
			// The parser nests sibling entries when tags are left open.
			if sub := parseEntry(e, folder); sub != nil {
				opened = sub
			}
		}
	}
	return opened
}

func (NetscapeCodec) Encode(w io.Writer, root *domain.Node) error {
	bw := bufio.NewWriter(w)

	title := root.Name
	if title == "" {
		title = "Bookmarks"
	}
	fmt.Fprintln(bw, "<!DOCTYPE NETSCAPE-Bookmark-file-1>")
	fmt.Fprintln(bw, `<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">`)
	fmt.Fprintf(bw, "<TITLE>%s</TITLE>\n", html.EscapeString(title))
	fmt.Fprintf(bw, "<H1>%s</H1>\n", html.EscapeString(title))

	writeList(bw, root, 0)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("encode bookmark html: %w", err)
	}
	return nil
}

func writeList(w *bufio.Writer, folder *domain.Node, depth int) {
	indent := strings.Repeat("    ", depth)
	fmt.Fprintf(w, "%s<DL><p>\n", indent)
	for _, c := range folder.Children {
		if c.IsLink() {
			fmt.Fprintf(w, "%s    <DT><A HREF=\"%s\">%s</A>\n",
				indent, html.EscapeString(c.URL), html.EscapeString(c.Name))
			continue
		}
		fmt.Fprintf(w, "%s    <DT><H3>%s</H3>\n", indent, html.EscapeString(c.Name))
		writeList(w, c, depth+1)
	}
	fmt.Fprintf(w, "%s</DL><p>\n", indent)
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
