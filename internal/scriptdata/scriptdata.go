// Package scriptdata rebuilds the addressable raw tree from a store page.
//
// The page embeds its data as AF_initDataCallback({key: 'ds:N', data: [...]})
// script blocks, one per backend call, plus an AF_dataServiceRequests table
// mapping each data-source id to the service-request id that produced it.
package scriptdata

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ohler55/ojg/oj"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed page. It is read-only once returned.
type Document struct {
	// Data holds each callback payload by data-source id.
	Data map[string]any
	// ServiceRequests maps service-request id to data-source id.
	ServiceRequests map[string]string
}

// Partition resolves key as a data-source id first, then as a
// service-request id.
func (d *Document) Partition(key string) (any, bool) {
	if v, ok := d.Data[key]; ok {
		return v, true
	}
	if ds, ok := d.ServiceRequests[key]; ok {
		v, ok := d.Data[ds]
		return v, ok
	}
	return nil, false
}

var (
	callbackKey  = regexp.MustCompile(`key:\s*'(ds:[^']*)'`)
	callbackData = regexp.MustCompile(`(?s)data:(.*?), sideChannel: \{\}\}\);?`)
	serviceEntry = regexp.MustCompile(`'(ds:\d+)'\s*:\s*\{\s*id:\s*'([^']+)'`)
)

// Parse reads an HTML page and collects every data callback and the service
// request table. A page without any callbacks yields an empty Document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc := &Document{
		Data:            make(map[string]any),
		ServiceRequests: make(map[string]string),
	}
	for _, script := range scripts(root) {
		// The service table script also declares AF_initDataCallback, so
		// both checks run.
		if strings.Contains(script, "AF_dataServiceRequests") {
			for _, m := range serviceEntry.FindAllStringSubmatch(script, -1) {
				doc.ServiceRequests[m[2]] = m[1]
			}
		}
		if strings.Contains(script, "AF_initDataCallback") {
			if err := doc.addCallback(script); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

// ParseString is Parse over an in-memory page.
func ParseString(page string) (*Document, error) {
	return Parse(strings.NewReader(page))
}

func (d *Document) addCallback(script string) error {
	key := callbackKey.FindStringSubmatch(script)
	data := callbackData.FindStringSubmatch(script)
	if key == nil || data == nil {
		return nil
	}
	v, err := oj.ParseString(data[1])
	if err != nil {
		return fmt.Errorf("decode %s payload: %w", key[1], err)
	}
	d.Data[key[1]] = v
	return nil
}

func scripts(root *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script {
			var b strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
				}
			}
			out = append(out, b.String())
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// Encode serializes the document as JSON for storage.
func (d *Document) Encode() string {
	services := make(map[string]any, len(d.ServiceRequests))
	for k, v := range d.ServiceRequests {
		services[k] = v
	}
	return oj.JSON(map[string]any{
		"data":            d.Data,
		"serviceRequests": services,
	})
}

// Decode reads a document written by Encode. A bare JSON object without a
// "data" member is taken as the data map itself.
func Decode(s string) (*Document, error) {
	v, err := oj.ParseString(s)
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode document: top level is %T, not an object", v)
	}
	doc := &Document{ServiceRequests: make(map[string]string)}
	data, hasData := obj["data"].(map[string]any)
	if !hasData {
		doc.Data = obj
		return doc, nil
	}
	doc.Data = data
	if services, ok := obj["serviceRequests"].(map[string]any); ok {
		for k, v := range services {
			if s, ok := v.(string); ok {
				doc.ServiceRequests[k] = s
			}
		}
	}
	return doc, nil
}
