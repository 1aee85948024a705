package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentic-research/playmap/api"
	"github.com/agentic-research/playmap/internal/extract"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxComments bounds the review snippets kept from the detail page.
const maxComments = 5

var lineBreak = regexp.MustCompile(`(?i)<br\s*/?>`)

// DescriptionText turns the HTML description into plain text. Line breaks
// become "\n" before tags are stripped so paragraph structure survives.
func DescriptionText(raw any, ok bool) (any, error) {
	s, err := requireString(raw, ok)
	if err != nil {
		return nil, err
	}
	return htmlText(lineBreak.ReplaceAllString(s, "\n"))
}

func htmlText(fragment string) (string, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return "", fmt.Errorf("parse description: %w", err)
	}
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
	for _, n := range nodes {
		walk(n)
	}
	return b.String(), nil
}

// Histogram projects the sparse rating container (slots 1..5, each
// [_, count]) onto a star→count map. Absence gives all-zero buckets.
func Histogram(raw any, ok bool) (any, error) {
	h := api.Histogram{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	if !ok || !extract.Truthy(raw) {
		return h, nil
	}
	slots, isArr := raw.([]any)
	if !isArr {
		return nil, fmt.Errorf("histogram is %T, not an array", raw)
	}
	for star := 1; star <= 5; star++ {
		if star >= len(slots) {
			return nil, fmt.Errorf("histogram has no slot %d", star)
		}
		slot, isArr := slots[star].([]any)
		if !isArr {
			return nil, fmt.Errorf("histogram slot %d is %T, not an array", star, slots[star])
		}
		if len(slot) > 1 {
			h[star], _ = toInt(slot[1])
		}
	}
	return h, nil
}

// Comments keeps element 4 of each review container, dropping nulls, up to
// the first five in order. Non-null values are kept whatever their type.
func Comments(raw any, ok bool) (any, error) {
	out := []any{}
	if !ok {
		return out, nil
	}
	reviews, isArr := raw.([]any)
	if !isArr {
		return nil, fmt.Errorf("comments are %T, not an array", raw)
	}
	for _, r := range reviews {
		if len(out) == maxComments {
			break
		}
		if v, found := extract.Navigate(r, api.Rel(4)); found {
			out = append(out, v)
		}
	}
	return out, nil
}

// Features reads the nested feature list: element 2 holds
// [title, description-container] pairs.
func Features(raw any, ok bool) (any, error) {
	out := []api.Feature{}
	if !ok {
		return out, nil
	}
	list, found := extract.Navigate(raw, api.Rel(2))
	if !found {
		return out, nil
	}
	entries, isArr := list.([]any)
	if !isArr {
		return nil, fmt.Errorf("features are %T, not an array", list)
	}
	for _, e := range entries {
		var f api.Feature
		if title, found := extract.Navigate(e, api.Rel(0)); found {
			f.Title = fmt.Sprint(title)
		}
		if desc, found := extract.Navigate(e, api.Rel(1, 0, 0, 1)); found {
			f.Description = fmt.Sprint(desc)
		}
		out = append(out, f)
	}
	return out, nil
}

// Screenshots maps each image container to its URL at [3][2]. Absence gives
// an empty list; a container without a URL keeps its slot as "".
func Screenshots(raw any, ok bool) (any, error) {
	out := []string{}
	if !ok {
		return out, nil
	}
	images, isArr := raw.([]any)
	if !isArr {
		return nil, fmt.Errorf("screenshots are %T, not an array", raw)
	}
	for _, img := range images {
		v, _ := extract.Navigate(img, api.Rel(3, 2))
		s, _ := v.(string)
		out = append(out, s)
	}
	return out, nil
}
