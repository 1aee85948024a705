package mappings

import (
	"github.com/agentic-research/playmap/api"
	t "github.com/agentic-research/playmap/internal/transform"
)

// BaseURL is the origin relative store links are resolved against.
const BaseURL = "https://play.google.com"

// ListGroups addresses the collection groups on a category page.
var ListGroups = api.At("ds:3", 0, 1)

// listItemFields builds the list-item shape rooted at prefix. The two known
// nestings differ only by one leading wrapper array.
func listItemFields(prefix ...int) map[string]api.FieldRule {
	p := func(steps ...int) api.Path {
		return api.Rel(append(append([]int(nil), prefix...), steps...)...)
	}
	orEmpty := t.IfAbsent("")
	return map[string]api.FieldRule{
		"appId":     {Path: p(0, 0), Transform: orEmpty},
		"title":     {Path: p(3), Transform: orEmpty},
		"url":       {Path: p(10, 4, 2), Transform: t.ResolveURL(BaseURL)},
		"icon":      {Path: p(1, 3, 2)},
		"developer": {Path: p(14)},
		"summary":   {Path: p(13, 1)},
		"scoreText": {Path: p(4, 0)},
		"score":     {Path: p(4, 1)},
	}
}

// ListItem is the version set for category list items. Upstream mixes both
// nestings in one response; the primary is kept only when it yields a title.
func ListItem() api.Versions {
	return api.Versions{
		Entity: EntityListItem,
		Specs: []api.MappingSpec{
			{Entity: EntityListItem, Version: "nested", Discriminator: "title", Fields: listItemFields(0)},
			{Entity: EntityListItem, Version: "flat", Fields: listItemFields()},
		},
	}
}

// ClusterItem is the single-version shape of items in older cluster lists
// (similar apps, developer pages).
func ClusterItem() api.Versions {
	price := api.Rel(7, 0, 3, 2, 1, 0, 2)
	return api.Versions{
		Entity: EntityClusterItem,
		Specs: []api.MappingSpec{{
			Entity:  EntityClusterItem,
			Version: "cluster",
			Fields: map[string]api.FieldRule{
				"title":       {Path: api.Rel(2)},
				"appId":       {Path: api.Rel(12, 0)},
				"url":         {Path: api.Rel(9, 4, 2), Transform: t.ResolveURL(BaseURL)},
				"icon":        {Path: api.Rel(1, 1, 0, 3, 2)},
				"developer":   {Path: api.Rel(4, 0, 0, 0)},
				"developerId": {Path: api.Rel(4, 0, 0, 1, 4, 2), Transform: t.DeveloperID("?id=")},
				"priceText":   {Path: price, Transform: t.IfAbsent("FREE")},
				"currency":    {Path: price, Transform: t.Currency},
				"price":       {Path: price, Transform: t.PriceFromText},
				"free":        {Path: price, Transform: t.FreeIfAbsent},
				"summary":     {Path: api.Rel(4, 1, 1, 1, 1)},
				"scoreText":   {Path: api.Rel(6, 0, 2, 1, 0)},
				"score":       {Path: api.Rel(6, 0, 2, 1, 1)},
			},
		}},
	}
}
