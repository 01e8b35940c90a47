package menu

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FoodPro embeds each menu category as an HTML fragment:
//
//	<h2 class="menu_category_name">Grill</h2>
//	<ul><li class="lightbox-nutrition"><a data-calories="230" ...>Burger</a></li></ul>
//
// ExpandHTML walks a decoded FoodPro response and replaces every such fragment
// with structured items so the result can be fed to Normalize.

// ExpandHTML returns a copy of v in which every string that looks like an HTML
// menu fragment is replaced by {title: [items]} (or [items] when the fragment
// has no heading).
func ExpandHTML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = ExpandHTML(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = ExpandHTML(child)
		}
		return out
	case string:
		if !looksLikeHTML(val) {
			return val
		}
		title, items := ParseCategoryHTML(val)
		if title != "" {
			return map[string]any{title: items}
		}
		return items
	default:
		return v
	}
}

// ParseCategoryHTML extracts the category title and dish items of one fragment.
func ParseCategoryHTML(fragment string) (string, []any) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return "", []any{}
	}

	var title string
	var heading string
	items := []any{}
	var plain []any

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.H2:
				text := textOf(n)
				if hasClass(n, "menu_category_name") && title == "" {
					title = text
				} else if heading == "" {
					heading = text
				}
			case atom.Li:
				if hasClass(n, "lightbox-nutrition") {
					items = append(items, dishFromLi(n))
					return
				}
				if text := textOf(n); text != "" {
					plain = append(plain, map[string]any{"name": text})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}

	if title == "" {
		title = heading
	}
	if len(items) == 0 && len(plain) > 0 {
		items = plain
	}
	return title, items
}

func dishFromLi(li *html.Node) map[string]any {
	a := findFirst(li, atom.A)
	var dish map[string]any
	if a == nil {
		dish = map[string]any{"name": textOf(li)}
	} else {
		attrs := map[string]any{}
		for _, at := range a.Attr {
			if strings.HasPrefix(at.Key, "data-") {
				attrs[at.Key] = at.Val
			}
		}
		get := func(keys ...string) string {
			for _, k := range keys {
				if s, ok := attrs[k].(string); ok && s != "" {
					return strings.TrimSpace(s)
				}
			}
			return ""
		}
		dish = map[string]any{
			"name":           textOf(a),
			"dish_name_attr": get("data-dish-name", "data-dishname"),
			"allergens":      get("data-allergens"),
			"ingredients":    get("data-ingredient-list"),
			"clean_diet":     get("data-clean-diet-str"),
			"serving_size":   get("data-serving-size"),
			"calories":       safeNumber(get(AttrCalories)),
			"healthfulness":  get("data-healthfulness"),
			"carbon":         get("data-carbon-list"),
			"recipe_webcode": get("data-recipe-webcode"),
			"raw_attrs":      attrs,
		}
	}

	var icons []any
	collect(li, atom.Img, func(img *html.Node) {
		icons = append(icons, map[string]any{"src": attr(img, "src"), "alt": attr(img, "alt")})
	})
	if len(icons) > 0 {
		dish["icons"] = icons
	}
	return dish
}

// safeNumber mirrors FoodPro's integer calories; unparseable values become nil.
func safeNumber(s string) any {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return float64(int64(f))
}

func looksLikeHTML(s string) bool {
	return strings.Contains(s, "<li") || strings.Contains(s, "<h2") || strings.Contains(s, "<ul")
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func collect(n *html.Node, a atom.Atom, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			fn(c)
		}
		collect(c, a, fn)
	}
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
