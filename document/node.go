package document

// Kind is the closed set of node types the extractor understands.
type Kind int

const (
	KindUnknown Kind = iota
	KindMainContainer
	KindSeasonSelector
	KindLineList
	KindVideoGuide
	KindFragment
)

var kindByType = map[string]Kind{
	"MainContainer":  KindMainContainer,
	"SeasonSelector": KindSeasonSelector,
	"LineList":       KindLineList,
	"video-guide":    KindVideoGuide,
	"Fragment":       KindFragment,
}

// KindOf maps an upstream type tag to its Kind.
func KindOf(typ string) Kind {
	if k, ok := kindByType[typ]; ok {
		return k
	}
	return KindUnknown
}

func (k Kind) String() string {
	for name, kind := range kindByType {
		if kind == k {
			return name
		}
	}
	return "Unknown"
}

// Node is a typed view over one element of the tree.
type Node struct {
	Type     string
	Kind     Kind
	Props    map[string]any
	Children []any
	raw      map[string]any
}

// AsNode views v as a Node. Missing props and children are empty.
func AsNode(v any) (Node, bool) {
	m := AsMap(v)
	if m == nil {
		return Node{}, false
	}
	typ := AsString(m["type"])
	props := AsMap(m["props"])
	if props == nil {
		props = map[string]any{}
	}
	return Node{
		Type:     typ,
		Kind:     KindOf(typ),
		Props:    props,
		Children: AsList(m["children"]),
		raw:      m,
	}, true
}

// Field returns the named key of the node itself ("children", "props",
// "filters", ...).
func (n Node) Field(name string) any {
	return n.raw[name]
}

// ExtractByType collects field from every node of the given kind. When the
// first match holds a list, that list is returned as is so callers can unwrap
// list-shaped containers; otherwise each match contributes one element.
// No match yields an empty result.
func ExtractByType(nodes []any, kind Kind, field string) []any {
	var found []any
	for _, raw := range nodes {
		n, ok := AsNode(raw)
		if !ok || n.Kind != kind {
			continue
		}
		found = append(found, n.Field(field))
	}
	if len(found) > 0 {
		if l, ok := found[0].([]any); ok {
			return l
		}
	}
	return found
}

// ExtractItems flattens LineList and Fragment containers into the cards they
// hold. Every LineList contributes its items followed by its loadMore
// descriptor, which is nil when absent; callers rely on the placeholder.
func ExtractItems(nodes []any) []*Card {
	var cards []*Card
	for _, raw := range nodes {
		n, ok := AsNode(raw)
		if !ok {
			continue
		}
		switch n.Kind {
		case KindLineList:
			for _, item := range AsList(n.Props["items"]) {
				cards = append(cards, DecodeCard(item))
			}
			cards = append(cards, DecodeCard(n.Props["loadMore"]))
		case KindFragment:
			cards = append(cards, ExtractItems(n.Children)...)
		}
	}
	return cards
}
