package exchange

import (
	"github.com/beevik/etree"
)

// itemID is the server identity of an entity: the opaque id plus the
// optimistic-concurrency change key the server demands on every write.
type itemID struct {
	id        string
	changeKey string
}

func (i itemID) persisted() bool { return i.id != "" }

// parseIDAttrs reads the Id/ChangeKey attribute pair off an ItemId or
// FolderId element.
func parseIDAttrs(el *etree.Element) itemID {
	if el == nil {
		return itemID{}
	}
	return itemID{
		id:        el.SelectAttrValue("Id", ""),
		changeKey: el.SelectAttrValue("ChangeKey", ""),
	}
}

// wrapFragment copies an entity fragment out of a larger response into a
// fresh m:Items wrapper, so per-entity field specs can use the same paths
// for single-item responses and list results.
func wrapFragment(fragment *etree.Element) *etree.Element {
	wrapper := etree.NewElement("m:Items")
	wrapper.AddChild(fragment.Copy())
	return wrapper
}
