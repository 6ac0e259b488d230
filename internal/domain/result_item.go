package domain

import "sort"

// Property names used in ResultItem.Properties.
const (
	PropertyMail        = "Mail"
	PropertyDescription = "Description"
	PropertyCreated     = "Created"
	PropertyVisibility  = "Visibility"
	PropertyGroupTypes  = "Group types"
	PropertyObjectType  = "Object type"
	PropertyUpdated     = "Updated"
	PropertyDeleted     = "Deleted"
)

// ResultItem is one displayable directory object.
type ResultItem struct {
	// ID is the directory object id, used to build follow-up links.
	ID string
	// Display is the human readable label, usually the display name.
	Display string
	// Properties holds additional labeled values. Empty values are never stored.
	Properties map[string]string
}

// NewResultItem creates an item without properties.
func NewResultItem(id, display string) ResultItem {
	return ResultItem{ID: id, Display: display}
}

// SetProperty records name=value, skipping empty values.
func (i *ResultItem) SetProperty(name, value string) {
	if value == "" {
		return
	}
	if i.Properties == nil {
		i.Properties = make(map[string]string)
	}
	i.Properties[name] = value
}

// PropertyNames returns the property names in lexical order.
func (i ResultItem) PropertyNames() []string {
	names := make([]string, 0, len(i.Properties))
	for name := range i.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
