package ldcontext

// Model is implemented by types that can be serialized to a plain JSON object.
// SerializedAttributes returns the object's members in declaration order;
// attribute names must be unique.
type Model interface {
	SerializedAttributes() Attributes
}

// Attribute is a single named member of a serialized model.
type Attribute struct {
	Name  string
	Value any
}

// Attributes is an ordered list of serialized model members.
type Attributes []Attribute

// Names returns the attribute names in order.
func (a Attributes) Names() []string {
	names := make([]string, len(a))
	for i, attr := range a {
		names[i] = attr.Name
	}
	return names
}

// Get returns the value of the named attribute.
func (a Attributes) Get(name string) (any, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return nil, false
}

// Without returns a copy of a with the named attribute removed.
func (a Attributes) Without(name string) Attributes {
	out := make(Attributes, 0, len(a))
	for _, attr := range a {
		if attr.Name != name {
			out = append(out, attr)
		}
	}
	return out
}

// Map returns the attributes as an unordered map.
func (a Attributes) Map() map[string]any {
	m := make(map[string]any, len(a))
	for _, attr := range a {
		m[attr.Name] = attr.Value
	}
	return m
}
