package api

// Transform converts the value found at a FieldRule's Path into the exported
// field value. ok is false when nothing lives at the path (or the value is
// null); a transform must either return a safe default for that case or fail.
type Transform func(raw any, ok bool) (any, error)

// Identity passes the raw value through unchanged. Absence becomes nil.
func Identity(raw any, _ bool) (any, error) {
	return raw, nil
}

// FieldRule pairs an address with the transform applied to what is found there.
type FieldRule struct {
	Path Path
	// Transform defaults to Identity when nil.
	Transform Transform
}

// Apply runs the rule's transform over a navigated value.
func (r FieldRule) Apply(raw any, ok bool) (any, error) {
	if r.Transform == nil {
		return Identity(raw, ok)
	}
	return r.Transform(raw, ok)
}

// MappingSpec is the exported shape of one schema version of one entity.
type MappingSpec struct {
	// Entity names the logical record kind, e.g. "app".
	Entity string
	// Version identifies this shape within the entity's version set.
	Version string
	// Fields maps each output field name to its extraction rule.
	Fields map[string]FieldRule
	// Discriminator names the field whose truthiness decides whether this
	// version matched a list item. Empty for entities resolved by failure.
	Discriminator string
}

// FieldNames returns the declared output field names in no particular order.
func (s MappingSpec) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	return names
}

// Versions is the ordered set of MappingSpecs for one entity, tried in
// declared priority order.
type Versions struct {
	Entity string
	Specs  []MappingSpec
}

// Names returns the version identifiers in priority order.
func (v Versions) Names() []string {
	names := make([]string, len(v.Specs))
	for i, s := range v.Specs {
		names[i] = s.Version
	}
	return names
}
