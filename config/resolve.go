package config

// Resolve merges the three sources into a total option set. Precedence per
// option is explicit > environment > structured > descriptor default, and is
// not configurable.
//
// Resolution short-circuits per option, not globally: the first source in
// precedence order that supplied a value decides that option, and its parse
// error (if any) is returned. Malformed values in sources below an
// already-resolved layer are never evaluated.
func Resolve(opts Options, environment, structured PartialSet) (*Resolved, error) {
	layers := []PartialSet{ExplicitSet(opts), environment, structured}

	resolved := &Resolved{}
	for _, d := range descriptors {
		value := d.Default
		for _, layer := range layers {
			e, ok := layer.lookup(d.Name)
			if !ok {
				continue
			}
			if e.err != nil {
				return nil, e.err
			}
			value = e.value
			break
		}
		d.assign(resolved, value)
	}
	return resolved, nil
}
