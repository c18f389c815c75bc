package scribe

// Only returns a PropertyFilter that emits the named properties and
// suppresses everything else.
func Only(names ...string) PropertyFilter {
	f := make(nameSet, len(names))
	for _, n := range names {
		f[n] = struct{}{}
	}
	return onlyFilter{f}
}

// Except returns a PropertyFilter that suppresses the named properties
// and emits everything else.
func Except(names ...string) PropertyFilter {
	f := make(nameSet, len(names))
	for _, n := range names {
		f[n] = struct{}{}
	}
	return exceptFilter{f}
}

type nameSet map[string]struct{}

type onlyFilter struct{ names nameSet }

func (f onlyFilter) Include(name string) bool {
	_, ok := f.names[name]
	return ok
}

type exceptFilter struct{ names nameSet }

func (f exceptFilter) Include(name string) bool {
	_, ok := f.names[name]
	return !ok
}
