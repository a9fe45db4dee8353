package pathfind

// side tags which end of the search a frontier grows from.
type side int

const (
	startSide side = iota
	endSide
)

func (s side) String() string {
	if s == endSide {
		return "end"
	}

	return "start"
}

// frontier holds one generation of partial paths of one side, grouped by
// the node they end at. Every path in a frontier has the same length.
type frontier struct {
	side  side
	depth int
	order []string
	paths map[string][]*Path
	size  int
}

func newFrontier(s side, root string) *frontier {
	f := &frontier{side: s, paths: make(map[string][]*Path, 1)}
	f.add(NewPath(root))

	return f
}

func (f *frontier) add(p *Path) {
	node := p.End()
	if _, ok := f.paths[node]; !ok {
		f.order = append(f.order, node)
	}

	f.paths[node] = append(f.paths[node], p)
	f.size++
}

// at returns the partial paths ending at node.
func (f *frontier) at(node string) []*Path {
	return f.paths[node]
}

// each visits partial paths in insertion order of their end nodes. It stops
// early when fn returns false.
func (f *frontier) each(fn func(*Path) bool) {
	for _, node := range f.order {
		for _, p := range f.paths[node] {
			if !fn(p) {
				return
			}
		}
	}
}

// flatten lists the partial paths in the order each visits them.
func (f *frontier) flatten() []*Path {
	out := make([]*Path, 0, f.size)
	f.each(func(p *Path) bool {
		out = append(out, p)

		return true
	})

	return out
}
