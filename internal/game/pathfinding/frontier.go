package pathfinding

// frontierEntry is a cell index queued with the distance it was pushed at.
// A cell may be queued several times; only the entry matching its final
// distance is expanded.
type frontierEntry struct {
	idx  int
	dist int
}

// frontier implements heap.Interface as a min-heap on dist
type frontier []frontierEntry

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].dist < f[j].dist }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(frontierEntry)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	x := old[n-1]
	*f = old[:n-1]
	return x
}
