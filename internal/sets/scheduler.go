package sets

// Pass is one full scan of the original file and the sets it writes.
type Pass struct {
	Number int
	Sets   []*SetSpec
}

// Files is the number of data files open during the pass.
func (p Pass) Files() int {
	return len(p.Sets)
}

// Schedule packs groups into passes of at most capacity data files. Groups
// are taken in order and each pass is filled before the next starts, which
// minimises the number of scans. A group is never split across passes.
func Schedule(groups []Group, capacity int) ([]Pass, error) {
	if capacity < 1 {
		return nil, &ResourceError{Capacity: capacity, Required: 1}
	}

	var (
		passes  []Pass
		current = Pass{Number: 1}
	)
	for _, g := range groups {
		if len(g) > capacity {
			return nil, &ResourceError{Capacity: capacity, Required: len(g)}
		}
		if current.Files()+len(g) > capacity {
			passes = append(passes, current)
			current = Pass{Number: current.Number + 1}
		}
		current.Sets = append(current.Sets, g...)
	}
	if current.Files() > 0 {
		passes = append(passes, current)
	}

	return passes, nil
}
