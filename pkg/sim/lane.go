package sim

import "strconv"

// Lane is a tagged reference to the lane a vehicle occupies: either a
// regular lane identified by index, or the dedicated priority lane. The
// zero value is regular lane 0.
type Lane struct {
	priority bool
	index    int
}

// RegularLane references the regular lane with the given index.
func RegularLane(index int) Lane {
	return Lane{index: index}
}

// PriorityLane references the dedicated priority lane.
func PriorityLane() Lane {
	return Lane{priority: true}
}

// IsPriority reports whether this is the priority lane.
func (l Lane) IsPriority() bool {
	return l.priority
}

// Index returns the regular lane index. Only meaningful when IsPriority is
// false.
func (l Lane) Index() int {
	return l.index
}

// ColumnValue returns the integer used in exported tables: the regular lane
// index, or -1 for the priority lane.
func (l Lane) ColumnValue() int {
	if l.priority {
		return -1
	}
	return l.index
}

func (l Lane) String() string {
	if l.priority {
		return "priority"
	}
	return strconv.Itoa(l.index)
}
