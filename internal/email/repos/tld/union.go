package tld

// Table is anything that answers label membership.
type Table interface {
	Contains(label string) bool
}

// union answers true when any member table knows the label.
type union []Table

// Union combines tables, skipping nils. A single table is returned as is.
func Union(tables ...Table) Table {
	var u union
	for _, t := range tables {
		if t != nil {
			u = append(u, t)
		}
	}
	if len(u) == 1 {
		return u[0]
	}
	return u
}

func (u union) Contains(label string) bool {
	for _, t := range u {
		if t.Contains(label) {
			return true
		}
	}
	return false
}
