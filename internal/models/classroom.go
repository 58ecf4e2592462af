package models

// ClassRoom represents a class group, optionally split into sections.
// The (name, section) pair is unique.
type ClassRoom struct {
	ID      int    `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Section string `db:"section" json:"section"`
}

// Label renders the human-readable classroom name, e.g. "Grade 5 - A".
func (c *ClassRoom) Label() string {
	if c.Section == "" {
		return c.Name
	}
	return c.Name + " - " + c.Section
}
