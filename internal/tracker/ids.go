package tracker

import "github.com/google/uuid"

// habitIDPrefix keeps generated ids recognizably habit-shaped, matching the
// id form produced by earlier versions of the data files.
const habitIDPrefix = "h_"

// newHabitID returns a fresh collision-resistant habit id.
func newHabitID() string {
	return habitIDPrefix + uuid.NewString()
}
