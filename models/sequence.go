package models

// DocumentSequence allocates monotonically increasing numbers per scope.
// Scopes are invoice series ("B001", "F001") and reservation days
// ("RES-250831"). Rows are read and bumped under SELECT ... FOR UPDATE so
// concurrent allocations never hand out the same value.
type DocumentSequence struct {
	Scope     string `gorm:"primary_key"`
	NextValue int64  `gorm:"not null;default:1"`
}
