package core

// Exam is the single record type the harness persists.
//
// IsEdited and IsDeleted are 0/1 flags captured from the operator but never
// applied as filters anywhere in this program.
type Exam struct {
	Id        uint64  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	IsEdited  uint16  `json:"is_edited"`
	IsDeleted uint16  `json:"is_deleted"`
}
