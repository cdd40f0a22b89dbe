package model

// DefaultColor is the tag given to new notes when none is chosen.
const DefaultColor = "#3ea85a"

// Note is a single user-entered item attached to a date.
type Note struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// NoteRecord is the archived form of a note.
type NoteRecord struct {
	ID       uint   `gorm:"primaryKey"`
	Date     string `gorm:"index:idx_note_date_pos,priority:1"`
	Position int    `gorm:"index:idx_note_date_pos,priority:2"`
	NoteID   int
	Title    string
	Color    string
}
