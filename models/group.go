package models

// Group is a topic posts can be published into, addressed by its unique slug.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"size:500" json:"description"`
}

func (g Group) String() string { return g.Title }
