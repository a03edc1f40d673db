package models

import "time"

// PreviewTextLength bounds the text shown by Post.String.
const PreviewTextLength = 15

// Post is a blog entry, optionally published into a group.
// GroupID becomes nil when the group is deleted; the post itself survives.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index;autoCreateTime" json:"created_at"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"author"`
	GroupID   *uint     `gorm:"index" json:"group_id"`
	Group     *Group    `gorm:"constraint:OnDelete:SET NULL;" json:"group,omitempty"`
	Image     string    `gorm:"size:512" json:"image,omitempty"`
	Comments  []Comment `gorm:"constraint:OnDelete:CASCADE;" json:"comments,omitempty"`
}

func (p Post) String() string {
	r := []rune(p.Text)
	if len(r) > PreviewTextLength {
		r = r[:PreviewTextLength]
	}
	return string(r)
}
