// Package models contains data structures for the application's domain models.
package models

import "time"

// dateLayout is the wire format for post dates.
const dateLayout = "2006-01-02"

// BlogPost represents a published blog post. Every post has exactly one
// author, set at creation and never changed. Deletes are hard deletes.
type BlogPost struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"size:150;not null" json:"title"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	GithubLink     string    `gorm:"size:255" json:"github_link"`
	LiveDeployLink string    `gorm:"size:255" json:"live_deploy_link"`
	PhotoFilename  string    `gorm:"size:255" json:"photo_filename"`
	CreationDate   time.Time `gorm:"not null" json:"creation_date"`
	LastUpdated    time.Time `gorm:"not null" json:"last_updated"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	// User is serialized so the author survives the JSON cache round-trip;
	// clients only ever receive the PostView projection.
	User User `gorm:"foreignKey:UserID" json:"user"`
}

// PostView is the response shape for a blog post. Dates render as
// YYYY-MM-DD strings.
type PostView struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	GithubLink     string `json:"github_link"`
	LiveDeployLink string `json:"live_deploy_link"`
	PhotoFilename  string `json:"photo_filename"`
	Author         string `json:"author,omitempty"`
	CreationDate   string `json:"creation_date"`
	LastUpdated    string `json:"last_updated"`
}

// View returns the client-facing representation of the post.
func (p *BlogPost) View() PostView {
	return PostView{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		GithubLink:     p.GithubLink,
		LiveDeployLink: p.LiveDeployLink,
		PhotoFilename:  p.PhotoFilename,
		Author:         p.User.Username,
		CreationDate:   p.CreationDate.Format(dateLayout),
		LastUpdated:    p.LastUpdated.Format(dateLayout),
	}
}

// PostViews maps a slice of posts to their client-facing representations.
// The result is never nil so an empty list serializes as [].
func PostViews(posts []*BlogPost) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, p.View())
	}
	return views
}
