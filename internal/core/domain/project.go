package domain

import "time"

// StaticIDPrefix marks projects served from the bundled fallback list.
const StaticIDPrefix = "static-"

// Project is a display record for the portfolio gallery.
type Project struct {
	ID               string     `json:"id" bson:"-" yaml:"-"`
	Name             string     `json:"name" bson:"name" yaml:"name"`
	ShortDescription string     `json:"short_description" bson:"short_description" yaml:"short_description"`
	Description      string     `json:"description" bson:"description" yaml:"description"`
	Type             string     `json:"type" bson:"type" yaml:"type"`
	Tags             []string   `json:"tags" bson:"tags" yaml:"tags"`
	Image            string     `json:"image" bson:"image" yaml:"image"`
	Video            string     `json:"video,omitempty" bson:"video,omitempty" yaml:"video,omitempty"`
	Link             string     `json:"link" bson:"link" yaml:"link"`
	SourceCodeLink   string     `json:"source_code_link,omitempty" bson:"source_code_link,omitempty" yaml:"source_code_link,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty" bson:"created_at,omitempty" yaml:"-"`
}
