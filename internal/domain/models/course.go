package models

import (
	"sort"
	"time"
)

// ResourceCategory names one of the three link collections every subject
// carries. The values double as Mongo field names and URL path segments,
// so they must stay lowercase and stable.
type ResourceCategory string

const (
	CategoryVideos       ResourceCategory = "videos"
	CategoryDocuments    ResourceCategory = "documents"
	CategoryApplications ResourceCategory = "applications"
)

// Categories lists every resource category in display order.
var Categories = []ResourceCategory{CategoryVideos, CategoryDocuments, CategoryApplications}

// IsValidCategory reports whether s names a known resource category.
func IsValidCategory(s string) bool {
	switch ResourceCategory(s) {
	case CategoryVideos, CategoryDocuments, CategoryApplications:
		return true
	}
	return false
}

// Resource is a titled link inside one subject's category collection.
// CreatedAt drives newest-first display ordering; resources written before
// timestamps existed have no CreatedAt and sort last.
type Resource struct {
	ID        string     `bson:"id" json:"id"`
	Title     string     `bson:"title" json:"title"`
	URL       string     `bson:"url" json:"url"`
	CreatedAt *time.Time `bson:"created_at,omitempty" json:"createdAt,omitempty"`
}

// Subject groups resources under a named topic within one grade.
type Subject struct {
	ID           string     `bson:"id" json:"id"`
	Title        string     `bson:"title" json:"title"`
	Videos       []Resource `bson:"videos" json:"videos"`
	Documents    []Resource `bson:"documents" json:"documents"`
	Applications []Resource `bson:"applications" json:"applications"`
}

// Category returns a pointer to the subject's collection for the given
// category, or nil for an unknown category.
func (s *Subject) Category(cat ResourceCategory) *[]Resource {
	switch cat {
	case CategoryVideos:
		return &s.Videos
	case CategoryDocuments:
		return &s.Documents
	case CategoryApplications:
		return &s.Applications
	}
	return nil
}

// GradeData is one grade's merged view: static display metadata plus the
// stored subject list.
type GradeData struct {
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Subjects    []Subject `bson:"subjects" json:"subjects"`
}

// CourseData is the whole curriculum keyed by grade slug. Readers may rely
// on every configured grade slug being present.
type CourseData map[string]GradeData

// Grade is a fixed curriculum level. The catalog is configuration, never
// created or destroyed at runtime.
type Grade struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Grades is the static grade catalog, in display order.
var Grades = []Grade{
	{Slug: "5-sinif", Name: "5. Sınıf", Description: "Ortaokulun ilk adımı için tüm konular."},
	{Slug: "6-sinif", Name: "6. Sınıf", Description: "Matematik temellerini sağlamlaştırın."},
	{Slug: "7-sinif", Name: "7. Sınıf", Description: "LGS öncesi kritik yılın konuları."},
	{Slug: "lgs", Name: "LGS Hazırlık", Description: "Liselere Geçiş Sınavı'na özel hazırlık."},
}

// GradeBySlug looks up a grade in the static catalog.
func GradeBySlug(slug string) (Grade, bool) {
	for _, g := range Grades {
		if g.Slug == slug {
			return g, true
		}
	}
	return Grade{}, false
}

// IsValidGrade reports whether slug names a configured grade.
func IsValidGrade(slug string) bool {
	_, ok := GradeBySlug(slug)
	return ok
}

// SortResourcesNewestFirst orders resources for display: newest creation
// time first, untimestamped resources after all timestamped ones. The sort
// is stable so equal timestamps keep their stored order.
func SortResourcesNewestFirst(rs []Resource) {
	sort.SliceStable(rs, func(i, j int) bool {
		a, b := rs[i].CreatedAt, rs[j].CreatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
