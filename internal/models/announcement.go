package models

import "time"

// AnnouncementAudience defines who can see an announcement.
type AnnouncementAudience string

const (
	AnnouncementAudienceAll      AnnouncementAudience = "ALL"
	AnnouncementAudienceStaff    AnnouncementAudience = "STAFF"
	AnnouncementAudienceStudents AnnouncementAudience = "STUDENTS"
	AnnouncementAudienceAdmin    AnnouncementAudience = "ADMIN"
)

// Announcement represents a persisted announcement row.
type Announcement struct {
	ID        string               `db:"id" json:"id"`
	Title     string               `db:"title" json:"title"`
	Message   string               `db:"message" json:"message"`
	Audience  AnnouncementAudience `db:"audience" json:"audience"`
	Active    bool                 `db:"active" json:"active"`
	CreatedBy string               `db:"created_by" json:"created_by"`
	CreatedAt time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt time.Time            `db:"updated_at" json:"updated_at"`
}

// AudiencesForRole returns the audiences a role may read.
func AudiencesForRole(role UserRole) []AnnouncementAudience {
	switch role {
	case RoleHOD:
		return []AnnouncementAudience{AnnouncementAudienceAll, AnnouncementAudienceAdmin}
	case RoleStaff:
		return []AnnouncementAudience{AnnouncementAudienceAll, AnnouncementAudienceStaff}
	default:
		return []AnnouncementAudience{AnnouncementAudienceAll, AnnouncementAudienceStudents}
	}
}
