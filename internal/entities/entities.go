package entities

import (
	"time"
)

type TitleStatus string

const (
	TitleStatusOngoing   TitleStatus = "ongoing"
	TitleStatusCompleted TitleStatus = "completed"
	TitleStatusHiatus    TitleStatus = "hiatus"
)

// ValidTitleStatus reports whether s is one of the known title statuses.
func ValidTitleStatus(s TitleStatus) bool {
	switch s {
	case TitleStatusOngoing, TitleStatusCompleted, TitleStatusHiatus:
		return true
	}
	return false
}

type UserRole string

const (
	UserRoleReader     UserRole = "reader"
	UserRoleAuthor     UserRole = "author"
	UserRoleTranslator UserRole = "translator"
	UserRoleAdmin      UserRole = "admin"
)

// ValidUserRole reports whether r is one of the known roles.
func ValidUserRole(r UserRole) bool {
	switch r {
	case UserRoleReader, UserRoleAuthor, UserRoleTranslator, UserRoleAdmin:
		return true
	}
	return false
}

type Title struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	Title            string      `gorm:"index;size:255" json:"title"`
	Description      string      `gorm:"type:text" json:"description,omitempty"`
	CoverURL         string      `gorm:"size:2048" json:"cover_url,omitempty"`
	Status           TitleStatus `gorm:"size:20;default:'ongoing'" json:"status"`
	OriginalLanguage string      `gorm:"size:10" json:"original_language,omitempty"`
	CreatedBy        string      `gorm:"index;size:36" json:"created_by,omitempty"` // user profile uuid

	Versions []TitleVersion `gorm:"foreignKey:TitleID" json:"versions,omitempty"`
	Genres   []Genre        `gorm:"many2many:title_genres;" json:"genres,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Genre struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:100" json:"name"`
	Description string `gorm:"size:500" json:"description,omitempty"`

	Titles []Title `gorm:"many2many:title_genres;" json:"-"`
}

// TitleGenre is the join row between titles and genres. gorm manages it
// through the many2many association; it is declared so joins and counts
// can query it directly.
type TitleGenre struct {
	TitleID uint `gorm:"primaryKey" json:"title_id"`
	GenreID uint `gorm:"primaryKey" json:"genre_id"`
}

type TitleVersion struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	TitleID      uint   `gorm:"index" json:"title_id"`
	Language     string `gorm:"size:10" json:"language"`
	VersionName  string `gorm:"size:100" json:"version_name,omitempty"`
	TranslatedBy string `gorm:"size:36" json:"translated_by,omitempty"` // user profile uuid

	Title    *Title    `gorm:"foreignKey:TitleID" json:"title,omitempty"`
	Chapters []Chapter `gorm:"foreignKey:TitleVersionID" json:"chapters,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type Chapter struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	TitleVersionID uint    `gorm:"index:idx_chapter_version_number,unique" json:"title_version_id"`
	ChapterNumber  float64 `gorm:"index:idx_chapter_version_number,unique" json:"chapter_number"`
	Title          string  `gorm:"size:255" json:"title,omitempty"`

	TitleVersion *TitleVersion `gorm:"foreignKey:TitleVersionID" json:"title_version,omitempty"`
	Pages        []Page        `gorm:"foreignKey:ChapterID" json:"pages,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Page struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ChapterID  uint   `gorm:"index" json:"chapter_id"`
	PageNumber int    `gorm:"index" json:"page_number"`
	ImageURL   string `gorm:"size:2048" json:"image_url,omitempty"`
}

// UserProfile is keyed by the auth provider's account uuid, not an
// auto-increment integer.
type UserProfile struct {
	ID          string   `gorm:"primaryKey;size:36" json:"id"`
	Username    string   `gorm:"uniqueIndex;size:50" json:"username"`
	DisplayName string   `gorm:"size:100" json:"display_name,omitempty"`
	AvatarURL   string   `gorm:"size:2048" json:"avatar_url,omitempty"`
	Bio         string   `gorm:"size:500" json:"bio,omitempty"`
	Role        UserRole `gorm:"size:20;default:'reader'" json:"role"`
	IsActive    bool     `gorm:"default:true" json:"is_active"`
	JoinedAt    time.Time `json:"joined_at"`
}

// Account holds the credentials the auth provider verifies. Profiles
// reference it by uuid.
type Account struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records a dashboard mutation for the admin activity log.
type AuditEvent struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	ActorID    string      `gorm:"index;size:36" json:"actor_id,omitempty"`
	Action     string      `gorm:"index;size:50" json:"action"` // e.g. "title_create"
	EntityType string      `gorm:"size:20" json:"entity_type"`
	EntityID   string      `gorm:"size:36" json:"entity_id,omitempty"`
	Status     AuditStatus `gorm:"size:10;default:'success'" json:"status"`
	Detail     string      `gorm:"size:500" json:"detail,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (Title) TableName() string        { return "titles" }
func (Genre) TableName() string        { return "genres" }
func (TitleGenre) TableName() string   { return "title_genres" }
func (TitleVersion) TableName() string { return "title_versions" }
func (Chapter) TableName() string      { return "chapters" }
func (Page) TableName() string         { return "pages" }
func (UserProfile) TableName() string  { return "user_profiles" }
func (Account) TableName() string      { return "accounts" }
func (AuditEvent) TableName() string   { return "audit_events" }
