package entity

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExperienceLevel is shared by user profiles and job postings.
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceJunior    ExperienceLevel = "junior"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceLead      ExperienceLevel = "lead"
	ExperienceExecutive ExperienceLevel = "executive"
)

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceEntry, ExperienceJunior, ExperienceMid, ExperienceSenior, ExperienceLead, ExperienceExecutive:
		return true
	}
	return false
}

const MaxBioLength = 500

// User is the aggregate root for accounts.
// Password holds a bcrypt hash and is never serialized to JSON.
// WalletAddress is omitted from storage when empty so the sparse unique index
// never sees two empty values.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password,omitempty" json:"-"`
	WalletAddress string             `bson:"walletAddress,omitempty" json:"walletAddress,omitempty"`
	Bio           string             `bson:"bio" json:"bio"`
	LinkedinURL   string             `bson:"linkedinUrl" json:"linkedinUrl"`
	Skills        []string           `bson:"skills" json:"skills"`
	ProfileImage  string             `bson:"profileImage" json:"profileImage"`
	Location      string             `bson:"location" json:"location"`
	Experience    ExperienceLevel    `bson:"experience" json:"experience"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the display-safe view used wherever another document
// references a user.
type UserSummary struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	Name   string             `bson:"name" json:"name"`
	Email  string             `bson:"email" json:"email"`
	Bio    string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills []string           `bson:"skills,omitempty" json:"skills,omitempty"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Bio: u.Bio, Skills: u.Skills}
}

// ProfileUpdate carries optional profile changes; nil means unchanged.
// An empty WalletAddress removes the wallet.
type ProfileUpdate struct {
	Name          *string
	Bio           *string
	LinkedinURL   *string
	Skills        []string
	WalletAddress *string
	Location      *string
	Experience    *ExperienceLevel
	ProfileImage  *string
}

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CleanList trims every entry and drops blanks.
func CleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
