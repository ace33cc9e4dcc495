package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostType string

const (
	PostUpdate      PostType = "update"
	PostAchievement PostType = "achievement"
	PostArticle     PostType = "article"
	PostQuestion    PostType = "question"
	PostCelebration PostType = "celebration"
)

func (t PostType) Valid() bool {
	switch t {
	case PostUpdate, PostAchievement, PostArticle, PostQuestion, PostCelebration:
		return true
	}
	return false
}

const (
	MaxPostLength    = 1000
	MaxCommentLength = 500
)

// Like is toggled, never accumulated: one per user per post.
type Like struct {
	UserID  primitive.ObjectID `bson:"user" json:"-"`
	User    *UserSummary       `bson:"-" json:"user"`
	LikedAt time.Time          `bson:"likedAt" json:"likedAt"`
}

// Comment is append-only.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	UserID    primitive.ObjectID `bson:"user" json:"-"`
	User      *UserSummary       `bson:"-" json:"user"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type SocialPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Content   string             `bson:"content" json:"content"`
	AuthorID  primitive.ObjectID `bson:"author" json:"-"`
	Author    *UserSummary       `bson:"-" json:"author"`
	PostType  PostType           `bson:"postType" json:"postType"`
	Tags      []string           `bson:"tags" json:"tags"`
	Image     string             `bson:"image" json:"image"`
	Likes     []Like             `bson:"likes" json:"likes"`
	Comments  []Comment          `bson:"comments" json:"comments"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LikedBy reports whether userID currently likes the post.
func (p *SocialPost) LikedBy(userID primitive.ObjectID) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}
