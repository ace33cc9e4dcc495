// Package listing turns flat request parameters into listing predicates for
// jobs, posts and users. Absent parameters never constrain; the sentinel
// value "all" is treated the same as absence where noted.
package listing

import (
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/entity"
)

// All is the "no constraint" sentinel accepted by location, jobType,
// experienceLevel and postType.
const All = "all"

// SplitList splits a comma list, trimming entries and dropping blanks.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return entity.CleanList(strings.Split(s, ","))
}

// withoutSentinel clears the exact lowercase "all"; "ALL" is a literal value.
func withoutSentinel(s string) string {
	s = strings.TrimSpace(s)
	if s == All {
		return ""
	}
	return s
}

// containsFold is a case-insensitive substring test.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// intersects reports whether any value of have appears in want.
func intersects(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

// JobQuery is the public job listing filter. Status is not a parameter:
// only active jobs are ever listed.
type JobQuery struct {
	Text            string
	Skills          []string
	Location        string
	JobType         entity.JobType
	ExperienceLevel entity.ExperienceLevel
}

// ParseJobQuery reads q, skills, location, jobType and experienceLevel.
func ParseJobQuery(v url.Values) JobQuery {
	return JobQuery{
		Text:            strings.TrimSpace(v.Get("q")),
		Skills:          SplitList(v.Get("skills")),
		Location:        withoutSentinel(v.Get("location")),
		JobType:         entity.JobType(withoutSentinel(v.Get("jobType"))),
		ExperienceLevel: entity.ExperienceLevel(withoutSentinel(v.Get("experienceLevel"))),
	}
}

// Matches evaluates the predicate against one job.
func (q JobQuery) Matches(j *entity.JobPosting) bool {
	if j.Status != entity.JobActive {
		return false
	}
	if q.Text != "" && !containsFold(j.Title, q.Text) && !containsFold(j.Description, q.Text) && !containsFold(j.Company, q.Text) {
		return false
	}
	if len(q.Skills) > 0 && !intersects(j.RequiredSkills, q.Skills) {
		return false
	}
	if q.Location != "" && !containsFold(j.Location, q.Location) {
		return false
	}
	if q.JobType != "" && j.JobType != q.JobType {
		return false
	}
	if q.ExperienceLevel != "" && j.ExperienceLevel != q.ExperienceLevel {
		return false
	}
	return true
}

// PostQuery filters the social feed. There is no text search on posts.
type PostQuery struct {
	Author   *primitive.ObjectID
	Tags     []string
	PostType entity.PostType
}

// ParsePostQuery reads tags and postType. Author is set by the caller.
func ParsePostQuery(v url.Values) PostQuery {
	return PostQuery{
		Tags:     SplitList(v.Get("tags")),
		PostType: entity.PostType(withoutSentinel(v.Get("postType"))),
	}
}

// Matches evaluates the predicate against one post.
func (q PostQuery) Matches(p *entity.SocialPost) bool {
	if q.Author != nil && p.AuthorID != *q.Author {
		return false
	}
	if len(q.Tags) > 0 && !intersects(p.Tags, q.Tags) {
		return false
	}
	if q.PostType != "" && p.PostType != q.PostType {
		return false
	}
	return true
}

// UserQuery backs the people search.
type UserQuery struct {
	Text   string
	Skills []string
}

// ParseUserQuery reads q and skills.
func ParseUserQuery(v url.Values) UserQuery {
	return UserQuery{
		Text:   strings.TrimSpace(v.Get("q")),
		Skills: SplitList(v.Get("skills")),
	}
}

// Matches evaluates the predicate against one user.
func (q UserQuery) Matches(u *entity.User) bool {
	if q.Text != "" && !containsFold(u.Name, q.Text) && !containsFold(u.Bio, q.Text) {
		return false
	}
	if len(q.Skills) > 0 && !intersects(u.Skills, q.Skills) {
		return false
	}
	return true
}
