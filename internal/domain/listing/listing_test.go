package listing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/entity"
)

func TestParseJobQuery(t *testing.T) {
	q := ParseJobQuery(url.Values{
		"q":               {"  golang "},
		"skills":          {"go, ,k8s,"},
		"location":        {"all"},
		"jobType":         {"contract"},
		"experienceLevel": {" all "},
	})
	assert.Equal(t, JobQuery{Text: "golang", Skills: []string{"go", "k8s"}, JobType: entity.JobContract}, q)
	assert.Equal(t, JobQuery{}, ParseJobQuery(url.Values{}))
}

func TestSentinelIsLowercaseOnly(t *testing.T) {
	q := ParseJobQuery(url.Values{"location": {"ALL"}, "jobType": {"All"}})
	assert.Equal(t, "ALL", q.Location)
	assert.Equal(t, entity.JobType("All"), q.JobType)
	assert.False(t, q.Matches(job()))
}

func job() *entity.JobPosting {
	return &entity.JobPosting{
		Title:           "Senior Go Engineer",
		Description:     "APIs and services",
		Company:         "Acme",
		RequiredSkills:  []string{"go", "postgres"},
		Location:        "Berlin, Germany",
		JobType:         entity.JobFullTime,
		ExperienceLevel: entity.ExperienceSenior,
		Status:          entity.JobActive,
	}
}

func TestJobQueryMatches(t *testing.T) {
	tests := []struct {
		name string
		q    JobQuery
		mod  func(*entity.JobPosting)
		want bool
	}{
		{"empty query matches active", JobQuery{}, nil, true},
		{"closed never listed", JobQuery{}, func(j *entity.JobPosting) { j.Status = entity.JobClosed }, false},
		{"text in title any case", JobQuery{Text: "go engineer"}, nil, true},
		{"text in company", JobQuery{Text: "acme"}, nil, true},
		{"text nowhere", JobQuery{Text: "rust"}, nil, false},
		{"skills intersect", JobQuery{Skills: []string{"rust", "go"}}, nil, true},
		{"skills disjoint", JobQuery{Skills: []string{"rust"}}, nil, false},
		{"skills are case sensitive", JobQuery{Skills: []string{"Go"}}, nil, false},
		{"location substring", JobQuery{Location: "berlin"}, nil, true},
		{"job type exact", JobQuery{JobType: entity.JobContract}, nil, false},
		{"experience exact", JobQuery{ExperienceLevel: entity.ExperienceSenior}, nil, true},
		{"regex metacharacters are literal", JobQuery{Text: "go.*"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := job()
			if tt.mod != nil {
				tt.mod(j)
			}
			assert.Equal(t, tt.want, tt.q.Matches(j))
		})
	}
}

func TestAddingFilterNeverGrowsResult(t *testing.T) {
	jobs := []*entity.JobPosting{job(), job(), job()}
	jobs[1].JobType = entity.JobContract
	jobs[2].RequiredSkills = []string{"rust"}

	count := func(q JobQuery) int {
		n := 0
		for _, j := range jobs {
			if q.Matches(j) {
				n++
			}
		}
		return n
	}
	base := JobQuery{Skills: []string{"go"}}
	narrowed := base
	narrowed.JobType = entity.JobContract
	assert.LessOrEqual(t, count(narrowed), count(base))
	assert.Equal(t, 2, count(base))
	assert.Equal(t, 1, count(narrowed))
}

func TestPostAndUserQueries(t *testing.T) {
	author := primitive.NewObjectID()
	p := &entity.SocialPost{AuthorID: author, Tags: []string{"career"}, PostType: entity.PostAchievement}

	assert.True(t, ParsePostQuery(url.Values{"postType": {"all"}}).Matches(p))
	assert.True(t, PostQuery{Author: &author, Tags: []string{"career", "x"}}.Matches(p))
	assert.False(t, PostQuery{PostType: entity.PostQuestion}.Matches(p))
	other := primitive.NewObjectID()
	assert.False(t, PostQuery{Author: &other}.Matches(p))

	u := &entity.User{Name: "Ada Lovelace", Bio: "Analytical engines", Skills: []string{"math"}}
	assert.True(t, UserQuery{Text: "ENGINE"}.Matches(u))
	assert.True(t, ParseUserQuery(url.Values{"skills": {"math,art"}}).Matches(u))
	assert.False(t, UserQuery{Text: "ada", Skills: []string{"art"}}.Matches(u))
}
