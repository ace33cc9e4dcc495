package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/listing"
)

func TestJobFilterOnlyConstrainsWhatIsGiven(t *testing.T) {
	assert.Equal(t, bson.M{"status": entity.JobActive}, jobFilter(listing.JobQuery{}))

	f := jobFilter(listing.JobQuery{
		Text:            "go (dev)",
		Skills:          []string{"go", "k8s"},
		Location:        "berlin",
		JobType:         entity.JobContract,
		ExperienceLevel: entity.ExperienceSenior,
	})
	re := primitive.Regex{Pattern: `go \(dev\)`, Options: "i"}
	assert.Equal(t, bson.A{bson.M{"title": re}, bson.M{"description": re}, bson.M{"company": re}}, f["$or"])
	assert.Equal(t, bson.M{"$in": []string{"go", "k8s"}}, f["requiredSkills"])
	assert.Equal(t, primitive.Regex{Pattern: "berlin", Options: "i"}, f["location"])
	assert.Equal(t, entity.JobContract, f["jobType"])
	assert.Equal(t, entity.ExperienceSenior, f["experienceLevel"])
	assert.Equal(t, entity.JobActive, f["status"])
}

func TestPostAndUserFilters(t *testing.T) {
	author := primitive.NewObjectID()
	f := postFilter(listing.PostQuery{Author: &author, Tags: []string{"career"}, PostType: entity.PostQuestion})
	assert.Equal(t, bson.M{
		"author":   author,
		"tags":     bson.M{"$in": []string{"career"}},
		"postType": entity.PostQuestion,
	}, f)
	assert.Empty(t, postFilter(listing.PostQuery{}))

	uf := userFilter(listing.UserQuery{Text: "a.b", Skills: []string{"rust"}})
	re := primitive.Regex{Pattern: `a\.b`, Options: "i"}
	assert.Equal(t, bson.A{bson.M{"name": re}, bson.M{"bio": re}}, uf["$or"])
	assert.Equal(t, bson.M{"$in": []string{"rust"}}, uf["skills"])
}
