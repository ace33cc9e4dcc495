package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/listing"
)

// newestFirst is the sort for every listing. _id breaks createdAt ties.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// containsCI matches s as a literal, case-insensitive substring.
func containsCI(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func jobFilter(q listing.JobQuery) bson.M {
	f := bson.M{"status": entity.JobActive}
	if q.Text != "" {
		re := containsCI(q.Text)
		f["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
			bson.M{"company": re},
		}
	}
	if len(q.Skills) > 0 {
		f["requiredSkills"] = bson.M{"$in": q.Skills}
	}
	if q.Location != "" {
		f["location"] = containsCI(q.Location)
	}
	if q.JobType != "" {
		f["jobType"] = q.JobType
	}
	if q.ExperienceLevel != "" {
		f["experienceLevel"] = q.ExperienceLevel
	}
	return f
}

func postFilter(q listing.PostQuery) bson.M {
	f := bson.M{}
	if q.Author != nil {
		f["author"] = *q.Author
	}
	if len(q.Tags) > 0 {
		f["tags"] = bson.M{"$in": q.Tags}
	}
	if q.PostType != "" {
		f["postType"] = q.PostType
	}
	return f
}

func userFilter(q listing.UserQuery) bson.M {
	f := bson.M{}
	if q.Text != "" {
		re := containsCI(q.Text)
		f["$or"] = bson.A{bson.M{"name": re}, bson.M{"bio": re}}
	}
	if len(q.Skills) > 0 {
		f["skills"] = bson.M{"$in": q.Skills}
	}
	return f
}
