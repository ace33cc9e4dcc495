package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/config"
	"github.com/oksasatya/jobboard/internal/container"
	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/repository"
	"github.com/oksasatya/jobboard/pkg/helpers"
)

const (
	demoEmail    = "demo@jobboard.local"
	demoPassword = "password123"
)

type options struct {
	Users int
	Jobs  int
	Posts int
	Seed  int64
}

type summary struct {
	Users, Jobs, Applications, Posts, Likes, Comments int
}

type seeder struct {
	users repository.UserRepository
	jobs  repository.JobRepository
	posts repository.PostRepository
	fake  *gofakeit.Faker
	log   *logrus.Logger
	hash  string
}

var (
	jobTypes    = []entity.JobType{entity.JobFullTime, entity.JobPartTime, entity.JobContract, entity.JobFreelance, entity.JobInternship}
	levels      = []entity.ExperienceLevel{entity.ExperienceEntry, entity.ExperienceJunior, entity.ExperienceMid, entity.ExperienceSenior, entity.ExperienceLead, entity.ExperienceExecutive}
	postTypes   = []entity.PostType{entity.PostUpdate, entity.PostAchievement, entity.PostArticle, entity.PostQuestion, entity.PostCelebration}
	skillPool   = []string{"go", "rust", "typescript", "react", "solidity", "mongodb", "postgres", "kubernetes", "aws", "figma", "python", "graphql"}
	locationSet = []string{"Remote", "Berlin", "Jakarta", "New York", "Lisbon", "Singapore"}
)

func newSeeder(users repository.UserRepository, jobs repository.JobRepository, posts repository.PostRepository, seed int64, logger *logrus.Logger) (*seeder, error) {
	hash, err := helpers.HashPassword(demoPassword)
	if err != nil {
		return nil, err
	}
	return &seeder{users: users, jobs: jobs, posts: posts, fake: gofakeit.New(seed), log: logger, hash: hash}, nil
}

func (s *seeder) pick(n int) int { return s.fake.Number(0, n-1) }

func (s *seeder) skills(max int) []string {
	n := s.fake.Number(1, max)
	seen := map[string]bool{}
	out := make([]string, 0, n)
	for len(out) < n {
		sk := skillPool[s.pick(len(skillPool))]
		if !seen[sk] {
			seen[sk] = true
			out = append(out, sk)
		}
	}
	return out
}

// demoUser returns the fixed login account, creating it on first run.
func (s *seeder) demoUser(ctx context.Context) (*entity.User, bool, error) {
	u, err := s.users.GetByEmail(ctx, demoEmail)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}
	u = &entity.User{
		Name:       "Demo User",
		Email:      demoEmail,
		Password:   s.hash,
		Bio:        "Seeded account for local development",
		Skills:     []string{"go", "mongodb"},
		Location:   "Remote",
		Experience: entity.ExperienceMid,
	}
	return u, true, s.users.Create(ctx, u)
}

func (s *seeder) user(ctx context.Context) (*entity.User, error) {
	p := s.fake.Person()
	u := &entity.User{
		Name:        p.FirstName + " " + p.LastName,
		Email:       entity.NormalizeEmail(s.fake.Username() + fmt.Sprintf("%d@example.com", s.fake.Number(1000, 9999))),
		Password:    s.hash,
		Bio:         s.fake.Sentence(12),
		LinkedinURL: "https://www.linkedin.com/in/" + s.fake.Username(),
		Skills:      s.skills(4),
		Location:    locationSet[s.pick(len(locationSet))],
		Experience:  levels[s.pick(len(levels))],
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *seeder) job(ctx context.Context, poster *entity.User) (*entity.JobPosting, error) {
	low := float64(s.fake.Number(20, 120)) * 1000
	j := &entity.JobPosting{
		Title:           s.fake.JobLevel() + " " + s.fake.JobTitle(),
		Description:     s.fake.Paragraph(2, 3, 12, " "),
		RequiredSkills:  s.skills(3),
		Budget:          entity.Budget{Min: low, Max: low + float64(s.fake.Number(5, 60))*1000, Currency: entity.DefaultCurrency},
		JobType:         jobTypes[s.pick(len(jobTypes))],
		ExperienceLevel: levels[s.pick(len(levels))],
		Location:        locationSet[s.pick(len(locationSet))],
		Company:         s.fake.Company(),
		Tags:            []string{s.fake.BuzzWord()},
		Status:          entity.JobActive,
		PostedByID:      poster.ID,
		Applicants:      []entity.Application{},
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *seeder) post(ctx context.Context, author *entity.User) (*entity.SocialPost, error) {
	p := &entity.SocialPost{
		Content:  s.fake.Sentence(s.fake.Number(8, 30)),
		AuthorID: author.ID,
		PostType: postTypes[s.pick(len(postTypes))],
		Tags:     s.skills(2),
		Likes:    []entity.Like{},
		Comments: []entity.Comment{},
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// run creates the demo account plus o.Users users, then jobs and posts
// authored by random users with a few applications, likes and comments each.
func (s *seeder) run(ctx context.Context, o options) (summary, error) {
	var sum summary
	demo, created, err := s.demoUser(ctx)
	if err != nil {
		return sum, fmt.Errorf("demo user: %w", err)
	}
	if created {
		sum.Users++
	}
	people := []*entity.User{demo}
	for i := 0; i < o.Users; i++ {
		u, err := s.user(ctx)
		if errors.Is(err, repository.ErrDuplicateEmail) {
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("user: %w", err)
		}
		people = append(people, u)
		sum.Users++
	}
	s.log.WithField("users", len(people)).Debug("users ready")

	now := time.Now().UTC()
	for i := 0; i < o.Jobs; i++ {
		poster := people[s.pick(len(people))]
		j, err := s.job(ctx, poster)
		if err != nil {
			return sum, fmt.Errorf("job: %w", err)
		}
		sum.Jobs++
		for k := s.fake.Number(0, 3); k > 0; k-- {
			applicant := people[s.pick(len(people))]
			if applicant.ID == poster.ID {
				continue
			}
			err := s.jobs.AddApplication(ctx, j.ID, entity.Application{UserID: applicant.ID, AppliedAt: now, Status: entity.ApplicationPending})
			switch {
			case err == nil:
				sum.Applications++
			case !errors.Is(err, repository.ErrAlreadyApplied):
				return sum, fmt.Errorf("apply: %w", err)
			}
		}
	}

	for i := 0; i < o.Posts; i++ {
		p, err := s.post(ctx, people[s.pick(len(people))])
		if err != nil {
			return sum, fmt.Errorf("post: %w", err)
		}
		sum.Posts++
		likers := map[primitive.ObjectID]bool{}
		for k := s.fake.Number(0, 4); k > 0; k-- {
			u := people[s.pick(len(people))]
			if likers[u.ID] {
				continue
			}
			likers[u.ID] = true
			if _, err := s.posts.ToggleLike(ctx, p.ID, u.ID, now); err != nil {
				return sum, fmt.Errorf("like: %w", err)
			}
			sum.Likes++
		}
		for k := s.fake.Number(0, 2); k > 0; k-- {
			c := entity.Comment{
				ID:        primitive.NewObjectID(),
				UserID:    people[s.pick(len(people))].ID,
				Content:   s.fake.Sentence(6),
				CreatedAt: now,
			}
			if err := s.posts.AddComment(ctx, p.ID, c); err != nil {
				return sum, fmt.Errorf("comment: %w", err)
			}
			sum.Comments++
		}
	}
	return sum, nil
}

func main() {
	var o options
	flag.IntVar(&o.Users, "users", 20, "number of users to create")
	flag.IntVar(&o.Jobs, "jobs", 40, "number of job postings to create")
	flag.IntVar(&o.Posts, "posts", 60, "number of social posts to create")
	flag.Int64Var(&o.Seed, "seed", time.Now().UnixNano(), "faker seed, for reproducible data")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	if cfg.UseMemoryStore() {
		logger.Warn("DB_DRIVER=memory: seeded data disappears when this process exits")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Error("init failed")
		os.Exit(1)
	}
	defer c.Close()

	s, err := newSeeder(c.UserRepo, c.JobRepo, c.PostRepo, o.Seed, logger)
	if err != nil {
		logger.WithError(err).Error("init seeder failed")
		os.Exit(1)
	}
	sum, err := s.run(ctx, o)
	if err != nil {
		logger.WithError(err).Error("seed failed")
		os.Exit(1)
	}
	logger.WithFields(logrus.Fields{
		"users":        sum.Users,
		"jobs":         sum.Jobs,
		"applications": sum.Applications,
		"posts":        sum.Posts,
		"likes":        sum.Likes,
		"comments":     sum.Comments,
		"login":        demoEmail + " / " + demoPassword,
	}).Info("seed complete")
}
