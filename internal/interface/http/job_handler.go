package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard/internal/application"
	"github.com/oksasatya/jobboard/internal/domain/listing"
	"github.com/oksasatya/jobboard/internal/domain/paging"
	"github.com/oksasatya/jobboard/pkg/response"
)

type JobHandler struct {
	Jobs   *application.JobService
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewJobHandler(jobs *application.JobService, users *application.UserService, logger *logrus.Logger) *JobHandler {
	return &JobHandler{Jobs: jobs, Users: users, Logger: logger}
}

type budgetRequest struct {
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Currency string   `json:"currency"`
}

type createJobRequest struct {
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	RequiredSkills  []string       `json:"requiredSkills"`
	Budget          *budgetRequest `json:"budget"`
	JobType         string         `json:"jobType"`
	ExperienceLevel string         `json:"experienceLevel"`
	Location        string         `json:"location"`
	Company         string         `json:"company"`
	Tags            []string       `json:"tags"`
	Deadline        *time.Time     `json:"deadline"`
}

func (r createJobRequest) input() application.CreateJobInput {
	in := application.CreateJobInput{
		Title:           r.Title,
		Description:     r.Description,
		RequiredSkills:  r.RequiredSkills,
		JobType:         r.JobType,
		ExperienceLevel: r.ExperienceLevel,
		Location:        r.Location,
		Company:         r.Company,
		Tags:            r.Tags,
		Deadline:        r.Deadline,
	}
	if r.Budget != nil {
		in.Budget = &application.BudgetInput{Min: r.Budget.Min, Max: r.Budget.Max, Currency: r.Budget.Currency}
	}
	return in
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// List GET /api/jobs
func (h *JobHandler) List(c *gin.Context) {
	q := c.Request.URL.Query()
	page, err := h.Jobs.List(c.Request.Context(), listing.ParseJobQuery(q), paging.Parse(q.Get("page"), q.Get("limit")))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"jobs": page.Items, "pagination": page.Pagination})
}

// Get GET /api/jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	j, err := h.Jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"job": j})
}

// Create POST /api/jobs
func (h *JobHandler) Create(c *gin.Context) {
	me, ok := caller(c, h.Users, h.Logger)
	if !ok {
		return
	}
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	j, err := h.Jobs.Create(c.Request.Context(), me, req.input())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Created(c, "Job created successfully", gin.H{"job": j})
}

// Apply POST /api/jobs/:id/apply
func (h *JobHandler) Apply(c *gin.Context) {
	me, ok := caller(c, h.Users, h.Logger)
	if !ok {
		return
	}
	if err := h.Jobs.Apply(c.Request.Context(), me, c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, "Applied successfully", nil)
}

// Posted GET /api/jobs/user/posted
func (h *JobHandler) Posted(c *gin.Context) {
	me, ok := caller(c, h.Users, h.Logger)
	if !ok {
		return
	}
	jobs, err := h.Jobs.Posted(c.Request.Context(), me)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"jobs": jobs})
}

// UpdateStatus PATCH /api/jobs/:id/status
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	me, ok := caller(c, h.Users, h.Logger)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	j, err := h.Jobs.UpdateStatus(c.Request.Context(), me, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, "Job status updated", gin.H{"job": j})
}

// UpdateApplicationStatus PATCH /api/jobs/:id/applicants/:userId
func (h *JobHandler) UpdateApplicationStatus(c *gin.Context) {
	me, ok := caller(c, h.Users, h.Logger)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.Jobs.UpdateApplicationStatus(c.Request.Context(), me, c.Param("id"), c.Param("userId"), req.Status); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, "Application status updated", nil)
}
