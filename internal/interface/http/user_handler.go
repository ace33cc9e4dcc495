package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard/internal/application"
	"github.com/oksasatya/jobboard/internal/domain/apperror"
	"github.com/oksasatya/jobboard/internal/domain/listing"
	"github.com/oksasatya/jobboard/pkg/response"
	"github.com/oksasatya/jobboard/pkg/validation"
)

// MaxImageBytes caps profile image uploads.
const MaxImageBytes = 5 << 20

var imageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

type UserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

type updateProfileRequest struct {
	Name          *string  `json:"name"`
	Bio           *string  `json:"bio"`
	LinkedinURL   *string  `json:"linkedinUrl"`
	Skills        []string `json:"skills"`
	WalletAddress *string  `json:"walletAddress"`
	Location      *string  `json:"location"`
	Experience    *string  `json:"experience"`
}

type connectWalletRequest struct {
	Email         string `json:"email" binding:"required,email"`
	WalletAddress string `json:"walletAddress" binding:"required,wallet"`
}

// GetProfile GET /api/users/profile/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Users.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"user": u})
}

// UpdateProfile PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	me, ok := caller(c, h.Users, h.Logger)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	u, err := h.Users.UpdateProfile(c.Request.Context(), me.ID, application.UpdateProfileInput{
		Name:          req.Name,
		Bio:           req.Bio,
		LinkedinURL:   req.LinkedinURL,
		Skills:        req.Skills,
		WalletAddress: req.WalletAddress,
		Location:      req.Location,
		Experience:    req.Experience,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, "Profile updated successfully", gin.H{"user": u})
}

// UploadImage POST /api/users/profile/image (multipart field "image")
func (h *UserHandler) UploadImage(c *gin.Context) {
	me, ok := caller(c, h.Users, h.Logger)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageBytes+1<<20)
	fh, err := c.FormFile("image")
	if err != nil {
		respondError(c, h.Logger, apperror.NewValidation("Image file is required",
			apperror.Violation{Field: "image", Message: "is required"}))
		return
	}
	if fh.Size > MaxImageBytes {
		respondError(c, h.Logger, apperror.NewValidation("Image is too large",
			apperror.Violation{Field: "image", Message: "must be at most " + strconv.Itoa(MaxImageBytes>>20) + "MB"}))
		return
	}
	ct := strings.ToLower(fh.Header.Get("Content-Type"))
	if _, ok := imageTypes[ct]; !ok {
		respondError(c, h.Logger, apperror.NewValidation("Unsupported image type",
			apperror.Violation{Field: "image", Message: "must be a jpeg, png, gif or webp image"}))
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, h.Logger, apperror.NewInternal(err))
		return
	}
	defer f.Close()

	u, err := h.Users.UploadProfileImage(c.Request.Context(), me.ID, filepath.Base(fh.Filename), ct, f)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, "Profile image updated successfully", gin.H{"user": u})
}

// ConnectWallet POST /api/users/connect-wallet
func (h *UserHandler) ConnectWallet(c *gin.Context) {
	var req connectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, string(apperror.KindValidation), "Email and wallet address are required", validation.ToDetails(err))
		return
	}
	u, err := h.Users.ConnectWallet(c.Request.Context(), req.Email, req.WalletAddress)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, "Wallet connected successfully", gin.H{"user": u})
}

// Search GET /api/users/search?q&skills
func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.Users.Search(c.Request.Context(), listing.ParseUserQuery(c.Request.URL.Query()))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"users": users})
}

// Discover GET /api/users/discover?q&size
func (h *UserHandler) Discover(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	users, err := h.Users.Discover(c.Request.Context(), strings.TrimSpace(c.Query("q")), size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"users": users})
}
