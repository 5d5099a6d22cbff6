package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
	"github.com/devfolio/portfolio-api/internal/infrastructure/storage"
)

type UserHandler struct {
	authService ports.AuthService
	userService ports.UserService
	avatars     *storage.AvatarStore
}

func NewUserHandler(authService ports.AuthService, userService ports.UserService, avatars *storage.AvatarStore) *UserHandler {
	return &UserHandler{authService: authService, userService: userService, avatars: avatars}
}

// updateProfileRequest limits mirror the users table column widths, so
// anything that validates here also fits the row.
type updateProfileRequest struct {
	Name     string `json:"profile_name"            validate:"max=50"`
	Title    string `json:"profile_title"           validate:"max=100"`
	Bio      string `json:"profile_bio"             validate:"max=500"`
	Location string `json:"profile_location"        validate:"max=100"`
	Phone    string `json:"profile_phone"           validate:"max=20"`
	LinkedIn string `json:"profile_social_linkedin" validate:"omitempty,url,max=255"`
	GitHub   string `json:"profile_social_github"   validate:"omitempty,url,max=255"`
	Twitter  string `json:"profile_social_twitter"  validate:"omitempty,url,max=255"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
}

// Profile returns the authenticated user's profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /api/user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), principal.SubjectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"user": user})
}

// UpdateProfile replaces the authenticated user's profile fields.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Router       /api/user/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile := domain.Profile{
		Name:     req.Name,
		Title:    req.Title,
		Bio:      req.Bio,
		Location: req.Location,
		Phone:    req.Phone,
		LinkedIn: req.LinkedIn,
		GitHub:   req.GitHub,
		Twitter:  req.Twitter,
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), principal.SubjectID, profile)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"user": user})
}

// ChangePassword verifies the current password and replaces it.
//
// @Summary      Change own password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/user/changepassword [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), principal.SubjectID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}

// UploadAvatar stores an uploaded avatar image and records its public URL.
//
// @Summary      Upload avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "Avatar image"
// @Success      200     {object}  map[string]any
// @Failure      400     {object}  map[string]string
// @Router       /api/user/avatar [post]
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "avatar file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer src.Close()

	url, err := h.avatars.Save(src, fileHeader.Filename)
	if err != nil {
		switch err {
		case storage.ErrUnsupportedType:
			return echo.NewHTTPError(http.StatusBadRequest, "unsupported image type")
		case storage.ErrFileTooLarge:
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
		}
		return err
	}

	user, err := h.userService.UpdateAvatar(c.Request().Context(), principal.SubjectID, url)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"avatar": url, "user": user})
}
