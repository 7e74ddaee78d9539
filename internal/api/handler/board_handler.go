package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/boardly/boardly/internal/api/flash"
	"github.com/boardly/boardly/internal/api/metrics"
	"github.com/boardly/boardly/internal/api/middleware"
	"github.com/boardly/boardly/internal/core/domain"
	"github.com/boardly/boardly/internal/core/ports"
)

// BoardHandler serves the board feed, profiles, the upload flow and the
// pin toggle. All of its routes sit behind the session gate.
type BoardHandler struct {
	board  ports.BoardService
	files  ports.FileStore
	logger zerolog.Logger
}

func NewBoardHandler(board ports.BoardService, files ports.FileStore, logger zerolog.Logger) *BoardHandler {
	return &BoardHandler{board: board, files: files, logger: logger}
}

type boardData struct {
	Title string
	User  *domain.User
	Posts []*domain.FeedPost
}

type profileData struct {
	Title    string
	User     *domain.User
	Posts    []*domain.Post
	Pinned   []*domain.Post
	Messages []domain.Flash
}

type userProfileData struct {
	Title   string
	Viewer  string
	Profile *domain.User
	Posts   []*domain.Post
}

type userData struct {
	Title string
	User  *domain.User
}

type errorData struct {
	Title   string
	Message string
}

// Board renders the shared feed with every post and its owner.
//
// @Summary      Board feed
// @Tags         board
// @Produce      html
// @Success      200  "feed page"
// @Router       /board [get]
func (h *BoardHandler) Board(c echo.Context) error {
	username := middleware.Username(c)
	ctx := c.Request().Context()

	view, err := h.board.Profile(ctx, username)
	if err != nil {
		h.logger.Error().Err(err).Str("username", username).Msg("failed to load board user")
		return h.errorPage(c)
	}

	posts, err := h.board.Feed(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load feed")
		return h.errorPage(c)
	}

	return c.Render(http.StatusOK, "board", boardData{
		Title: "Boards Feed",
		User:  view.User,
		Posts: posts,
	})
}

func (h *BoardHandler) errorPage(c echo.Context) error {
	return c.Render(http.StatusInternalServerError, "error", errorData{
		Title:   "Boardly - Error",
		Message: "Something went wrong",
	})
}

// Profile renders the signed-in user's own profile, posts and pins.
//
// @Summary      Own profile
// @Tags         board
// @Produce      html
// @Success      200  "profile page"
// @Router       /profile [get]
func (h *BoardHandler) Profile(c echo.Context) error {
	username := middleware.Username(c)

	view, err := h.board.Profile(c.Request().Context(), username)
	if err != nil {
		h.logger.Error().Err(err).Str("username", username).Msg("failed to load profile")
		return c.Redirect(http.StatusFound, "/board")
	}

	return c.Render(http.StatusOK, "profile", profileData{
		Title:    view.User.Username + "'s Profile",
		User:     view.User,
		Posts:    view.Posts,
		Pinned:   view.Pinned,
		Messages: flash.Pop(c),
	})
}

// UserProfile renders another user's profile. Visiting your own
// username here bounces to the dedicated /profile page.
//
// @Summary      Another user's profile
// @Tags         board
// @Produce      html
// @Param        user  path  string  true  "Username"
// @Success      200  "profile page"
// @Router       /profile/{user} [get]
func (h *BoardHandler) UserProfile(c echo.Context) error {
	viewer := middleware.Username(c)
	target := c.Param("user")

	if target == viewer {
		return c.Redirect(http.StatusFound, "/profile")
	}

	view, err := h.board.PublicProfile(c.Request().Context(), target)
	if err != nil {
		h.logger.Warn().Err(err).Str("target", target).Msg("failed to load user profile")
		return c.Redirect(http.StatusFound, "/board")
	}

	return c.Render(http.StatusOK, "userprofile", userProfileData{
		Title:   view.User.Username + "'s Profile",
		Viewer:  viewer,
		Profile: view.User,
		Posts:   view.Posts,
	})
}

// Edit renders the profile edit form prefilled with current values.
func (h *BoardHandler) Edit(c echo.Context) error {
	username := middleware.Username(c)

	view, err := h.board.Profile(c.Request().Context(), username)
	if err != nil {
		h.logger.Error().Err(err).Str("username", username).Msg("failed to load edit form")
		return c.Redirect(http.StatusFound, "/board")
	}

	return c.Render(http.StatusOK, "edit", userData{
		Title: "Edit Profile - Boardly",
		User:  view.User,
	})
}

// Upload renders the new-post form.
func (h *BoardHandler) Upload(c echo.Context) error {
	return c.Render(http.StatusOK, "upload", userData{
		Title: "Upload - Boardly",
	})
}

// CreatePost stores the uploaded image and creates the post.
//
// @Summary      Create a post
// @Tags         board
// @Accept       multipart/form-data
// @Param        image    formData  file    true   "Image file"
// @Param        caption  formData  string  false  "Caption"
// @Success      302  "redirect to /board, or back to /upload on failure"
// @Router       /post [post]
func (h *BoardHandler) CreatePost(c echo.Context) error {
	username := middleware.Username(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		flash.Add(c, flash.KindError, "Please choose an image to upload.")
		return c.Redirect(http.StatusFound, "/upload")
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to open upload")
		return c.Redirect(http.StatusFound, "/upload")
	}
	defer src.Close()

	stored, err := h.files.Save(fileHeader.Filename, src)
	if err != nil {
		h.logger.Warn().Err(err).Str("filename", fileHeader.Filename).Msg("upload rejected")
		return c.Redirect(http.StatusFound, "/upload")
	}

	if _, err := h.board.CreatePost(c.Request().Context(), username, c.FormValue("caption"), stored); err != nil {
		h.logger.Error().Err(err).Str("username", username).Msg("failed to create post")
		return c.Redirect(http.StatusFound, "/upload")
	}
	metrics.PostsCreatedTotal.Inc()

	return c.Redirect(http.StatusFound, "/board")
}

type savePostResponse struct {
	Pinned []string `json:"pinned"`
}

type saveErrorResponse struct {
	Success bool `json:"success"`
}

// SavePost flips the post's membership in the caller's pinned set and
// returns the resulting set as the client's source of truth.
//
// @Summary      Toggle a pin
// @Tags         board
// @Produce      json
// @Param        postid  path  string  true  "Post id"
// @Success      200  {object}  savePostResponse
// @Failure      500  {object}  saveErrorResponse
// @Router       /save/{postid} [post]
func (h *BoardHandler) SavePost(c echo.Context) error {
	username := middleware.Username(c)
	postID := c.Param("postid")

	pinned, err := h.board.TogglePin(c.Request().Context(), username, postID)
	if err != nil {
		h.logger.Error().Err(err).Str("username", username).Str("post_id", postID).Msg("pin toggle failed")
		return c.JSON(http.StatusInternalServerError, saveErrorResponse{Success: false})
	}

	action := "unpinned"
	for _, id := range pinned {
		if id == postID {
			action = "pinned"
			break
		}
	}
	metrics.PinsToggledTotal.WithLabelValues(action).Inc()

	return c.JSON(http.StatusOK, savePostResponse{Pinned: pinned})
}
