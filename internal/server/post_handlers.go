package server

import (
	"time"

	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /api/posts. Public, newest first.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(models.PostViews(posts))
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post.View())
}

// Dashboard handles GET /api/dashboard. Same listing as the public
// feed but behind the admin gate, for the management UI.
func (s *Server) Dashboard(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(models.PostViews(posts))
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title          string `json:"title"`
		Description    string `json:"description"`
		GithubLink     string `json:"github_link"`
		LiveDeployLink string `json:"live_deploy_link"`
		PhotoFilename  string `json:"photo_filename"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" || req.Description == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and description are required"))
	}
	if len(req.Title) > 150 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title must be at most 150 characters"))
	}
	if err := validation.ValidateLink("github_link", req.GithubLink); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateLink("live_deploy_link", req.LiveDeployLink); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if req.PhotoFilename != "" {
		if err := validation.ValidateFilename(req.PhotoFilename); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}

	now := time.Now().UTC()
	post := &models.BlogPost{
		Title:          req.Title,
		Description:    req.Description,
		GithubLink:     req.GithubLink,
		LiveDeployLink: req.LiveDeployLink,
		PhotoFilename:  req.PhotoFilename,
		CreationDate:   now,
		LastUpdated:    now,
		UserID:         userID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Reload so the response carries the author.
	post, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post.View())
}

// UpdatePost handles PUT /api/posts/:id. Absent fields are left
// untouched; last_updated always moves to now.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title          *string `json:"title"`
		Description    *string `json:"description"`
		GithubLink     *string `json:"github_link"`
		LiveDeployLink *string `json:"live_deploy_link"`
		PhotoFilename  *string `json:"photo_filename"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Title cannot be empty"))
		}
		if len(*req.Title) > 150 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Title must be at most 150 characters"))
		}
		post.Title = *req.Title
	}
	if req.Description != nil {
		if *req.Description == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Description cannot be empty"))
		}
		post.Description = *req.Description
	}
	if req.GithubLink != nil {
		if linkErr := validation.ValidateLink("github_link", *req.GithubLink); linkErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(linkErr.Error()))
		}
		post.GithubLink = *req.GithubLink
	}
	if req.LiveDeployLink != nil {
		if linkErr := validation.ValidateLink("live_deploy_link", *req.LiveDeployLink); linkErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(linkErr.Error()))
		}
		post.LiveDeployLink = *req.LiveDeployLink
	}
	if req.PhotoFilename != nil {
		if *req.PhotoFilename != "" {
			if fnErr := validation.ValidateFilename(*req.PhotoFilename); fnErr != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError(fnErr.Error()))
			}
		}
		post.PhotoFilename = *req.PhotoFilename
	}

	// The author and creation date never change on update.
	post.LastUpdated = time.Now().UTC()

	if updateErr := s.postRepo.Update(ctx, post); updateErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, updateErr)
	}

	return c.JSON(post.View())
}

// DeletePost handles DELETE /api/posts/:id. The row is removed
// outright; there is no soft delete or recovery.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if delErr := s.postRepo.Delete(c.Context(), id); delErr != nil {
		return models.RespondWithAppError(c, delErr)
	}

	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}
