package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"story-production-api/application/ports/outbound"
	"story-production-api/infrastructure/gin_interface/dto"
	"story-production-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectsController interface {
	SaveProject(c *gin.Context)
	GetProject(c *gin.Context)
	ListProjects(c *gin.Context)
	DeleteProject(c *gin.Context)
	PublishProject(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type projectsController struct {
	logger    outbound.LoggerPort
	store     outbound.ProjectStorePort
	publisher outbound.ShowcasePublisherPort
}

func NewProjectsController(logger outbound.LoggerPort, store outbound.ProjectStorePort,
	publisher outbound.ShowcasePublisherPort) ProjectsController {
	return &projectsController{
		logger:    logger,
		store:     store,
		publisher: publisher,
	}
}

// SaveProject creates or overwrites a project owned by the caller. A request
// without an id creates a new project.
func (p *projectsController) SaveProject(c *gin.Context) {
	var req dto.SaveProjectRequest
	newCtx, cancel := context.WithCancel(c)
	defer cancel()
	if err := c.ShouldBindJSON(&req); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			p.logger.Error(err, "failed to abort with error")
		}
		return
	}

	userID := c.GetString(middleware.ContextUserIDKey)

	projectID := req.ID
	if projectID == "" {
		projectID = uuid.NewString()
	} else {
		existing, err := p.store.Get(newCtx, projectID)
		if err != nil && !errors.Is(err, outbound.ErrProjectNotFound) {
			p.logger.Error(err, "failed to load project")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to save project"})
			return
		}
		if existing != nil && existing.UserID != userID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "project belongs to another user"})
			return
		}
	}

	record := outbound.ProjectRecord{
		ID:        projectID,
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content.Stamped(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := p.store.Upsert(newCtx, record); err != nil {
		p.logger.Error(err, "failed to save project")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to save project"})
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(record))
}

func (p *projectsController) GetProject(c *gin.Context) {
	newCtx, cancel := context.WithCancel(c)
	defer cancel()

	record, ok := p.ownedProject(newCtx, c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(*record))
}

func (p *projectsController) ListProjects(c *gin.Context) {
	newCtx, cancel := context.WithCancel(c)
	defer cancel()

	userID := c.GetString(middleware.ContextUserIDKey)

	records, err := p.store.ListByUser(newCtx, userID)
	if err != nil {
		p.logger.Error(err, "failed to list projects")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}

	summaries := make([]dto.ProjectSummaryResponse, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, dto.ProjectSummaryResponse{
			ID:        record.ID,
			Title:     record.Title,
			UpdatedAt: record.UpdatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, summaries)
}

func (p *projectsController) DeleteProject(c *gin.Context) {
	newCtx, cancel := context.WithCancel(c)
	defer cancel()

	record, ok := p.ownedProject(newCtx, c)
	if !ok {
		return
	}

	if err := p.store.Delete(newCtx, record.ID); err != nil {
		p.logger.Error(err, "failed to delete project")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
		return
	}

	c.Status(http.StatusNoContent)
}

// PublishProject copies the project snapshot to the public showcase bucket
// and returns its URL.
func (p *projectsController) PublishProject(c *gin.Context) {
	newCtx, cancel := context.WithCancel(c)
	defer cancel()

	record, ok := p.ownedProject(newCtx, c)
	if !ok {
		return
	}

	url, err := p.publisher.Publish(newCtx, record.ID, record.Content)
	if err != nil {
		p.logger.Error(err, "failed to publish project")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to publish project"})
		return
	}

	p.logger.InfoWithFields("project published", map[string]interface{}{
		"project_id": record.ID,
	})

	c.JSON(http.StatusOK, dto.PublishProjectResponse{URL: url})
}

// ownedProject loads the :id project and enforces that the caller owns it.
// It writes the error response itself when the lookup fails.
func (p *projectsController) ownedProject(ctx context.Context, c *gin.Context) (*outbound.ProjectRecord, bool) {
	projectID := c.Param("id")
	userID := c.GetString(middleware.ContextUserIDKey)

	record, err := p.store.Get(ctx, projectID)
	if errors.Is(err, outbound.ErrProjectNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return nil, false
	}
	if err != nil {
		p.logger.Error(err, "failed to load project")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load project"})
		return nil, false
	}
	// Hide other users' projects behind the same 404.
	if record.UserID != userID {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return nil, false
	}

	return record, true
}

func toProjectResponse(record outbound.ProjectRecord) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:        record.ID,
		Title:     record.Title,
		Content:   record.Content,
		UpdatedAt: record.UpdatedAt.Format(time.RFC3339),
	}
}

func (p *projectsController) RegisterRoutes(g *gin.Engine) {
	g.PUT("/projects", p.SaveProject)
	g.GET("/projects", p.ListProjects)
	g.GET("/projects/:id", p.GetProject)
	g.DELETE("/projects/:id", p.DeleteProject)
	g.POST("/projects/:id/publish", p.PublishProject)
}
