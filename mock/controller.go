package mock_generator

import (
	"context"

	"story-production-api/application/ports/outbound"
	"story-production-api/infrastructure/gin_interface/dto"
	"story-production-api/middleware"

	"github.com/gin-gonic/gin"
)

type MockProductionController interface {
	GenerateProduction(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type mockProductionController struct {
	logger outbound.LoggerPort
	runner *Runner
}

func NewMockProductionController(logger outbound.LoggerPort, runner *Runner) MockProductionController {
	return &mockProductionController{
		logger: logger,
		runner: runner,
	}
}

func (m *mockProductionController) GenerateProduction(c *gin.Context) {
	var req dto.GenerateProductionRequest
	newCtx, cancel := context.WithCancel(c)
	defer cancel()
	if err := c.ShouldBindJSON(&req); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			m.logger.Error(err, "failed to abort with error")
		}
		return
	}

	events, errCh := m.runner.Run(newCtx, req.Prompt)

	for {
		select {
		case <-newCtx.Done():
			return
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			m.emitError(c, err)
			return
		case event, ok := <-events:
			if !ok {
				if errCh != nil {
					if err, open := <-errCh; open {
						m.emitError(c, err)
					}
				}
				return
			}
			c.SSEvent(string(event.Type), event)
			c.Writer.Flush()
		}
	}
}

func (m *mockProductionController) emitError(c *gin.Context, err error) {
	m.logger.Error(err, "mock production run failed")
	c.SSEvent("error", gin.H{"error": "internal server error"})
	c.Writer.Flush()
}

func (m *mockProductionController) RegisterRoutes(g *gin.Engine) {
	g.POST("/productions/generate/mock", middleware.SSEMiddleware(), m.GenerateProduction)
}
