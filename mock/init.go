package mock_generator

import (
	"story-production-api/application/ports/outbound"

	"github.com/gin-gonic/gin"
)

func Init(g *gin.Engine, workerPool outbound.TaskDispatcher, logger outbound.LoggerPort) {
	fixtureReader := NewFileFixtureReader(logger)
	runner := NewRunner(workerPool, fixtureReader, logger)
	mockController := NewMockProductionController(logger, runner)

	mockController.RegisterRoutes(g)
}
