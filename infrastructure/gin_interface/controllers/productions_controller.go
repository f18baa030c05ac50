package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"story-production-api/application/ports/inbound"
	"story-production-api/application/ports/outbound"
	"story-production-api/domain"
	"story-production-api/infrastructure/gin_interface/dto"
	"story-production-api/middleware"

	"github.com/gin-gonic/gin"
)

type ProductionsController interface {
	GenerateProduction(c *gin.Context)
	SplitScene(c *gin.Context)
	RegenerateImage(c *gin.Context)
	RegenerateAudio(c *gin.Context)
	GetOptions(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type productionsController struct {
	logger      outbound.LoggerPort
	pipeline    inbound.ProductionPipelinePort
	synthesizer inbound.SceneMediaSynthesizerPort
	splitter    inbound.SceneSplitterPort
}

func NewProductionsController(
	logger outbound.LoggerPort,
	pipeline inbound.ProductionPipelinePort,
	synthesizer inbound.SceneMediaSynthesizerPort,
	splitter inbound.SceneSplitterPort,
) ProductionsController {
	return &productionsController{
		logger:      logger,
		pipeline:    pipeline,
		synthesizer: synthesizer,
		splitter:    splitter,
	}
}

// GenerateProduction runs the full pipeline and streams its events to the
// client as server-sent events. The connection stays open until the run
// completes, fails, or the client goes away.
func (p *productionsController) GenerateProduction(c *gin.Context) {
	var req dto.GenerateProductionRequest
	newCtx, cancel := context.WithCancel(c)
	defer cancel()
	if err := c.ShouldBindJSON(&req); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			p.logger.Error(err, "failed to abort with error")
		}
		return
	}

	events, errCh := p.pipeline.Generate(newCtx, inbound.StartProductionParams{
		Prompt:          req.Prompt,
		WritingStyle:    req.WritingStyle,
		ArtStyle:        req.ArtStyle,
		AspectRatio:     req.AspectRatio,
		TransitionStyle: req.TransitionStyle,
		Voice:           req.Voice,
		CaptionPosition: req.CaptionPosition,
		FontSize:        req.FontSize,
	})

	for {
		select {
		case <-newCtx.Done():
			return
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			p.emitError(c, err)
			return
		case event, ok := <-events:
			if !ok {
				// The run ended; surface a trailing error if one was left.
				if errCh != nil {
					if err, open := <-errCh; open {
						p.emitError(c, err)
					}
				}
				return
			}
			c.SSEvent(string(event.Type), event)
			c.Writer.Flush()
		}
	}
}

func (p *productionsController) emitError(c *gin.Context, err error) {
	p.logger.Error(err, "production pipeline failed")
	if errors.Is(err, domain.ErrGenerationInFlight) {
		c.SSEvent("error", gin.H{"error": "a generation is already in progress"})
	} else {
		c.SSEvent("error", gin.H{"error": "internal server error"})
	}
	c.Writer.Flush()
}

// SplitScene subdivides one scene into smaller scenes with fresh media and
// returns the story with the parts spliced into the original position.
func (p *productionsController) SplitScene(c *gin.Context) {
	var req dto.SplitSceneRequest
	newCtx, cancel := context.WithCancel(c)
	defer cancel()
	if err := c.ShouldBindJSON(&req); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			p.logger.Error(err, "failed to abort with error")
		}
		return
	}

	index := *req.SceneIndex
	if index < 0 || index >= len(req.Story.Scenes) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "sceneIndex out of range"})
		return
	}

	parts, err := p.splitter.Split(newCtx, inbound.SplitSceneParams{
		Scene:       req.Story.Scenes[index],
		ArtStyle:    req.Story.ArtStyle,
		AspectRatio: req.Story.AspectRatio,
		Voice:       req.Story.Voice,
	})
	if err != nil {
		p.logger.Error(err, "scene split failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to split scene"})
		return
	}

	c.JSON(http.StatusOK, dto.SplitSceneResponse{
		Story: req.Story.WithSceneSplit(index, parts).Stamped(),
	})
}

func (p *productionsController) RegenerateImage(c *gin.Context) {
	var req dto.RegenerateImageRequest
	newCtx, cancel := context.WithCancel(c)
	defer cancel()
	if err := c.ShouldBindJSON(&req); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			p.logger.Error(err, "failed to abort with error")
		}
		return
	}

	prompt := req.VisualPrompt
	if keywords, ok := domain.StyleKeywords[req.ArtStyle]; ok && len(keywords) > 0 {
		prompt = prompt + ", " + strings.Join(keywords, ", ")
	}

	imageData, err := p.synthesizer.GenerateImage(newCtx, prompt, req.AspectRatio)
	if err != nil {
		p.logger.Error(err, "image regeneration failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to generate image"})
		return
	}

	c.JSON(http.StatusOK, dto.RegenerateImageResponse{ImageData: imageData})
}

func (p *productionsController) RegenerateAudio(c *gin.Context) {
	var req dto.RegenerateAudioRequest
	newCtx, cancel := context.WithCancel(c)
	defer cancel()
	if err := c.ShouldBindJSON(&req); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			p.logger.Error(err, "failed to abort with error")
		}
		return
	}

	audioURL, err := p.synthesizer.GenerateSpeech(newCtx, req.Narration, req.Voice)
	if err != nil {
		p.logger.Error(err, "audio regeneration failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to generate audio"})
		return
	}

	c.JSON(http.StatusOK, dto.RegenerateAudioResponse{AudioURL: audioURL})
}

// GetOptions returns the presentation catalogs the client renders as pickers.
func (p *productionsController) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"aspectRatios":     domain.AspectRatios,
		"transitionStyles": domain.TransitionStyles,
		"voices":           domain.Voices,
		"captionPositions": domain.CaptionPositions,
		"fontSizes":        domain.FontSizes,
		"writingStyles":    domain.WritingStyles,
		"artStyles":        domain.ArtStyles,
	})
}

func (p *productionsController) RegisterRoutes(g *gin.Engine) {
	g.POST("/productions/generate", middleware.SSEMiddleware(), p.GenerateProduction)
	g.POST("/productions/scenes/split", p.SplitScene)
	g.POST("/productions/scenes/image", p.RegenerateImage)
	g.POST("/productions/scenes/audio", p.RegenerateAudio)
	g.GET("/options", p.GetOptions)
}
