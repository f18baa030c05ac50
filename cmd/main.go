package main

import (
	"fmt"
	"os"
	"story-production-api/application/services"
	"story-production-api/backoff"
	"story-production-api/config"
	"story-production-api/infrastructure/adapters"
	"story-production-api/infrastructure/gin_interface/controllers"
	"story-production-api/middleware"
	mockgenerator "story-production-api/mock"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	geminiConfig, err := config.GetGeminiConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get gemini config")
	}

	pipelineConfig, err := config.GetPipelineConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get pipeline config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	dynamoConfig, err := config.GetDynamoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dynamo config")
	}

	authConfig, err := config.GetAuthConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get auth config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	s3Client := s3.New(sess)
	dynamoClient := dynamodb.New(sess)

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	textGenerator := adapters.NewGeminiTextGenerator(contentFetcher, geminiConfig, zeroLogger)
	imageGenerator := adapters.NewGeminiImageGenerator(contentFetcher, geminiConfig, zeroLogger)
	speechGenerator := adapters.NewGeminiSpeechGenerator(contentFetcher, geminiConfig, zeroLogger)

	identityGateway := adapters.NewIdentityGateway(contentFetcher, authConfig, zeroLogger)

	projectStore := adapters.NewDynamoProjectStore(zeroLogger, dynamoClient, dynamoConfig)

	showcasePublisher := adapters.NewS3ShowcasePublisher(zeroLogger, s3Client, s3Config)

	retry := backoff.Config{
		MaxRetries:   pipelineConfig.MaxRetries,
		InitialDelay: pipelineConfig.InitialDelay,
	}

	scriptGenerator := services.NewScriptGenerator(zeroLogger, textGenerator, retry)

	sceneMediaSynthesizer := services.NewSceneMediaSynthesizer(zeroLogger, imageGenerator, speechGenerator, workerPool, retry)

	sceneSplitter := services.NewSceneSplitter(zeroLogger, textGenerator, sceneMediaSynthesizer, retry, pipelineConfig.SplitDelay)

	productionPipeline := services.NewProductionPipeline(zeroLogger, workerPool, scriptGenerator, sceneMediaSynthesizer, pipelineConfig.SceneDelay)

	productionsController := controllers.NewProductionsController(zeroLogger, productionPipeline, sceneMediaSynthesizer, sceneSplitter)
	projectsController := controllers.NewProjectsController(zeroLogger, projectStore, showcasePublisher)
	authController := controllers.NewAuthController(zeroLogger, identityGateway)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	authHandler, err := middleware.NewAuthHandler(authConfig.JwksUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth handler!")
	}

	router.Use(authHandler.AuthMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if os.Getenv("MOCK_MODE") == "true" {
		mockgenerator.Init(router, workerPool, zeroLogger)
	}

	productionsController.RegisterRoutes(router)
	projectsController.RegisterRoutes(router)
	authController.RegisterRoutes(router)

	err = router.Run(":8080")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
