package api

import (
	"context"
	"fmt"
	"os"

	"github.com/arturoCrisanto/tabulator/api/controllers"
	"github.com/arturoCrisanto/tabulator/api/transport"
	"github.com/arturoCrisanto/tabulator/logging"
	"github.com/arturoCrisanto/tabulator/storage"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	r := transport.NewRouter(gin.DebugMode)

	// Create storage
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logging.Log.Errorf("failed to load AWS config: %v", err)
		panic("failed to load AWS config")
	}

	dynamoClient := dynamodb.NewFromConfig(cfg)

	voteStorage := &storage.DynamoVoteStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameVotes,
	}
	eventStorage := &storage.DynamoEventStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameEvents,
	}
	categoryStorage := &storage.DynamoCategoryStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameCategories,
	}
	candidateStorage := &storage.DynamoCandidateStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameCandidates,
	}
	judgeStorage := &storage.DynamoJudgeStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameJudges,
	}

	//Register controllers
	votingController := controllers.NewVotingController(voteStorage, eventStorage, categoryStorage, candidateStorage, judgeStorage)
	votingController.RegisterRoutes(r)
	eventController := controllers.NewEventController(eventStorage, categoryStorage, candidateStorage, judgeStorage, voteStorage)
	eventController.RegisterRoutes(r)
	categoryController := controllers.NewCategoryController(categoryStorage, eventStorage, voteStorage)
	categoryController.RegisterRoutes(r)
	candidateController := controllers.NewCandidateController(candidateStorage, eventStorage, voteStorage)
	candidateController.RegisterRoutes(r)
	judgeController := controllers.NewJudgeController(judgeStorage, eventStorage, voteStorage)
	judgeController.RegisterRoutes(r)
	adminController := controllers.NewAdminController(eventStorage, categoryStorage, candidateStorage, judgeStorage, voteStorage)
	adminController.RegisterRoutes(r)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// startLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// startLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
