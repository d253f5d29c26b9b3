package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/gin-gonic/gin"
	"github.com/gomcpgo/cloud_ai/pkg/client"
	"github.com/gomcpgo/cloud_ai/pkg/config"
	"github.com/gomcpgo/cloud_ai/pkg/feedback"
	"github.com/gomcpgo/cloud_ai/pkg/handler"
	"github.com/gomcpgo/cloud_ai/pkg/prompts"
	"github.com/gomcpgo/cloud_ai/pkg/storage"
	"go.uber.org/zap"
)

// Version information (set by build script)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
)

// apiHandlerName runs every route behind a single function
const apiHandlerName = "api"

// CloudAIServer holds the process-wide clients built once at start
type CloudAIServer struct {
	config  *config.Config
	logger  *zap.Logger
	handler *handler.CloudAIHandler
	local   *storage.LocalStore
	closers []func() error
}

// NewCloudAIServer loads configuration and builds every backend
func NewCloudAIServer(ctx context.Context) (*CloudAIServer, error) {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	catalog, err := prompts.Load(cfg.PromptTemplatesFile)
	if err != nil {
		return nil, err
	}

	awsCfg, err := cfg.LoadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	s := &CloudAIServer{config: cfg, logger: logger}
	deps := handler.Dependencies{
		Client:     client.NewBedrockClient(awsCfg, logger),
		Prompts:    catalog,
		PresignTTL: cfg.PresignTTL,
		Logger:     logger,
	}

	switch {
	case cfg.UsesS3():
		deps.Store = storage.NewS3Store(awsCfg, cfg.BucketName, cfg.ListPageSize)
		logger.Info("Using S3 image store", zap.String("bucket", cfg.BucketName))
	case cfg.LocalImagesRoot != "":
		local, err := storage.NewLocalStore(cfg.LocalImagesRoot, cfg.LocalPublicURL, []byte(cfg.LocalSigningKey), cfg.ListPageSize)
		if err != nil {
			return nil, err
		}
		deps.Store = local
		s.local = local
		logger.Info("Using local image store", zap.String("root", cfg.LocalImagesRoot))
	default:
		logger.Warn("No image store configured; generate-image and list-images will fail")
	}

	switch {
	case cfg.UsesDynamoDB():
		deps.Recorder = feedback.NewDynamoRecorder(awsCfg, cfg.TableName)
		logger.Info("Using DynamoDB feedback table", zap.String("table", cfg.TableName))
	case cfg.FeedbackDBPath != "":
		rec, err := feedback.NewSQLiteRecorder(cfg.FeedbackDBPath)
		if err != nil {
			return nil, err
		}
		deps.Recorder = rec
		s.closers = append(s.closers, rec.Close)
		logger.Info("Using SQLite feedback store", zap.String("path", cfg.FeedbackDBPath))
	default:
		logger.Warn("No feedback store configured; generate-description will fail")
	}

	h, err := handler.NewCloudAIHandler(deps)
	if err != nil {
		return nil, err
	}
	s.handler = h
	return s, nil
}

// Close releases local resources and flushes the logger
func (s *CloudAIServer) Close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			s.logger.Warn("Close failed", zap.Error(err))
		}
	}
	_ = s.logger.Sync()
}

// router builds the gin engine for serve mode and the api function
func (s *CloudAIServer) router() *gin.Engine {
	if !s.config.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	return s.handler.Router(s.local)
}

// startLambda hands the selected function to the Lambda runtime
func (s *CloudAIServer) startLambda(name string) error {
	if name == apiHandlerName {
		adapter := httpadapter.New(s.router())
		s.logger.Info("Starting Lambda API function")
		lambda.Start(adapter.ProxyWithContext)
		return nil
	}

	fn, err := s.handler.Handle(name)
	if err != nil {
		return err
	}
	s.logger.Info("Starting Lambda function", zap.String("handler", name))
	lambda.Start(fn)
	return nil
}

// serve runs the HTTP API until the server fails
func (s *CloudAIServer) serve() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.config.ListenAddr))
	srv := &http.Server{
		Addr:    s.config.ListenAddr,
		Handler: s.router(),
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func listHandlers() {
	fmt.Println("Available handlers:")
	for _, name := range handler.Names() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Printf("  %s (all routes behind one function, Lambda only)\n", apiHandlerName)
}

func main() {
	// Parse command line flags
	var (
		versionFlag bool
		lambdaFlag  bool
		serveFlag   bool
		listFlag    bool
		handlerName string
		invokeName  string
		bodyPath    string
	)

	flag.BoolVar(&versionFlag, "version", false, "Show version information")
	flag.BoolVar(&lambdaFlag, "lambda", false, "Run as an AWS Lambda function (default when AWS_LAMBDA_RUNTIME_API is set)")
	flag.BoolVar(&serveFlag, "serve", false, "Run the HTTP API on LISTEN_ADDR")
	flag.BoolVar(&listFlag, "list", false, "List available handlers")
	flag.StringVar(&handlerName, "handler", "", "Lambda handler to run (overrides HANDLER_NAME)")
	flag.StringVar(&invokeName, "invoke", "", "Invoke a handler once and print the response (e.g., -invoke generate-article)")
	flag.StringVar(&bodyPath, "body", "-", "Request body file for -invoke, or - for stdin")
	flag.Parse()

	if versionFlag {
		fmt.Printf("Cloud AI Handlers\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		return
	}

	if listFlag {
		listHandlers()
		return
	}

	ctx := context.Background()
	server, err := NewCloudAIServer(ctx)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer server.Close()

	switch {
	case invokeName != "":
		if err := runInvoke(ctx, server, invokeName, bodyPath); err != nil {
			fmt.Printf("❌ Error: %v\n", err)
			server.Close()
			os.Exit(1)
		}

	case lambdaFlag || os.Getenv("AWS_LAMBDA_RUNTIME_API") != "":
		name := handlerName
		if name == "" {
			name = server.config.HandlerName
		}
		if name == "" {
			name = apiHandlerName
		}
		if err := server.startLambda(name); err != nil {
			server.logger.Fatal("Lambda start failed", zap.Error(err))
		}

	case serveFlag:
		if err := server.serve(); err != nil {
			server.logger.Fatal("Server error", zap.Error(err))
		}

	default:
		fmt.Println("Nothing to do: use -serve, -lambda, -invoke <handler> or -list")
		flag.Usage()
		server.Close()
		os.Exit(2)
	}
}
