package main

import (
	"context"
	"os"
	"strconv"

	"listingdesk/cmd/internal/domain/policy"
	"listingdesk/cmd/internal/domain/sqlite"
	"listingdesk/cmd/internal/domain/sqlite/repository"
	handler2 "listingdesk/cmd/internal/http/handler"
	authmw "listingdesk/cmd/internal/http/middleware"
	"listingdesk/cmd/internal/infrastructure/aws/storage"
	"listingdesk/cmd/internal/infrastructure/aws/websocket"
	"listingdesk/cmd/internal/infrastructure/mongodb"
	"listingdesk/cmd/internal/service"
	"listingdesk/cmd/internal/service/jobs"
	"listingdesk/cmd/internal/utils"
	"listingdesk/cmd/internal/utils/uid"
	"listingdesk/cmd/internal/utils/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/listingdesk/prod/"

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	uid.Init(machineID())

	if err := utils.InitJWKS(os.Getenv("JWKS_URL")); err != nil {
		panic(err)
	}

	ctx := context.Background()

	// Init SQLite (users + websocket connections)
	db, err := sqlite.Init()
	if err != nil {
		panic(err)
	}

	// Init the listings document store
	store, err := mongodb.Connect(ctx, os.Getenv("MONGO_URI"), os.Getenv("MONGO_DATABASE"))
	if err != nil {
		panic(err)
	}

	// Init S3 client
	blobClient, err := storage.NewStorageClient(ctx)
	if err != nil {
		panic(err)
	}

	// Init the websocket push gateway
	gateway, err := websocket.NewAWSGatewayClient(ctx, os.Getenv("WS_API_ENDPOINT"), os.Getenv("AWS_S3_REGION"))
	if err != nil {
		panic(err)
	}

	// Gettings repos
	userRepo := repository.NewUserRepository(db)
	connRepo := repository.NewConnectionRepository(db)

	// Getting services
	listingPolicy := policy.NewListingPolicy()
	userService := service.NewUserService(userRepo, validate)
	wsService := service.NewWebSocketService(connRepo, gateway)
	listingService := service.NewListingService(store, listingPolicy, wsService)
	uploadService := service.NewUploadService(blobClient, listingPolicy, validate)

	// Gettings handler
	listingRoutes := handler2.NewListingDefault(listingService)
	uploadRoutes := handler2.NewUploadDefault(uploadService)
	userRoutes := handler2.NewUserDefault(userService)
	wsRoutes := handler2.NewWSDefault(wsService)

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("30M"))

	auth := authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{Resolver: userService})

	// Listings
	e.GET("/api/listings", listingRoutes.GetListings, auth)
	e.GET("/api/listings/:id", listingRoutes.GetListing, auth)
	e.POST("/api/listings/drafts", listingRoutes.SaveDraft, auth)
	e.POST("/api/listings/submissions", listingRoutes.Submit, auth)
	e.PATCH("/api/listings/:id", listingRoutes.UpdateListing, auth)
	e.POST("/api/listings/:id/archive", listingRoutes.ArchiveListing, auth)
	e.DELETE("/api/listings/:id", listingRoutes.DeleteListing, auth)

	// Asset uploads
	e.POST("/api/uploads/images", uploadRoutes.UploadImage, auth)
	e.POST("/api/uploads/documents", uploadRoutes.UploadDocument, auth)
	e.DELETE("/api/uploads/images", uploadRoutes.DeleteImage, auth)
	e.DELETE("/api/uploads/documents", uploadRoutes.DeleteDocument, auth)

	// Users
	e.GET("/api/users/:id", userRoutes.GetUser, auth)
	e.PATCH("/api/users/:id", userRoutes.UpdateUser, auth)

	// Websocket lifecycle callbacks from API Gateway
	e.POST("/api/ws/connect", wsRoutes.HandleConnect, auth)
	e.POST("/api/ws/disconnect", wsRoutes.HandleDisconnect)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	// Drops websocket connections whose token expired or heartbeat went silent
	cleaner := jobs.NewConnectionCleaner(wsService)
	go cleaner.Start(ctx)

	if err := e.Start(":7070"); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
	_ = validate.RegisterValidation("listingtype", validators.ListingType)
}

func machineID() int64 {
	raw := os.Getenv("MACHINE_ID")
	if raw == "" {
		return 1
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Fatalf("invalid MACHINE_ID %q: %v", raw, err)
	}
	return id
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
