package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"boardshelf/internal/adapter/api"
	"boardshelf/internal/adapter/api/handler"
	apimiddleware "boardshelf/internal/adapter/api/middleware"
	"boardshelf/internal/adapter/api/router"
	"boardshelf/internal/adapter/repository"
	"boardshelf/internal/domain/entity"
	domainrepo "boardshelf/internal/domain/repository"
	"boardshelf/internal/infrastructure/localkv"
	"boardshelf/internal/infrastructure/websocket"
	"boardshelf/internal/usecase"
	"boardshelf/pkg/config"
	"boardshelf/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var (
		schemaRepo     domainrepo.SchemaRepository
		recordRepo     domainrepo.RecordRepository
		authMiddleware *apimiddleware.AuthMiddleware
	)

	switch cfg.StorageBackend {
	case "firestore":
		var opt option.ClientOption
		if cfg.ServiceAccountJSON != "" {
			log.Printf("Using Firebase service account from environment variable")
			opt = option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON))
		} else {
			serviceAccountPath := cfg.ServiceAccountPath
			if serviceAccountPath == "" {
				serviceAccountPath = "./service-account.json"
			}
			if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
				log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
			}
			log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
			opt = option.WithCredentialsFile(serviceAccountPath)
		}

		firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}

		authClient, err := firebaseApp.Auth(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase Auth: %v", err)
		}
		authMiddleware = apimiddleware.NewAuthMiddleware(authClient)

		firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		schemaRepo = repository.NewFirestoreSchemaRepository(firestoreClient)
		recordRepo = repository.NewFirestoreRecordRepository(firestoreClient)

	case "local":
		store, err := localkv.NewStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to open local store: %v", err)
		}
		schemaRepo = repository.NewLocalSchemaRepository(store)
		recordRepo = repository.NewLocalRecordRepository(store)

	default:
		log.Fatalf("Unknown storage backend: %s", cfg.StorageBackend)
	}

	schemaUseCase := usecase.NewSchemaUseCase(schemaRepo, nil)
	recordUseCase := usecase.NewRecordUseCase(recordRepo, schemaUseCase, nil)

	handler.Setup(schemaUseCase, recordUseCase)
	handler.SetupHealthHandler()

	hub := websocket.NewHub()
	hub.Start(ctx)

	// Fan record-collection changes out to connected admin UIs. Each
	// notification carries the whole list.
	release, err := recordUseCase.Subscribe(ctx, func(records []*entity.Record) {
		if records == nil {
			records = []*entity.Record{}
		}
		payload, err := json.Marshal(records)
		if err != nil {
			logger.Error("Failed to serialize record feed: %v", err)
			return
		}
		hub.Broadcast(payload)
	})
	if err != nil {
		log.Fatalf("Failed to subscribe to record changes: %v", err)
	}
	defer release()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	wsHandler := handler.NewWebSocketHandler(hub)

	router.Setup(e, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	logger.Info("Starting server on port %s (backend: %s)", cfg.ServerPort, cfg.StorageBackend)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
