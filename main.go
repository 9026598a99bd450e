package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/USBABC1/v60/config"
	"github.com/USBABC1/v60/controller"
	"github.com/USBABC1/v60/dao"
	"github.com/USBABC1/v60/logic"
	"github.com/USBABC1/v60/middleware"
	"github.com/USBABC1/v60/models"
	"github.com/USBABC1/v60/pkg"
)

func main() {
	// Initialize config
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run main.go <config.yaml>")
	}
	configFile := os.Args[1]
	if err := config.LoadConfig(configFile); err != nil {
		log.Fatalf("Failed to load config from %s: %v", configFile, err)
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize database
	db, err := gorm.Open(postgres.Open(config.GlobalConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Message{},
		&models.SavedConversation{},
		&models.Campaign{},
		&models.DailyMetric{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Chat client
	chatClient := pkg.NewChatClient(
		config.GlobalConfig.Chat.APIKey,
		config.GlobalConfig.Chat.BaseURL,
		time.Duration(config.GlobalConfig.Chat.TimeoutSeconds)*time.Second,
	)

	// Initialize DAOs
	messageDAO := dao.NewMessageDAO(db)
	savedConvoDAO := dao.NewSavedConversationDAO(db)
	campaignDAO := dao.NewCampaignDAO(db)
	metricDAO := dao.NewMetricDAO(db)

	// Initialize tool registry
	registry := logic.NewToolRegistry(logger)
	tools := []logic.Tool{
		logic.NewNavigateTool(),
		logic.NewListCampaignsTool(campaignDAO),
		logic.NewGetCampaignDetailsTool(campaignDAO, metricDAO, logger),
		logic.NewCreateCampaignTool(campaignDAO),
		logic.NewModifyCampaignTool(campaignDAO),
	}
	for _, tool := range tools {
		if err := registry.Register(tool); err != nil {
			log.Fatalf("Failed to register tool: %v", err)
		}
	}

	// Initialize Logics
	agentLogic := logic.NewAgentLogic(
		messageDAO,
		chatClient,
		registry,
		logger,
		config.GlobalConfig.Chat.Model,
		config.GlobalConfig.Chat.MaxHistory,
	)
	historyLogic := logic.NewHistoryLogic(messageDAO, savedConvoDAO, logger)
	snapshotLogic := logic.NewSnapshotLogic(savedConvoDAO)

	// Initialize Controllers
	agentCtrl := controller.NewAgentController(agentLogic)
	historyCtrl := controller.NewHistoryController(historyLogic)
	snapshotCtrl := controller.NewSnapshotController(snapshotLogic)

	// Setup Gin router
	r := gin.Default()
	r.POST("/conversation/message", agentCtrl.HandleMessage)
	r.GET("/conversation/history", historyCtrl.GetHistory)
	r.DELETE("/conversation/history", historyCtrl.DeleteHistory)
	r.POST("/snapshots", middleware.Auth, snapshotCtrl.Save)
	r.GET("/snapshots", middleware.Auth, snapshotCtrl.List)
	r.POST("/snapshots/load", middleware.Auth, snapshotCtrl.Load)
	r.DELETE("/snapshots", middleware.Auth, snapshotCtrl.Delete)

	// Run server
	if err := r.Run(fmt.Sprintf(":%d", config.GlobalConfig.Server.Port)); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
