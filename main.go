package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tube-chat/infrastructure/cache"
	captionsclient "tube-chat/infrastructure/clients/captions"
	geminiclient "tube-chat/infrastructure/clients/gemini"
	youtubeclient "tube-chat/infrastructure/clients/youtube"
	"tube-chat/infrastructure/configuration"
	"tube-chat/infrastructure/logger"
	"tube-chat/infrastructure/ratelimit"
	httpHandler "tube-chat/interfaces/http"
	"tube-chat/server"
	"tube-chat/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	metadataLimiter := ratelimit.NewSlidingWindow(
		"metadata",
		configuration.C.RateLimit.Metadata.MaxRequests,
		time.Duration(configuration.C.RateLimit.Metadata.WindowSeconds)*time.Second,
	)
	transcriptLimiter := ratelimit.NewSlidingWindow(
		"transcript",
		configuration.C.RateLimit.Transcript.MaxRequests,
		time.Duration(configuration.C.RateLimit.Transcript.WindowSeconds)*time.Second,
	)

	transcriptCache := cache.NewTranscriptCache(
		configuration.C.Cache.Capacity,
		time.Duration(configuration.C.Cache.TTLHours)*time.Hour,
	)

	youtubeConfig := configuration.GetYouTubeConfig()
	logger.GetLogger().WithFields(map[string]interface{}{
		"hasAPIKey":       youtubeConfig.APIKey != "",
		"hasAccessToken":  youtubeConfig.AccessToken != "",
		"hasRefreshToken": youtubeConfig.RefreshToken != "",
		"clientIDSet":     youtubeConfig.ClientID != "",
	}).Info("Loaded YouTube configuration state")

	metadataClient, err := youtubeclient.NewMetadataClient(ctx, &youtubeclient.Config{
		ClientID:     youtubeConfig.ClientID,
		ClientSecret: youtubeConfig.ClientSecret,
		RedirectURL:  youtubeConfig.RedirectURL,
		AccessToken:  youtubeConfig.AccessToken,
		RefreshToken: youtubeConfig.RefreshToken,
		APIKey:       youtubeConfig.APIKey,
	}, metadataLimiter)
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Failed to initialize YouTube metadata client")
	}

	captionsClient := captionsclient.NewCaptionsClient(transcriptLimiter)

	geminiConfig := configuration.GetGeminiConfig()
	if geminiConfig.APIKey == "" {
		logger.GetLogger().Fatal("GEMINI_API_KEY is required")
	}
	generator, err := geminiclient.NewGenerator(ctx, geminiConfig.APIKey, geminiConfig.Model, geminiConfig.RequestsPerMinute)
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Failed to initialize text generator")
	}

	extractor := usecase.NewTranscriptExtractor(metadataClient, captionsClient, transcriptCache)
	agent := usecase.NewTranscriptAgent(extractor, generator)

	chatHandler := httpHandler.NewChatHandler(agent)
	transcriptHandler := httpHandler.NewTranscriptHandler(extractor, transcriptCache, metadataLimiter, transcriptLimiter)
	healthHandler := httpHandler.NewHealthHandler()

	router := server.InitiateRouter(chatHandler, transcriptHandler, healthHandler)

	// Periodic sweep keeps memory bounded between natural evictions.
	g.Go(func() error {
		ticker := time.NewTicker(time.Duration(configuration.C.Cache.SweepIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if removed := transcriptCache.ClearExpired(); removed > 0 {
					logger.GetLogger().WithField("removed", removed).Info("Expired transcripts cleared from cache")
				}
			}
		}
	})

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      router,
			ReadTimeout:  0,
			WriteTimeout: 0,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Interrupt signal received")
		break
	case <-ctx.Done():
		break
	}

	cancel()

	if err := generator.Close(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while closing text generator")
	}

	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while shutting down HTTP server")
		}
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Application stopped with error")
	}
	logger.GetLogger().Info("Application stopped")
}
