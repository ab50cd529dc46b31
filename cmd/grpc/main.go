package main

import (
	"context"
	"inventory/infra/grpc"
	"inventory/infra/sqldb"
	"inventory/pkg/config"
	"inventory/pkg/logger"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	appConfig := config.Read()
	log := logger.Init(appConfig.IsProduction())
	defer log.Sync()

	zap.L().Info("Inventory gRPC Service starting...")

	grpcServer, err := grpc.NewServer(appConfig)
	if err != nil {
		zap.L().Fatal("failed to create grpc server", zap.Error(err))
	}

	repository, err := sqldb.NewRepository(appConfig)
	if err != nil {
		zap.L().Fatal("Failed to open database", zap.Error(err))
	}
	defer repository.Close()

	if err := repository.Migrate(context.Background()); err != nil {
		zap.L().Fatal("Failed to create schema", zap.Error(err))
	}

	grpc.RegisterInventoryServiceServer(grpcServer.GetGRPCServer(), grpc.NewInventoryServiceServer(repository))
	grpcServer.SetServing(grpc.InventoryServiceName)

	zap.L().Info("starting gRPC server...", zap.String("port", appConfig.GRPCPort))
	go func() {
		if err := grpcServer.Start(); err != nil {
			zap.L().Error("failed to start grpc server", zap.Error(err))
			os.Exit(1)
		}
	}()

	gracefulShutdown(grpcServer)
}

func gracefulShutdown(grpcServer *grpc.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("Shutting down server...")

	grpcServer.GracefulStop()

	zap.L().Info("Server gracefully stopped")
}
