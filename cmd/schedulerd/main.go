package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/cookiefied/processscheduler/rpc"
	"github.com/cookiefied/processscheduler/scheduler"
	"github.com/cookiefied/processscheduler/server"
)

func main() {
	httpAddr := getEnv("HTTP_ADDR", ":8080")
	grpcAddr := getEnv("GRPC_ADDR", ":9090")
	strict := getEnv("STRICT_INVARIANTS", "") == "true"

	opts := []scheduler.SetOption{scheduler.WithStrictInvariants(strict)}

	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Fatalf("[schedulerd] Failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer()
	rpc.Register(grpcServer, rpc.NewServer(opts...))

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           server.New(server.NewAPI(opts...)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("[schedulerd] HTTP server listening on %s", httpAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[schedulerd] HTTP server failed: %v", err)
		}
	}()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		log.Printf("[schedulerd] Shutting down gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Printf("[schedulerd] HTTP shutdown: %v", err)
		}
		grpcServer.GracefulStop()
	}()

	log.Printf("[schedulerd] gRPC server listening on %s", grpcAddr)
	if err := grpcServer.Serve(lis); err != nil {
		log.Fatalf("[schedulerd] Failed to serve: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
