package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gotlim/examdb"
	"github.com/gotlim/examdb/core"
	"github.com/gotlim/examdb/ps"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	port := flag.Int("port", 3939, "TCP port to listen on")
	dbName := flag.String("d", "", "name of the database to serve (required)")
	withHistory := flag.Bool("history", false, "attach the local snapshot history; enables the snapshot op")
	jwtSecret := flag.String("secret", "", "HS256 shared secret; enables JWT auth when set")
	issuer := flag.String("issuer", "", "expected iss claim (optional)")
	showVersion := flag.Bool("version", false, "show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("examdb server v%s\n", Version)
		return
	}

	if *dbName == "" {
		fmt.Fprintln(os.Stderr, "examdb-server: -d NAME is required")
		os.Exit(1)
	}

	instance, err := examdb.Open(*dbName + ".db")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer instance.Close()

	if *withHistory {
		history, err := ps.NewFilePersistence(*dbName + ".history")
		if err != nil {
			log.Fatalf("Failed to open snapshot history: %v", err)
		}
		instance.WithHistory(&history)
	}

	var authConfig *AuthConfig
	if *jwtSecret != "" {
		authConfig = &AuthConfig{
			Enabled:   true,
			JWTSecret: *jwtSecret,
			Issuer:    *issuer,
		}
	}

	identity := core.Identity{
		Name:  "examdb server",
		Email: "server@examdb.local",
	}

	server := NewServer(instance, identity, authConfig)
	addr := fmt.Sprintf(":%d", *port)

	if err := server.Start(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	fmt.Printf("Serving %s.db on port %d\n", *dbName, *port)
	fmt.Println("Send one JSON request per line, close the connection to disconnect")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	server.Stop()
	log.Println("Server stopped")
}
