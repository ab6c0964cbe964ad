package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	assets := flag.String("assets", "assets", "Directory containing texture images")
	flag.Parse()

	webServer := server.NewServer(*port, *assets)

	log.Printf("Path Tracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=cornell-box&samples=16", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
