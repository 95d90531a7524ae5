package main

import (
	"flag"
	"log"
	"net/http"
	"os"
)

func main() {
	addr := flag.String("addr", DefaultAddr, "listen address")
	levelPath := flag.String("level", DefaultLevelPath, "TMX level file")
	dbPath := flag.String("db", DefaultDBPath, "sqlite database for trial times")
	flag.Parse()

	// Load the level and index its obstacles
	level, err := LoadLevel(os.DirFS("."), *levelPath)
	if err != nil {
		log.Fatalf("Error loading level: %v", err)
	}
	engine, err := level.BuildEngine(PlayerHalfWidth, PlayerHalfDepth, GridCellSize)
	if err != nil {
		log.Fatalf("Error building collision index: %v", err)
	}
	log.Printf("Loaded level %s (%.0fx%.0f, %d obstacles)",
		level.Name, level.Width, level.Height, len(engine.Obstacles()))

	// Open trial persistence
	store, err := NewStore(*dbPath)
	if err != nil {
		log.Fatalf("Error opening store: %v", err)
	}
	defer store.Close()

	// Create the game world and start the loops
	world := NewWorld(level, engine, NewTrialBoard(store))
	world.Start()

	// Setup HTTP routes
	http.HandleFunc("/ws", HandleWebSocket(world))
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	log.Printf("Mazebound server listening on %s", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatal("Server error:", err)
	}
}
