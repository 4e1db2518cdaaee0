package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sukalov/lyricplayer/internal/config"
	"github.com/sukalov/lyricplayer/internal/logger"
	"github.com/sukalov/lyricplayer/internal/lyrics"
)

func main() {
	var outputFile string

	flag.StringVar(&outputFile, "output", "", "Output lyric sheet (default <song>.txt)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <URL>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "Example: %s https://123.amdm.ru/akkordi/mihail_krug/102195/vladimirskiy_tsentral/\n", os.Args[0])
		os.Exit(1)
	}

	url := args[0]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	song, err := lyrics.NewService(nil, cfg.LinePause).ExtractLyrics(ctx, url)
	if err != nil {
		logger.Error(fmt.Sprintf("Error extracting lyrics\nURL: %s\nError: %v", url, err))
		log.Fatalf("Error extracting lyrics: %v", err)
	}

	if outputFile == "" {
		outputFile = song.ID + ".txt"
	}

	f, err := os.Create(outputFile)
	if err != nil {
		log.Fatalf("Error creating file: %v", err)
	}
	if err := lyrics.WriteSheet(f, song); err != nil {
		f.Close()
		log.Fatalf("Error saving file: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Error saving file: %v", err)
	}

	logger.Success(fmt.Sprintf("Lyrics extraction completed successfully\nURL: %s\nOutput: %s\nLines: %d", url, outputFile, len(song.Lines)))
	fmt.Printf("Lyric sheet saved to: %s (play it with: lyricplayer -file %s)\n", outputFile, outputFile)
}
