package main

import (
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"art-critique-service/conf"
	"art-critique-service/pinning"

	"github.com/schollz/progressbar/v3"
)

// pinbatch pins every file in a directory to the pinning service and
// prints fileName -> CID pairs, for seeding a gallery with existing assets.

var (
	ENV    string
	dir    string
	author string
)

func init() {
	flag.StringVar(&ENV, "env", "mainnet", "Environment: loc/mainnet/testnet")
	flag.StringVar(&dir, "dir", "", "Directory of asset files to pin")
	flag.StringVar(&author, "author", "", "Author principal recorded in pin metadata")
}

func main() {
	flag.Parse()

	if dir == "" {
		log.Fatal("missing -dir: directory of asset files to pin")
	}

	initEnv()
	if err := conf.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	files, err := collectFiles(dir)
	if err != nil {
		log.Fatalf("Failed to list files: %v", err)
	}
	if len(files) == 0 {
		log.Printf("No files found in %s", dir)
		return
	}

	client := pinning.NewClient()

	bar := progressbar.NewOptions64(
		int64(len(files)),
		progressbar.OptionSetDescription("Pinning assets"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)

	var failed int
	for _, path := range files {
		cid, err := pinOne(client, path)
		if err != nil {
			failed++
			log.Printf("\nFailed to pin %s: %v", path, err)
		} else {
			fmt.Printf("\n%s -> %s\n", filepath.Base(path), cid)
		}
		bar.Add(1)
	}

	fmt.Printf("\nPinned %d/%d files\n", len(files)-failed, len(files))
	if failed > 0 {
		os.Exit(1)
	}
}

func initEnv() {
	if ENV == "loc" {
		conf.SystemEnvironmentEnum = conf.LocalEnvironmentEnum
	} else if ENV == "mainnet" {
		conf.SystemEnvironmentEnum = conf.MainnetEnvironmentEnum
	} else if ENV == "testnet" {
		conf.SystemEnvironmentEnum = conf.TestnetEnvironmentEnum
	} else if ENV == "example" {
		conf.SystemEnvironmentEnum = conf.ExampleEnvironmentEnum
	}
}

// collectFiles list regular files directly under dir, skipping dotfiles
func collectFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

func pinOne(client *pinning.Client, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	metadata := map[string]string{
		"mimeType": mime.TypeByExtension(filepath.Ext(path)),
	}
	if author != "" {
		metadata["author"] = author
	}

	return client.PinFile(filepath.Base(path), f, metadata)
}
