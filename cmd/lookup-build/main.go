// Command lookup-build scans a directory of per-tile displacement series
// CSV files and writes the pid -> filename lookup database the viewer
// resolves series requests through.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/geohaz-data/ada.viewer/internal/lookup"
)

var (
	seriesDir = flag.String("series", "", "Directory of series CSV files")
	out       = flag.String("out", "", "Output lookup database path")
)

func main() {
	flag.Parse()
	if *seriesDir == "" || *out == "" {
		log.Fatal("both -series and -out are required")
	}

	entries, err := os.ReadDir(*seriesDir)
	if err != nil {
		log.Fatalf("failed to read series directory: %v", err)
	}

	pids := make(map[string]string)
	var files int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		n, err := collectPIDs(filepath.Join(*seriesDir, e.Name()), e.Name(), pids)
		if err != nil {
			log.Fatalf("failed to index %s: %v", e.Name(), err)
		}
		files++
		log.Printf("indexed %s: %d points", e.Name(), n)
	}
	if files == 0 {
		log.Fatalf("no CSV files found under %s", *seriesDir)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := lookup.Create(*out, pids); err != nil {
		log.Fatalf("failed to write lookup database: %v", err)
	}
	log.Printf("wrote %s: %d points across %d files", *out, len(pids), files)
}

// collectPIDs reads the pid column of one series file into dst, keyed to
// filename. A pid seen in two files keeps the later one and logs it.
func collectPIDs(path, filename string, dst map[string]string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	pidCol := -1
	for i, name := range header {
		if name == "pid" {
			pidCol = i
			break
		}
	}
	if pidCol < 0 {
		return 0, fmt.Errorf("no pid column in %s", filename)
	}

	var n int
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
		pid := rec[pidCol]
		if prev, ok := dst[pid]; ok && prev != filename {
			log.Printf("pid %s appears in both %s and %s; keeping %s", pid, prev, filename, filename)
		}
		dst[pid] = filename
		n++
	}
	return n, nil
}
