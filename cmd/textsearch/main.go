// Command textsearch builds an in-memory full-text index over a directory of .txt files and
// answers one of three query modes (search, autocomplete, prefixsearch), or serves the same
// three modes over HTTP when --serve is given.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/kestrelsearch/textsearch/config"
	"github.com/kestrelsearch/textsearch/internal/engine"
	internalErrors "github.com/kestrelsearch/textsearch/internal/errors"
	"github.com/kestrelsearch/textsearch/internal/indexing"
	"github.com/kestrelsearch/textsearch/services"
	"github.com/kestrelsearch/textsearch/transport/httpapi"
)

const version = "textsearch v1.0.0"

func main() {
	var (
		help         = flag.Bool("help", false, "Show help message")
		showVersion  = flag.Bool("version", false, "Show version information")
		dataDir      = flag.String("data-dir", "./Data", "Directory of .txt files to index")
		configPath   = flag.String("config", "", "Optional YAML file overriding engine resource bounds")
		searchQuery  = flag.String("search", "", "Run a keyword search and print the ranked results")
		autocomplete = flag.String("autocomplete", "", "Run an autocomplete lookup for a prefix")
		prefixSearch = flag.String("prefixsearch", "", "Run a prefix-expanded search")
		topK         = flag.Int("topK", 10, "Page size for search and prefixsearch")
		limit        = flag.Int("limit", 10, "Maximum autocomplete suggestions")
		expandLimit  = flag.Int("expandLimit", 100, "Maximum completions considered by prefixsearch")
		page         = flag.Int("page", 1, "Page number for search and prefixsearch")
		serve        = flag.Bool("serve", false, "Serve the three query modes over HTTP instead of exiting")
		port         = flag.String("port", "8080", "Port to listen on when --serve is given")
	)
	flag.Parse()

	if *help {
		printHelp()
		return
	}
	if *showVersion {
		fmt.Println(version)
		return
	}

	settings := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadEngineSettings(*configPath)
		if err != nil {
			writeError(err)
			os.Exit(1)
		}
		settings = loaded
	}

	eng := engine.New(settings)
	result, err := buildFromDataDir(eng, *dataDir)
	if err != nil {
		writeError(err)
		os.Exit(1)
	}

	if *serve {
		runServer(eng, *port)
		return
	}

	output := dispatch(eng, *searchQuery, *autocomplete, *prefixSearch, *topK, *limit, *expandLimit, *page)
	printJSON(output)

	if result.DocumentsIndexed == 0 {
		os.Exit(1)
	}
}

func dispatch(eng *engine.Engine, search, autocomplete, prefixSearch string, topK, limit, expandLimit, page int) interface{} {
	switch {
	case search != "":
		return eng.Search(search, page, topK)
	case autocomplete != "":
		return eng.Autocomplete(autocomplete, limit)
	case prefixSearch != "":
		return eng.PrefixSearch(prefixSearch, expandLimit, page, topK)
	default:
		return eng.GetIndexStats()
	}
}

// buildFromDataDir scans dataDir for .txt files, reads each one, and hands the resulting
// InputFile list to the engine. Unreadable files are skipped with a logged diagnostic (§7.2);
// only a missing or non-directory dataDir surfaces as an error (§7.1).
func buildFromDataDir(eng *engine.Engine, dataDir string) (indexing.Result, error) {
	var scanner services.DirectoryScanner = osDirectoryScanner{}
	var reader services.FileReader = osFileReader{}

	paths, err := scanner.Scan(dataDir)
	if err != nil {
		return indexing.Result{}, err
	}

	var readErrors *multierror.Error
	files := make([]services.InputFile, 0, len(paths))
	for _, path := range paths {
		data, err := reader.Read(path)
		if err != nil {
			readErrors = multierror.Append(readErrors, fmt.Errorf("%s: %w", path, err))
			continue
		}
		files = append(files, services.InputFile{
			Name:     filepath.Base(path),
			Filepath: path,
			Data:     data,
		})
	}
	if readErrors != nil {
		log.Printf("textsearch: %v", readErrors)
	}

	result, err := eng.BuildFromFiles(dataDir, files)
	if err != nil {
		return indexing.Result{}, err
	}
	log.Printf("textsearch: indexed %d document(s) from %s", result.DocumentsIndexed, dataDir)
	return result, nil
}

func printHelp() {
	fmt.Println(version)
	fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println("\nExamples:")
	fmt.Printf("  %s --data-dir ./Data --search \"brown fox\"\n", os.Args[0])
	fmt.Printf("  %s --data-dir ./Data --autocomplete prog --limit 5\n", os.Args[0])
	fmt.Printf("  %s --data-dir ./Data --serve --port 9000\n", os.Args[0])
}

func printJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("textsearch: failed to encode output: %v", err)
	}
	fmt.Println(string(data))
}

func writeError(err error) {
	msg := err.Error()
	var dataDirErr *internalErrors.DataDirError
	if errors.As(err, &dataDirErr) {
		msg = dataDirErr.Error()
	}
	printJSON(services.ErrorResult{Error: msg})
}

func runServer(eng *engine.Engine, port string) {
	router := httpapi.NewRouter(eng)
	log.Printf("textsearch: serving on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("textsearch: server exited: %v", err)
	}
}
