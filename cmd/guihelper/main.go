package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-guihelper/pkg/backends/htmlform"
	"github.com/goliatone/go-guihelper/pkg/backends/terminal"
	"github.com/goliatone/go-guihelper/pkg/builder"
	"github.com/goliatone/go-guihelper/pkg/config"
	"github.com/goliatone/go-guihelper/pkg/openapi"
)

type runner interface {
	Run(ctx context.Context, form *builder.Form) error
}

type documentRenderer interface {
	Render(form *builder.Form) ([]byte, error)
}

func main() {
	configPath := flag.String("config", "", "form configuration file (JSON or YAML)")
	openapiPath := flag.String("openapi", "", "OpenAPI document to import instead of -config")
	operationID := flag.String("operation", "", "operation ID when importing from -openapi")
	backendName := flag.String("backend", "terminal", "backend to use (terminal|htmlform)")
	dataPath := flag.String("data", "", "data file to prefill field values")
	output := flag.String("output", "", "output file (stdout if empty)")
	savePath := flag.String("save", "", "write submitted data to this file")
	withMetadata := flag.Bool("metadata", false, "include a _metadata block when saving data")
	validateOnly := flag.Bool("validate-only", false, "validate the configuration and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *openapiPath, *operationID)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *validateOnly {
		if violations := config.Validate(cfg); len(violations) > 0 {
			for _, violation := range violations {
				fmt.Fprintf(os.Stderr, "  - %s\n", violation)
			}
			log.Fatalf("Configuration invalid: %d violation(s)", len(violations))
		}
		fmt.Println("Configuration is valid")
		return
	}

	registry := builder.NewRegistry()
	registry.MustRegister(terminal.New())

	htmlBackend, err := htmlform.New()
	if err != nil {
		log.Fatalf("Failed to configure html backend: %v", err)
	}
	registry.MustRegister(htmlBackend)

	backend, err := registry.Get(*backendName)
	if err != nil {
		log.Fatalf("Unknown backend: %v", err)
	}

	form, err := builder.New(cfg, backend)
	if err != nil {
		log.Fatalf("Failed to build form: %v", err)
	}

	if *dataPath != "" {
		if !form.LoadDataInto(*dataPath) {
			log.Fatalf("Failed to load data file: %s", *dataPath)
		}
	}

	switch b := backend.(type) {
	case runner:
		runInteractive(b, form, *savePath, *withMetadata, *output)
	case documentRenderer:
		doc, err := b.Render(form)
		if err != nil {
			log.Fatalf("Failed to render form: %v", err)
		}
		writeOutput(*output, doc)
	default:
		log.Fatalf("Backend %q supports neither interactive nor document mode", backend.Name())
	}
}

func loadConfig(configPath, openapiPath, operationID string) (*config.GuiConfig, error) {
	switch {
	case configPath != "" && openapiPath != "":
		return nil, fmt.Errorf("-config and -openapi are mutually exclusive")
	case configPath != "":
		return config.NewLoader().LoadFile(configPath)
	case openapiPath != "":
		if operationID == "" {
			return nil, fmt.Errorf("-operation is required with -openapi")
		}
		ctx := context.Background()
		doc, err := openapi.LoadFile(ctx, openapiPath)
		if err != nil {
			return nil, err
		}
		return openapi.FromOperation(ctx, doc, operationID)
	default:
		return nil, fmt.Errorf("either -config or -openapi is required")
	}
}

func runInteractive(backend runner, form *builder.Form, savePath string, withMetadata bool, output string) {
	form.Callbacks().OnSubmit(func(data map[string]any) {
		if savePath != "" {
			saved := false
			if withMetadata {
				saved = form.SaveDataFileWithMetadata(savePath)
			} else {
				saved = form.SaveDataFile(savePath)
			}
			if !saved {
				log.Printf("Failed to save data to %s", savePath)
				return
			}
			fmt.Printf("Data written to %s\n", savePath)
			return
		}
		payload, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			log.Printf("Failed to encode submitted data: %v", err)
			return
		}
		writeOutput(output, append(payload, '\n'))
	})

	if err := backend.Run(context.Background(), form); err != nil {
		log.Fatalf("Session failed: %v", err)
	}
}

func writeOutput(path string, payload []byte) {
	if path == "" {
		os.Stdout.Write(payload)
		return
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Output written to %s\n", path)
}
