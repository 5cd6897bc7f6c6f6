package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/c360studio/semextract/analysis"
	"github.com/c360studio/semextract/graph"
	"github.com/c360studio/semextract/models"
	"github.com/c360studio/semextract/ontology"
)

func analyzeCmd() *cobra.Command {
	var (
		outputPath string
		publish    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <glob>...",
		Short: "Analyze document entity files",
		Long: `Analyze reads document entities from JSON files matching the given
glob patterns, runs them through the analysis pipeline and writes one
JSON result per document. Patterns support ** for recursive matching.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args, outputPath, publish)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write results to file instead of stdout")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish results to the graph ingestion stream")

	return cmd
}

// analysisRecord is one output line of the analyze command.
type analysisRecord struct {
	JobID    string             `json:"job_id"`
	File     string             `json:"file"`
	Document *ontology.Entity   `json:"document"`
	Entities []*ontology.Entity `json:"entities,omitempty"`
}

func runAnalyze(ctx context.Context, patterns []string, outputPath string, publish bool) error {
	logger := slog.Default()

	files, err := expandPatterns(patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files match %v", patterns)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry := models.NewRegistry(cfg, logger)
	analyzer, err := registry.Analyzer(ctx)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var nc *natsclient.Client
	if publish {
		nc, err = connectNATS(ctx, cfg.NATS.URL, logger)
		if err != nil {
			return err
		}
		defer nc.Close(ctx)
	}

	encoder := json.NewEncoder(out)
	analyzed := 0
	for _, file := range files {
		n, err := analyzeFile(ctx, analyzer, nc, encoder, file)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		analyzed += n
	}

	logger.Info("Analysis complete", "files", len(files), "documents", analyzed)
	return nil
}

// expandPatterns resolves glob patterns to a sorted, de-duplicated file
// list.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				files = append(files, match)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// analyzeFile analyzes every document entity in one file and returns how
// many were analyzed. Non-analyzable entities are skipped silently.
func analyzeFile(ctx context.Context, analyzer *analysis.Analyzer, nc *natsclient.Client, encoder *json.Encoder, file string) (int, error) {
	docs, err := readEntities(file)
	if err != nil {
		return 0, err
	}

	analyzed := 0
	for _, doc := range docs {
		result, err := analyzer.AnalyzeEntity(ctx, doc)
		if err != nil {
			return analyzed, err
		}
		if result == nil {
			continue
		}
		record := analysisRecord{
			JobID:    uuid.NewString(),
			File:     file,
			Document: result.Document,
			Entities: result.Entities,
		}
		if err := encoder.Encode(&record); err != nil {
			return analyzed, fmt.Errorf("write result: %w", err)
		}
		if nc != nil {
			if err := publishResult(ctx, nc, result); err != nil {
				return analyzed, err
			}
		}
		analyzed++
	}
	return analyzed, nil
}

// readEntities parses one file holding a document entity or an array of
// them.
func readEntities(file string) ([]*ontology.Entity, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	model := ontology.Default()

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("parse entity list: %w", err)
		}
		entities := make([]*ontology.Entity, 0, len(raw))
		for _, item := range raw {
			e, err := model.FromJSON(item)
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		}
		return entities, nil
	}

	e, err := model.FromJSON(data)
	if err != nil {
		return nil, err
	}
	return []*ontology.Entity{e}, nil
}

// publishResult publishes the extracted entities, then the document
// fragment.
func publishResult(ctx context.Context, nc *natsclient.Client, result *analysis.Result) error {
	for _, entity := range result.Entities {
		if err := graph.PublishEntity(ctx, nc, entity, appName); err != nil {
			return err
		}
	}
	return graph.PublishEntity(ctx, nc, result.Document, appName)
}
