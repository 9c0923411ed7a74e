package admin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/quillhaven/botadmin/internal/config"
	"github.com/quillhaven/botadmin/internal/extract"
	"github.com/quillhaven/botadmin/internal/openai"
	"github.com/quillhaven/botadmin/internal/repository"
	"github.com/quillhaven/botadmin/internal/service"
)

func IngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file.pdf> [file.pdf...]",
		Short: "Ingest PDF documents into the knowledge base",
		Long:  "Extract, chunk, and embed one or more PDF files without going through the HTTP API",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runIngest,
	}

	cmd.Flags().Int("chunk-size", 0, "Override the configured chunk size")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.HasOpenAI() {
		return fmt.Errorf("BOTADMIN_OPENAI_API_KEY is required to generate embeddings")
	}

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	chunkSize := cfg.ChunkSize
	if override, _ := cmd.Flags().GetInt("chunk-size"); override > 0 {
		chunkSize = override
	}

	embedder := openai.NewClientWithConfig(openai.Config{
		APIKey:              cfg.OpenAIAPIKey,
		EmbeddingDimensions: cfg.EmbeddingDimensions,
	})

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetDescription(filepath.Base(path)),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
		)

		svc := service.NewIngestService(
			extract.NewPDFExtractor(),
			embedder,
			repository.NewKnowledgeRepository(pool),
		).WithChunkSize(chunkSize).WithProgress(func(done, total int) {
			bar.ChangeMax(total)
			bar.Set(done)
		})

		report, err := svc.Ingest(ctx, service.IngestInput{
			Filename: filepath.Base(path),
			Data:     data,
		})
		bar.Finish()
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}

		if report.Partial() {
			fmt.Printf("%s: %d/%d chunks stored (%d failed)\n",
				path, report.Stored, report.TotalChunks, len(report.Failures))
		} else {
			fmt.Printf("%s: %d chunks stored\n", path, report.Stored)
		}
	}

	return nil
}
