package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/konchunas/rellic/formatter"
	"github.com/konchunas/rellic/internal/debuginfo"
	"github.com/konchunas/rellic/refine"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	debugInfoPath  string
	keepFieldNames bool
	jsonOutput     bool
	outPath        string
	cacheDir       string
)

var refineCmd = &cobra.Command{
	Use:   "refine [paths...]",
	Short: "Structure the functions of Go files and show the result",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := newEngine(cfgFile, debugInfoPath, keepFieldNames)
		if err != nil {
			logger.Fatal("Failed to initialize refine engine", zap.Error(err))
		}
		if cacheDir != "" {
			cache, err := refine.NewCache(cacheDir, 0)
			if err != nil {
				logger.Fatal("Failed to open cache", zap.Error(err))
			}
			engine.SetCache(cache)
		}

		out := io.Writer(os.Stdout)
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				logger.Fatal("Error creating output file", zap.Error(err))
			}
			defer f.Close()
			out = f
		}

		if err := runRefine(ctx, logger, engine, args, jsonOutput, out); err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	refineCmd.Flags().StringVar(&debugInfoPath, "debuginfo", "", "YAML file with record member names")
	refineCmd.Flags().BoolVar(&keepFieldNames, "keep-field-names", false, "Keep source field names instead of numbering them")
	refineCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	refineCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path")
	refineCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Reuse results for unchanged files from this directory")
}

func newEngine(configPath, debugInfoPath string, keepFieldNames bool) (*refine.Engine, error) {
	engine, err := refine.NewFromFile(configPath, logger)
	if err != nil {
		return nil, err
	}
	engine.KeepFieldNames(keepFieldNames)
	if debugInfoPath != "" {
		table, err := debuginfo.Load(debugInfoPath)
		if err != nil {
			return nil, err
		}
		engine.SetDebugInfo(table)
	}
	return engine, nil
}

// runRefine processes paths and writes the results to out. Results of
// files that succeeded are written even when others failed.
func runRefine(ctx context.Context, logger *zap.Logger, engine refine.RefineEngine, paths []string, isJSON bool, out io.Writer) error {
	results, procErr := refine.ProcessFiles(ctx, logger, engine, paths)

	if isJSON {
		d, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshalling results to JSON: %w", err)
		}
		if _, err := fmt.Fprintln(out, string(d)); err != nil {
			return err
		}
	} else if len(results) > 0 {
		if _, err := fmt.Fprint(out, formatter.FormatResults(results)); err != nil {
			return err
		}
	}
	return procErr
}
