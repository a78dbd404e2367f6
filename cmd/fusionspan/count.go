package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/fusionspan/fusionspan/internal/align"
	"github.com/fusionspan/fusionspan/internal/breakpoint"
	"github.com/fusionspan/fusionspan/internal/duckdb"
	"github.com/fusionspan/fusionspan/internal/fragstats"
	"github.com/fusionspan/fusionspan/internal/output"
	"github.com/fusionspan/fusionspan/internal/region"
	"github.com/fusionspan/fusionspan/internal/support"
)

func newCountCmd() *cobra.Command {
	var (
		breaksPath      string
		genesPath       string
		transcriptsPath string
		indexPath       string
		statsPath       string
		bamPath         string
		outputPath      string
		dbPath          string
		spliceBias      int
		workers         int
	)

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count spanning read pairs per breakpoint",
		Example: `  fusionspan count --breaks clusters.breaks.txt \
      --genes gene_regions.txt --transcripts transcript_regions.txt \
      --gene-transcripts gene_transcripts.txt \
      --stats fraglength_stats.txt --bam cdna_alignments.bam -o support.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("splice-bias") && viper.IsSet("count.splice-bias") {
				spliceBias = viper.GetInt("count.splice-bias")
			}
			if !cmd.Flags().Changed("workers") && viper.IsSet("count.workers") {
				workers = viper.GetInt("count.workers")
			}
			if dbPath == "" {
				dbPath = viper.GetString("db.path")
			}
			return runCount(breaksPath, genesPath, transcriptsPath, indexPath,
				statsPath, bamPath, outputPath, dbPath, spliceBias, workers)
		},
	}

	cmd.Flags().StringVar(&breaksPath, "breaks", "", "breakpoint file (cluster, reference, strand, position)")
	cmd.Flags().StringVar(&genesPath, "genes", "", "gene pseudo-transcript region table")
	cmd.Flags().StringVar(&transcriptsPath, "transcripts", "", "transcript region table")
	cmd.Flags().StringVar(&indexPath, "gene-transcripts", "", "gene to transcript index file")
	cmd.Flags().StringVar(&statsPath, "stats", "", "fragment-length statistics file")
	cmd.Flags().StringVar(&bamPath, "bam", "", "indexed BAM of reads aligned to transcripts")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&dbPath, "db", "", "DuckDB database to append results to (optional)")
	cmd.Flags().IntVar(&spliceBias, "splice-bias", 10, "offset applied around splice boundaries before mapping")
	cmd.Flags().IntVar(&workers, "workers", 1, "breakpoints processed concurrently (0 = all CPUs)")

	for _, name := range []string{"breaks", "genes", "transcripts", "gene-transcripts", "stats", "bam"} {
		cobra.CheckErr(cmd.MarkFlagRequired(name))
	}

	return cmd
}

func runCount(breaksPath, genesPath, transcriptsPath, indexPath, statsPath, bamPath,
	outputPath, dbPath string, spliceBias, workers int) error {

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	tables, err := region.LoadTables(genesPath, transcriptsPath, indexPath)
	if err != nil {
		return err
	}
	logger.Info("region tables loaded",
		zap.Int("genes", len(tables.Genes)),
		zap.Int("transcripts", len(tables.Transcripts)))

	stats, err := fragstats.Read(statsPath)
	if err != nil {
		return err
	}
	maxFragLen, err := stats.MaxFragmentLength()
	if err != nil {
		return err
	}

	breaks, err := breakpoint.Read(breaksPath)
	if err != nil {
		return err
	}
	logger.Info("breakpoints loaded",
		zap.Int("records", len(breaks)),
		zap.Int("max_fragment_length", maxFragLen),
		zap.Int("splice_bias", spliceBias))

	query, err := align.OpenBAM(bamPath)
	if err != nil {
		return err
	}
	defer query.Close()

	counter := support.NewCounter(tables, query, maxFragLen, spliceBias)
	counter.SetLogger(logger)

	started := time.Now()
	var table *support.Table
	if workers == 1 {
		table, err = counter.Count(breaks)
	} else {
		table, err = counter.CountParallel(breaks, workers)
	}
	if err != nil {
		return err
	}
	logger.Info("support computed",
		zap.Int("rows", table.Len()),
		zap.Duration("elapsed", time.Since(started)))

	out := os.Stdout
	if outputPath != "" {
		out, err = os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
	}

	tw := output.NewTabWriter(out)
	if err := tw.WriteTable(table); err != nil {
		return fmt.Errorf("write support table: %w", err)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	if dbPath != "" {
		if err := storeResults(dbPath, table, duckdb.RunMeta{
			RunID:             duckdb.NewRunID(started),
			StartedAt:         started,
			BreakpointsFile:   breaksPath,
			AlignmentsFile:    bamPath,
			SpliceBias:        spliceBias,
			MaxFragmentLength: maxFragLen,
		}); err != nil {
			return err
		}
		logger.Info("results stored", zap.String("db", dbPath))
	}

	return nil
}

func storeResults(dbPath string, table *support.Table, meta duckdb.RunMeta) error {
	store, err := duckdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RecordRun(meta); err != nil {
		return err
	}
	return store.WriteSupport(meta.RunID, table)
}
