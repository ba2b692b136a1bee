package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cdrkit/dfextract/internal/iocdw"
	"github.com/cdrkit/dfextract/internal/ioconfig"
	"github.com/cdrkit/dfextract/internal/iocopy"
	"github.com/cdrkit/dfextract/internal/iodest"
	"github.com/cdrkit/dfextract/internal/ioexport"
	"github.com/cdrkit/dfextract/internal/iofs"
	"github.com/cdrkit/dfextract/internal/iologger"
	"github.com/cdrkit/dfextract/internal/iomail"
	"github.com/cdrkit/dfextract/internal/iorequest"
	"github.com/cdrkit/dfextract/pkg/config"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

var (
	quietExtract bool
)

func getExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <request.json>",
		Short: "Build a dataset file from an extraction request",
		Long: `Build a dataset file for one queued extraction request.

This command:
  1. Reads the JSON request (patient set, concepts, filename, username)
  2. Resolves the concepts against the warehouse dictionaries
  3. Copies matching facts, terms, and demographics into a SQLite
     dataset file under the user's output directory
  4. Prints the result record as JSON and, when configured, mails
     the user that the dataset is ready

The dataset file is named <request prefix>_<filename><ext>, where the
prefix is the request file's base name. Re-running the same request
recreates the dataset from scratch.

Examples:
  dfextract extract /var/spool/dfextract/request-0042.json
  dfextract extract --host cdw.example.edu request-0042.json
  dfextract extract --quiet request-0042.json`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().String("host", "", "warehouse host")
	cmd.Flags().Int("port", 0, "warehouse port")
	cmd.Flags().String("user", "", "warehouse user")
	cmd.Flags().String("password", "", "warehouse password")
	cmd.Flags().String("database", "", "warehouse database name")
	cmd.Flags().String("ssl-mode", "", "warehouse SSL mode")
	cmd.Flags().Int("batch-size", 0, "rows per transfer batch")
	cmd.Flags().String("home-dirs", "",
		"root of per-user output directories")
	cmd.Flags().BoolVarP(&quietExtract, "quiet", "q", false,
		"suppress the progress bar")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := ioconfig.BindFlags(cmd, getConfig())
	if err != nil {
		return err
	}

	if err := initLogger(cfg); err != nil {
		return err
	}

	requestPath := args[0]
	req, err := iorequest.Load(requestPath)
	if err != nil {
		return err
	}
	slog.Info("Loaded extraction request",
		"path", requestPath,
		"patient_set", req.PatientSet,
		"concepts", req.Concepts.Len(),
		"username", req.Username)

	userDir, err := iofs.EnsureUserDir(cfg.Output.HomeDirs, req.Username)
	if err != nil {
		return err
	}
	datasetName := iorequest.DatasetName(requestPath, req, cfg.Output.Ext)
	datasetPath := filepath.Join(userDir, datasetName)

	cdw := iocdw.NewOperator()
	if err := cdw.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer cdw.Close()

	store, err := iodest.Open(datasetPath)
	if err != nil {
		return err
	}
	defer store.Close()

	stager := iocdw.NewStager(cdw, cfg.Database.BatchSize)
	copier := iocopy.New(store, cfg.Database.BatchSize, !quietExtract)
	extractor := ioexport.New(cdw, store, stager, copier)

	res, err := extractor.Export(ctx, req)
	if err != nil {
		slog.Error("Extraction failed",
			"request", requestPath, "error", err)
		return err
	}

	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(res)
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	notifier := iomail.New(cfg.Email)
	if err := notifier.DatasetReady(
		datasetName, userDir, res.Summary, req,
	); err != nil {
		// mail failure never fails the job
		slog.Warn("Cannot send completion mail", "error", err)
	}

	return nil
}

func initLogger(cfg *config.Config) error {
	homeDir := cfg.HomeDir
	if homeDir == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			return err
		}
	}
	if err := iofs.EnsureDirs(homeDir); err != nil {
		return err
	}
	return iologger.Init(config.LogDir(homeDir), cfg.Log, false)
}
