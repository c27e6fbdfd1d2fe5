package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	gormlog "gorm.io/gorm/logger"

	"github.com/Vinzor11/hrgrid/pkg/config"
	"github.com/Vinzor11/hrgrid/pkg/database"
	"github.com/Vinzor11/hrgrid/pkg/fieldschema"
	"github.com/Vinzor11/hrgrid/pkg/listing"
	"github.com/Vinzor11/hrgrid/pkg/logger"
	"github.com/Vinzor11/hrgrid/pkg/models"
)

var seed bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&seed, "seed", false, "seed the database with sample records")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if dsn != "" {
		cfg.DSN = dsn
	}

	logger.Init(cfg.Dev)

	db, err := openDB(cfg.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if seed {
		if err := seedDB(db); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}

	handler := listing.NewHandler(database.NewGormAdapter(db), fieldschema.DefaultCatalog())
	handler.SetPageSizes(cfg.DefaultPerPage, cfg.MaxPerPage)

	r := mux.NewRouter()
	handler.RegisterRoutes(r)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("Starting hrgrid server on %s", cfg.Addr)
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		logger.Info("Shutting down gracefully")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}

func openDB(dsn string) (*gorm.DB, error) {
	gormLogger := gormlog.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlog.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlog.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return nil, err
	}
	return db, nil
}
