package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adotepet/adotepet/catalog"
	"github.com/adotepet/adotepet/courier"
	"github.com/adotepet/adotepet/document"
	"github.com/adotepet/adotepet/internal/profile"
	"github.com/adotepet/adotepet/interview"
	"github.com/adotepet/adotepet/plugin/compress"
	"github.com/adotepet/adotepet/server"
	apiv1 "github.com/adotepet/adotepet/server/router/api/v1"
	"github.com/adotepet/adotepet/storage"
	"github.com/adotepet/adotepet/store"
	"github.com/adotepet/adotepet/store/db"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "adotepet",
	Short: "An adoption intake service for animal shelters",
	Run: func(_ *cobra.Command, _ []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		instanceProfile := &profile.Profile{
			Mode:    viper.GetString("mode"),
			Addr:    viper.GetString("addr"),
			Port:    viper.GetInt("port"),
			Data:    viper.GetString("data"),
			Driver:  viper.GetString("driver"),
			DSN:     viper.GetString("dsn"),
			Version: version,
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			slog.Error("invalid configuration", slog.String("error", err.Error()))
			return
		}

		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			slog.Error("failed to create db driver", slog.String("error", err.Error()))
			return
		}
		storeInstance := store.New(dbDriver, instanceProfile)
		if err := storeInstance.Migrate(ctx); err != nil {
			slog.Error("failed to migrate database", slog.String("error", err.Error()))
			return
		}

		catalogManager, err := catalog.NewManager(instanceProfile.CatalogPath)
		if err != nil {
			slog.Error("failed to load animal catalog", slog.String("error", err.Error()))
			return
		}

		renderer, err := document.NewPDFRenderer(filepath.Join(instanceProfile.Data, "documents"))
		if err != nil {
			slog.Error("failed to prepare document renderer", slog.String("error", err.Error()))
			return
		}
		files, err := storage.NewLocal(filepath.Join(instanceProfile.Data, "files"))
		if err != nil {
			slog.Error("failed to prepare file storage", slog.String("error", err.Error()))
			return
		}

		logger := slog.Default()
		interviewService := interview.NewService(
			interview.NewSessionStore(),
			interview.DefaultQuestions(),
			catalogManager,
			renderer,
			store.NewInterviewArchive(storeInstance),
			courier.NewWebhook(instanceProfile.OperatorWebhookURL),
			files,
			instanceProfile.OperatorRecipient,
			logger,
		)

		apiService := apiv1.NewAPIV1Service(
			instanceProfile,
			storeInstance,
			catalogManager,
			interviewService,
			compress.New(instanceProfile.PhotoMaxSizeKB, instanceProfile.PhotoQuality),
			logger,
		)

		s, err := server.NewServer(ctx, instanceProfile, storeInstance, apiService)
		if err != nil {
			slog.Error("failed to create server", slog.String("error", err.Error()))
			return
		}

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		go func() {
			sig := <-c
			slog.Info("received signal, shutting down", slog.String("signal", sig.String()))
			s.Shutdown(ctx)
			cancel()
		}()

		printGreetings(instanceProfile)

		if err := s.Start(ctx); err != nil {
			slog.Error("failed to start server", slog.String("error", err.Error()))
			cancel()
		}

		<-ctx.Done()
	},
}

func init() {
	viper.SetDefault("mode", "demo")
	viper.SetDefault("driver", "sqlite")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 8081)
	viper.SetDefault("data", ".")

	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of server")
	rootCmd.PersistentFlags().String("data", ".", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "database driver")
	rootCmd.PersistentFlags().String("dsn", "", "database source name (aka. DSN)")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}

	viper.SetEnvPrefix("adotepet")
	viper.AutomaticEnv()
}

func printGreetings(p *profile.Profile) {
	fmt.Printf("adotepet v%s\n", p.Version)
	fmt.Printf("mode: %s, driver: %s, data: %s\n", p.Mode, p.Driver, p.Data)
	fmt.Printf("listening on %s:%d\n", p.Addr, p.Port)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("failed to execute command", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
