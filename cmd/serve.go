package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/jahua/prism-portfolio/api"
	"github.com/jahua/prism-portfolio/auth"
	"github.com/jahua/prism-portfolio/config"
	"github.com/jahua/prism-portfolio/database"
	"github.com/jahua/prism-portfolio/models"
	"github.com/jahua/prism-portfolio/services"
	"github.com/jahua/prism-portfolio/storage"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), appConfig)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if cfg.AutoMigrate {
		if err := models.Migrate(db); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
		log.Info().Msg("Schema migrated")
	}

	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg != nil {
			return *awsCfg, nil
		}
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.AWSRegion != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
		}
		c, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return aws.Config{}, fmt.Errorf("loading AWS config: %w", err)
		}
		awsCfg = &c
		return c, nil
	}

	var params ParameterGetter
	if cfg.AdminTokenSSMParameter != "" {
		c, err := loadAWS()
		if err != nil {
			return err
		}
		params = ssm.NewFromConfig(c)
	}
	secret, err := adminSecret(ctx, cfg, params)
	if err != nil {
		return err
	}
	if cfg.UsesDefaultAdminToken() {
		log.Warn().Msg("ADMIN_TOKEN is not set, using the development default. Do not run this in production")
	}
	gate, err := auth.NewGate(auth.AdminSecret(secret))
	if err != nil {
		return err
	}

	var backend storage.Backend
	switch cfg.UploadBackend {
	case config.UploadBackendS3:
		c, err := loadAWS()
		if err != nil {
			return err
		}
		backend = storage.NewS3Backend(s3.NewFromConfig(c), cfg.UploadBucket)
		log.Info().Str("bucket", cfg.UploadBucket).Msg("Uploads stored in S3")
	default:
		disk, err := storage.NewDiskBackend(cfg.UploadDir)
		if err != nil {
			return fmt.Errorf("preparing upload directory: %w", err)
		}
		backend = disk
		log.Info().Str("dir", disk.Dir()).Msg("Uploads stored on disk")
	}
	uploader := storage.NewUploader(backend,
		storage.WithMaxBytes(cfg.UploadMaxBytes),
		storage.WithPublicPrefix(cfg.UploadPublicURL),
	)

	notifier := services.FromConfig(services.Config{
		ResendAPIKey:     cfg.ResendAPIKey,
		ResendFrom:       cfg.ResendFrom,
		NotifyEmail:      cfg.NotifyEmail,
		TwilioAccountSID: cfg.TwilioAccountSID,
		TwilioAuthToken:  cfg.TwilioAuthToken,
		TwilioFrom:       cfg.TwilioFrom,
		NotifyPhone:      cfg.NotifyPhone,
	})

	deps := api.Deps{
		Stores:         api.StoresFrom(database.New(db)),
		Gate:           gate,
		Uploader:       uploader,
		Notifier:       notifier,
		AllowedOrigins: cfg.AllowedOrigins,
		StaticDir:      cfg.StaticDir,
	}
	if cfg.UploadBackend == config.UploadBackendDisk {
		deps.UploadDir = cfg.UploadDir
	}

	server, err := api.NewServer(cfg, deps)
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	errChannel := make(chan error, 2)

	go server.Start(errChannel)
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Err(fatalErr).Msg("Closing server")

	server.ShutdownGracefully(cfg.ShutdownTimeout)
	return exitError(fatalErr)
}

// interrupted is sent by listenToInterrupt when the process is asked to stop.
type interrupted struct {
	sig os.Signal
}

func (i interrupted) Error() string {
	return i.sig.String()
}

// exitError is nil for a requested shutdown and the failure otherwise, e.g. a port already in use.
func exitError(err error) error {
	var sig interrupted
	if err == nil || errors.As(err, &sig) || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("server stopped: %w", err)
}

func openDatabase(cfg config.Config) (*gorm.DB, error) {
	return database.Open(database.OpenOptions{
		DSN:         cfg.DatabaseURL,
		ReplicaDSNs: cfg.DatabaseReplicaURLs,
	})
}

// ParameterGetter is the part of the SSM client used to resolve the admin secret.
type ParameterGetter interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// adminSecret returns the admin secret, reading it from SSM Parameter Store when a parameter
// name is configured.
func adminSecret(ctx context.Context, cfg config.Config, params ParameterGetter) (string, error) {
	if cfg.AdminTokenSSMParameter == "" {
		return cfg.AdminToken, nil
	}
	if params == nil {
		return "", errors.New("admin_token_ssm_parameter is set but no SSM client is available")
	}

	out, err := params.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(cfg.AdminTokenSSMParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("reading admin token from SSM parameter %s: %w", cfg.AdminTokenSSMParameter, err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", fmt.Errorf("SSM parameter %s is empty", cfg.AdminTokenSSMParameter)
	}
	return aws.ToString(out.Parameter.Value), nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- interrupted{sig: <-c}
}
