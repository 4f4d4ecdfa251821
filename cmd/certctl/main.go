// Command certctl administers certificate generation: waffle switches,
// the allowlist, self generation and manual regeneration.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SeakMengs/CourseCert/internal/certificate"
	"github.com/SeakMengs/CourseCert/internal/config"
	"github.com/SeakMengs/CourseCert/internal/courseware"
	"github.com/SeakMengs/CourseCert/internal/database"
	"github.com/SeakMengs/CourseCert/internal/env"
	"github.com/SeakMengs/CourseCert/internal/model"
	"github.com/SeakMengs/CourseCert/internal/queue"
	"github.com/SeakMengs/CourseCert/internal/repository"
	"github.com/SeakMengs/CourseCert/internal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli holds the dependencies shared by every subcommand. Tests fill it in directly.
type cli struct {
	cfg       config.Config
	logger    *zap.SugaredLogger
	repo      *repository.Repository
	publisher queue.Publisher
	closers   []func() error
}

func (c *cli) openDB() error {
	if c.repo != nil {
		return nil
	}

	db, err := database.ConnectReturnGormDB(c.cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		return err
	}
	c.closers = append(c.closers, sqlDb.Close)
	c.repo = repository.NewRepository(db, c.logger)
	return nil
}

func (c *cli) openQueue() error {
	if c.publisher != nil {
		return nil
	}

	rabbitMQ, err := queue.NewRabbitMQ(c.cfg.RabbitMQ.GetConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}
	c.closers = append(c.closers, rabbitMQ.Close)
	c.publisher = rabbitMQ
	return nil
}

func (c *cli) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.logger.Warnf("Failed to close resource: %v", err)
		}
	}
	c.closers = nil
}

func (c *cli) certificates() *certificate.Service {
	return certificate.NewService(&c.cfg, c.repo, c.logger, c.publisher, nil)
}

// course resolves a course key to its overview.
func (c *cli) course(ctx context.Context, courseKey string) (*model.CourseOverview, error) {
	return courseware.NewService(&c.cfg, c.repo, c.certificates(), c.logger).Course(ctx, courseKey)
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "certctl",
		Short:         "Administer " + util.GetAppName() + " certificates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSwitchCmd(c),
		newAllowlistCmd(c),
		newSelfGenerationCmd(c),
		newRegenerateCmd(c),
	)

	return root
}

func parseOnOff(value string) (bool, error) {
	switch value {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}

	return false, fmt.Errorf("expected on or off, got %q", value)
}

func main() {
	env.LoadEnv(".env")
	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := &cli{cfg: cfg, logger: logger}
	err := newRootCmd(c).ExecuteContext(ctx)
	c.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
