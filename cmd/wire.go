package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bnema/layoutguard/internal/adapters/render/report"
	"github.com/bnema/layoutguard/internal/adapters/repo/jsonfile"
	tomlrepo "github.com/bnema/layoutguard/internal/adapters/repo/toml"
	filesource "github.com/bnema/layoutguard/internal/adapters/source/file"
	gitsource "github.com/bnema/layoutguard/internal/adapters/source/git"
	"github.com/bnema/layoutguard/internal/application"
	"github.com/bnema/layoutguard/internal/logging"
	"github.com/bnema/layoutguard/internal/ports"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	config         *viper.Viper
	logger         *zap.Logger
	service        *application.Service
	files          *filesource.Source
	rev            string
	reportRenderer func([]application.CheckReport, report.RenderOptions) (string, error)
}

func (a *app) wire(cmd *cobra.Command) error {
	if err := loadConfig(cmd, a.config); err != nil {
		return err
	}

	logger, err := logging.New(a.config.GetString(logLevelKey), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger

	store, err := newBaselineStore(a.config)
	if err != nil {
		return fmt.Errorf("wire baseline store: %w", err)
	}

	root := a.config.GetString(sourceRootKey)
	fileName := a.config.GetString(sourceFileKey)
	a.files = filesource.NewSource(root, fileName)
	a.rev = a.config.GetString(sourceRevKey)

	var source ports.DeclarationSource = a.files
	if a.rev != "" {
		source = gitsource.NewSource(root, fileName, a.rev)
	}

	a.service = application.NewService(source, store, ports.SystemClock{}, application.Config{
		Marker: a.config.GetString(sourceMarkerKey),
		Logger: logger,
	})
	a.reportRenderer = report.Render

	logger.Debug("wired",
		zap.String("root", root),
		zap.String("file", fileName),
		zap.String("rev", a.rev),
		zap.String("baselines", a.config.GetString(baselinesPathKey)),
	)

	return nil
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// newBaselineStore picks the legacy JSON store for .json paths and the TOML
// store otherwise.
func newBaselineStore(cfg *viper.Viper) (ports.BaselineStore, error) {
	path := cfg.GetString(baselinesPathKey)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return jsonfile.NewRepository(path)
	}
	return tomlrepo.NewRepository(cfg)
}
