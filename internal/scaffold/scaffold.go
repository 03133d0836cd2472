package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

//go:embed all:templates
var templatesFS embed.FS

// Init scaffolds a starter assetpipe configuration in dir.
func Init(dir string, logger *logrus.Logger) error {
	configDest := filepath.Join(dir, "assetpipe.config.yml")

	// Check for existing config to prevent overwrite
	if _, err := os.Stat(configDest); err == nil {
		return fmt.Errorf("assetpipe configuration already exists at %s", configDest)
	}

	logger.Debugf("Copying starter config to %s", configDest)
	if err := copyFileFromFS("templates/default/assetpipe.config.yml", configDest); err != nil {
		return err
	}
	logger.Infof("✓ Created configuration file: %s", "assetpipe.config.yml")

	logger.Info("✅ Assetpipe initialized successfully.")
	logger.Info("   Next steps: 1. Edit assetpipe.config.yml to match your project.")
	logger.Info("               2. Run 'assetpipe build' to process your assets.")

	return nil
}

func copyFileFromFS(src, dest string) error {
	content, err := templatesFS.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read embedded file %s: %w", src, err)
	}
	if err := os.WriteFile(dest, content, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", dest, err)
	}
	return nil
}
