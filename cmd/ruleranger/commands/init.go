package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ruleranger/internal/config"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/paths"
)

var (
	initForce       bool
	initUser        bool
	initContentRoot string
	initMount       string
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration")
	initCmd.Flags().BoolVar(&initUser, "user", false, "Write the user configuration instead of a project one")
	initCmd.Flags().StringVar(&initContentRoot, "content-root", "", "Content root, relative to the config file")
	initCmd.Flags().StringVar(&initMount, "mount", "", "Mount point asset paths start with")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ruleranger configuration",
	Long: `Write a configuration file with the default rule settings.

By default .ruleranger.yaml is created in the current directory. With --user
the configuration is written to the user config directory instead, where it
applies to any project without its own file.`,
	Example: `  # Initialize the current project
  ruleranger init

  # Content lives in Assets/, mounted at /Game
  ruleranger init --content-root Assets --mount /Game

  # Force overwrite existing configuration
  ruleranger init --force

  See Also: ruleranger doctor, ruleranger rules`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	configPath := paths.UserConfigFile()
	if !initUser {
		wd, err := os.Getwd()
		if err != nil {
			return errors.NewSystemError(errors.Wrap(err, "getting working directory"), "")
		}
		configPath = filepath.Join(wd, paths.ProjectConfigFile)
	}

	if _, err := os.Stat(configPath); err == nil && !initForce {
		fmt.Fprintf(out, "Configuration already exists at %s\n", configPath)
		fmt.Fprintln(out, "Use --force to overwrite")
		return nil
	}

	c := config.Default()
	if initContentRoot != "" {
		c.Content.Root = initContentRoot
	}
	if initMount != "" {
		c.Content.Mount = paths.CleanMount(initMount)
	}
	c.Dirs = []string{c.Content.Mount}

	if errs := config.Validate(c); len(errs) > 0 {
		return errors.NewUserError(errors.Join(errs...), "check --content-root and --mount")
	}

	if err := paths.EnsureDir(filepath.Dir(configPath), 0); err != nil {
		return errors.NewSystemError(err, "")
	}
	if err := config.Write(configPath, c); err != nil {
		return errors.NewSystemError(err, "")
	}
	fmt.Fprintf(out, "Created %s\n", configPath)

	root, err := paths.ResolveContentRoot(c.Content.Root, configPath)
	if err == nil {
		if _, statErr := os.Stat(root); os.IsNotExist(statErr) {
			fmt.Fprintf(out, "Content root %s does not exist yet\n", root)
		}
	}
	return nil
}
