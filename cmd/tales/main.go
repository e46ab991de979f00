package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zucenko/ancienttales/config"
	"github.com/zucenko/ancienttales/model"
	"github.com/zucenko/ancienttales/tui"
)

var contentPath string

var rootCmd = &cobra.Command{
	Use:           "tales",
	Short:         "Play Ancient Tales in the terminal",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := config.LoadContent(contentPath)
		if err != nil {
			return err
		}
		return tui.Run(model.NewMachine(content, nil))
	},
}

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalln(err)
	}
	// logrus would scribble over the alternate screen
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)

	rootCmd.Flags().StringVar(&contentPath, "content", cfg.Content, "YAML content tables (embedded defaults when empty)")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
