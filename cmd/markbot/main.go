package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/m3rciful/markbot/core/bootstrap"
	"github.com/m3rciful/markbot/core/buildinfo"
	corecmd "github.com/m3rciful/markbot/core/cmd"
	"github.com/m3rciful/markbot/internal/bot"
	"github.com/m3rciful/markbot/internal/watermark"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "markbot",
		Short:         "Telegram bot that watermarks photos with a logo",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newRunCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Missing .env is fine; real deployments use the environment.
			_ = godotenv.Load()

			return corecmd.Run(corecmd.Options{
				ConfigPath:        configPath,
				ConfigEnvVar:      "CONFIG_PATH",
				DefaultConfigPath: "configs/config.yaml",
				LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
					return bot.LoadConfig(path)
				},
				Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
					cfg, ok := carrier.(*bot.Config)
					if !ok {
						return nil, fmt.Errorf("unexpected config type %T", carrier)
					}
					boot, err := bootstrap.Run(bootstrap.Options{
						Config:   cfg.CoreConfig(),
						LogoPath: cfg.Watermark.LogoPath,
						LoadLogo: watermark.LoadLogo,
					})
					if err != nil {
						return nil, err
					}
					return bot.New(cfg, boot), nil
				},
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "markbot %s (%s %s)\n",
				buildinfo.Version, buildinfo.Commit, buildinfo.Date)
		},
	}
}
