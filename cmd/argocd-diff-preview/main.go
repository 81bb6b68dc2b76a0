package main

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dag-andersen/argocd-diff-preview/cmd/argocd-diff-preview/root"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configName = ".argocd-diff-preview"

var (
	cfgFile string
	cmd     = root.NewRootCmd()
)

func init() {
	viper.SetEnvPrefix("ARGOCD_DIFF_PREVIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	cobra.OnInitialize(initConfig)
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is $HOME/"+configName+".yaml)")
	viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	viper.BindEnv("config", "ARGOCD_DIFF_PREVIEW_CONFIG")
}

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig() {
	configFile := cfgFile
	if configFile == "" {
		configFile = viper.GetString("config")
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			log.Error("Can't find home directory", "error", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}
		log.Error("Can't read config", "error", err)
		os.Exit(1)
	}

	log.Debug("Using config file", "file", viper.ConfigFileUsed())
}
