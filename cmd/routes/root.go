package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"routesync/internal/client"
)

const defaultAPIURL = "http://localhost:8080"

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("routes")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("api-url", defaultAPIURL)

	root := &cobra.Command{
		Use:           "routes",
		Short:         "List, save and delete saved routes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("api-url", defaultAPIURL, "base URL of the routes API (ROUTES_API_URL)")
	root.PersistentFlags().String("token", "", "identity provider token (ROUTES_TOKEN)")
	root.PersistentFlags().Bool("verbose", false, "log requests to stderr")
	_ = v.BindPFlags(root.PersistentFlags())

	env := &cliEnv{viper: v}
	root.AddCommand(
		newListCmd(env),
		newSaveCmd(env),
		newDeleteCmd(env),
		newGeoJSONCmd(env),
	)
	return root
}

type cliEnv struct {
	viper *viper.Viper
}

func (e *cliEnv) client() *client.Client {
	return client.New(e.viper.GetString("api-url"), e.viper.GetString("token"))
}

func (e *cliEnv) logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.ErrorLevel)
	if e.viper.GetBool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
