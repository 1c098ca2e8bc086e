package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"routesync/internal/models/request_models"
	"routesync/internal/presenter"
	"routesync/pkg/utils"
)

func newListCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show your saved routes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := &terminalView{out: cmd.ErrOrStderr()}
			p := presenter.New(env.client(), view, env.logger())
			defer p.Close()

			p.Activate()
			p.Wait()
			printState(cmd.OutOrStdout(), p.State())
			return nil
		},
	}
}

func newSaveCmd(env *cliEnv) *cobra.Command {
	var req request_models.CreateSavedRouteRequest
	var description, file string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a computed route",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read route data: %w", err)
			}
			if !json.Valid(raw) {
				return fmt.Errorf("%s is not valid JSON", file)
			}
			req.RouteData = raw
			if description != "" {
				req.Description = &description
			}

			route, err := env.client().Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s at %s\n", route.ID, utils.FormatRFC3339(route.CreatedAt))
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "route name")
	cmd.Flags().StringVar(&req.Start, "start", "", "origin label")
	cmd.Flags().StringVar(&req.Goal, "goal", "", "destination label")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	cmd.Flags().StringVar(&file, "file", "", "path to the routeData JSON document")
	for _, name := range []string{"name", "start", "goal", "file"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newDeleteCmd(env *cliEnv) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your saved routes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			view := &terminalView{out: cmd.ErrOrStderr()}
			p := presenter.New(env.client(), view, env.logger())
			defer p.Close()

			p.Activate()
			p.Wait()
			s := p.State()
			if s.Status == presenter.StatusFailed {
				printState(cmd.OutOrStdout(), s)
				return errors.New("could not load saved routes")
			}

			p.Dispatch(presenter.OpenDeleteConfirm{ID: id})
			if p.State().ConfirmingDelete != id {
				return fmt.Errorf("no saved route with id %s", id)
			}
			if !yes && !confirm(cmd, fmt.Sprintf("Delete route %s? [y/N] ", id)) {
				p.Dispatch(presenter.CancelDelete{})
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}

			p.Dispatch(presenter.ConfirmDelete{})
			p.Wait()
			for _, c := range p.State().Cards {
				if c.ID == id {
					return errors.New(presenter.MsgDeleteFailed)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newGeoJSONCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "geojson <id>",
		Short: "Print the primary path of a saved route as GeoJSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			feature, err := env.client().Feature(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(feature))
			return nil
		},
	}
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
