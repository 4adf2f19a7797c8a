package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Simplici0/framequote/internal/estimate"
	"github.com/Simplici0/framequote/internal/export"
)

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage saved projects",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved projects",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				names, err := a.projects.List(cmd.Context())
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			},
		},
		newProjectShowCmd(a),
		newProjectApplyCmd(a),
		&cobra.Command{
			Use:   "delete NAME",
			Short: "Delete a saved project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.projects.Delete(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}

func (a *app) loadProject(cmd *cobra.Command, name string) (estimate.State, error) {
	snap, err := a.projects.Load(cmd.Context(), name)
	if err != nil {
		return estimate.State{}, fmt.Errorf("load project %q: %w", name, err)
	}
	return a.engine.Load(cmd.Context(), snap)
}

func newProjectShowCmd(a *app) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:     "show NAME",
		Aliases: []string{"export"},
		Short:   "Print or export a saved project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.loadProject(cmd, args[0])
			if err != nil {
				return err
			}
			return write(cmd, out, format, st)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "txt", fmt.Sprintf("output format: json or one of %v", export.Extensions()))
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}

func newProjectApplyCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "apply NAME EVENTS.json",
		Short: "Apply events to a saved project and save it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.loadProject(cmd, args[0])
			if err != nil {
				return err
			}
			events, err := readEvents(args[1])
			if err != nil {
				return err
			}
			if st, err = a.engine.ApplyAll(cmd.Context(), st, events...); err != nil {
				return err
			}
			if err := a.projects.Save(cmd.Context(), st.Snapshot(time.Now())); err != nil {
				return err
			}
			return write(cmd, "", format, st)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "txt", "output format for the updated project")
	return cmd
}
