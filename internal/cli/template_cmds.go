package cli

import (
	"fmt"
	"strconv"

	"github.com/jober-app/go-alimtalk-client/templates"
	"github.com/spf13/cobra"
)

func (a *App) templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage the active space's message templates",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSpace(cmd.Context()); err != nil {
				return err
			}
			if err := a.store.FetchTemplates(cmd.Context()); err != nil {
				return err
			}
			state := a.store.State()
			if len(state.Templates) == 0 {
				fmt.Println("No templates yet")
				return nil
			}
			for _, t := range state.Templates {
				fmt.Printf("%-4d %s\n     %s\n", t.ID, t.Title, t.ParameterizedTemplate)
			}
			return nil
		},
	}

	var title, body string
	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Create or update a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSpace(cmd.Context()); err != nil {
				return err
			}
			if err := a.store.SaveTemplate(cmd.Context(), templates.SavePayload{
				Title:                 title,
				ParameterizedTemplate: body,
			}); err != nil {
				return err
			}
			// The save action only refreshes contacts; pull templates so the
			// confirmation shows the saved entry.
			if err := a.store.FetchTemplates(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Saved %q (%d templates in space)\n", title, len(a.store.State().Templates))
			return nil
		},
	}
	saveCmd.Flags().StringVarP(&title, "title", "t", "", "template title")
	saveCmd.Flags().StringVarP(&body, "body", "b", "", "parameterized template body, e.g. \"Hi #{name}\"")
	_ = saveCmd.MarkFlagRequired("title")
	_ = saveCmd.MarkFlagRequired("body")

	deleteCmd := &cobra.Command{
		Use:   "delete <template-id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSpace(cmd.Context()); err != nil {
				return err
			}
			templateID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("template id must be a number")
			}
			return a.store.DeleteTemplate(cmd.Context(), templateID)
		},
	}

	cmd.AddCommand(listCmd, saveCmd, deleteCmd)
	return cmd
}
