package cli

import (
	"fmt"
	"strconv"

	"github.com/jober-app/go-alimtalk-client/internal/utils"
	"github.com/jober-app/go-alimtalk-client/spaces"
	"github.com/spf13/cobra"
)

func (a *App) spacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spaces",
		Short: "List and manage spaces",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your spaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			if err := a.store.FetchSpaces(cmd.Context()); err != nil {
				return err
			}
			if state := a.store.State(); len(state.Spaces) == 0 {
				fmt.Println("No spaces yet")
				return nil
			}
			a.printSpaces()
			return nil
		},
	}

	useCmd := &cobra.Command{
		Use:   "use <space-id>",
		Short: "Switch the active space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			spaceID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("space id must be a number")
			}
			if err := a.store.FetchSpaces(cmd.Context()); err != nil {
				return err
			}
			state := a.store.State()
			var target *spaces.Space
			for i := range state.Spaces {
				if state.Spaces[i].SpaceID == spaceID {
					target = &state.Spaces[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("you are not a member of space %d", spaceID)
			}
			a.store.SetCurrentSpace(*target)
			fmt.Printf("Now using %s\n", utils.Value(a.store.State().CurrentSpace).SpaceName)
			return nil
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename <space-id> <name>",
		Short: "Rename a space",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			spaceID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("space id must be a number")
			}
			return a.store.RenameSpace(cmd.Context(), spaceID, args[1])
		},
	}

	var confirmed bool
	deleteCmd := &cobra.Command{
		Use:   "delete <space-id>",
		Short: "Delete a space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			if !confirmed {
				return fmt.Errorf("pass --yes to confirm space deletion")
			}
			spaceID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("space id must be a number")
			}
			return a.store.DeleteSpace(cmd.Context(), spaceID)
		},
	}
	deleteCmd.Flags().BoolVar(&confirmed, "yes", false, "confirm deletion")

	var email string
	acceptCmd := &cobra.Command{
		Use:   "accept <space-id>",
		Short: "Accept a space invitation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			spaceID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("space id must be a number")
			}
			return a.store.AcceptInvite(cmd.Context(), spaceID, email)
		},
	}
	acceptCmd.Flags().StringVarP(&email, "email", "e", "", "invited email address")
	_ = acceptCmd.MarkFlagRequired("email")

	cmd.AddCommand(listCmd, useCmd, renameCmd, deleteCmd, acceptCmd)
	return cmd
}
