package cli

import (
	"fmt"
	"strconv"

	"github.com/jober-app/go-alimtalk-client/contacts"
	"github.com/spf13/cobra"
)

func (a *App) contactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage the active space's contacts",
	}

	var tags []string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts, optionally filtered by tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSpace(cmd.Context()); err != nil {
				return err
			}
			if err := a.store.FetchContacts(cmd.Context()); err != nil {
				return err
			}
			for _, tag := range tags {
				a.store.ToggleTagFilter(tag)
			}
			state := a.store.State()
			if len(state.FilteredContacts) == 0 {
				fmt.Println("No contacts")
				return nil
			}
			for _, c := range state.FilteredContacts {
				tag := c.Tag
				if tag == "" {
					tag = "-"
				}
				fmt.Printf("%-4d %-16s %-14s %-24s %s\n", c.ID, c.Name, c.PhoneNumber, c.Email, tag)
			}
			return nil
		},
	}
	listCmd.Flags().StringSliceVar(&tags, "tag", nil, "show only contacts with these tags")

	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "List the tags in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSpace(cmd.Context()); err != nil {
				return err
			}
			if err := a.store.FetchContacts(cmd.Context()); err != nil {
				return err
			}
			state := a.store.State()
			if len(state.AllTags) == 0 {
				fmt.Println("No tags")
				return nil
			}
			for _, t := range state.AllTags {
				fmt.Println(t)
			}
			return nil
		},
	}

	var name, phone, email, tag string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSpace(cmd.Context()); err != nil {
				return err
			}
			return a.store.AddContacts(cmd.Context(), contacts.AddPayload{
				Contacts: []contacts.Contact{{
					Name:        name,
					PhoneNumber: phone,
					Email:       email,
					Tag:         tag,
				}},
			})
		},
	}
	addCmd.Flags().StringVarP(&name, "name", "n", "", "contact name")
	addCmd.Flags().StringVar(&phone, "phone", "", "phone number")
	addCmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	addCmd.Flags().StringVarP(&tag, "tag", "t", "", "tag")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("phone")

	rmCmd := &cobra.Command{
		Use:   "rm <contact-id>...",
		Short: "Delete one or more contacts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSpace(cmd.Context()); err != nil {
				return err
			}
			ids := make([]int, len(args))
			for i, arg := range args {
				id, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("contact id must be a number: %q", arg)
				}
				ids[i] = id
			}
			if len(ids) == 1 {
				return a.store.DeleteContact(cmd.Context(), ids[0])
			}
			// Bulk deletion goes through the selection set, the same path
			// the web client's checkbox flow used.
			if err := a.store.FetchContacts(cmd.Context()); err != nil {
				return err
			}
			for _, id := range ids {
				a.store.ToggleContactSelection(id)
			}
			return a.store.DeleteSelectedContacts(cmd.Context())
		},
	}

	cmd.AddCommand(listCmd, tagsCmd, addCmd, rmCmd)
	return cmd
}
