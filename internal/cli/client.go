// Client subcommands for the glampd CLI.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/camposanto/glampd/pkg/types"
)

var clientInput types.ClientInput

func newClientCmd() *cobra.Command {
	client := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a new client",
		Long: `Add creates a new client. The document number must be unique across
all clients.

Example:
  glampd client add --name "Ana Torres" --email ana@example.com --phone 3001234567 --document CC1019283746`,
		RunE: runClientAdd,
	}
	add.Flags().StringVar(&clientInput.Name, "name", "", "full name (required)")
	add.Flags().StringVar(&clientInput.Email, "email", "", "email address (required)")
	add.Flags().StringVar(&clientInput.Phone, "phone", "", "phone number (required)")
	add.Flags().StringVar(&clientInput.Document, "document", "", "identity document number (required)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List all clients",
		RunE:  runClientList,
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a client by id",
		Args:  cobra.ExactArgs(1),
		RunE:  runClientGet,
	}

	find := &cobra.Command{
		Use:   "find <document>",
		Short: "Find a client by document number",
		Args:  cobra.ExactArgs(1),
		RunE:  runClientFind,
	}

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a client",
		Long: `Update overwrites the supplied fields of an existing client. Fields
left empty keep their stored values.`,
		Args: cobra.ExactArgs(1),
		RunE: runClientUpdate,
	}
	update.Flags().StringVar(&clientInput.Name, "name", "", "full name")
	update.Flags().StringVar(&clientInput.Email, "email", "", "email address")
	update.Flags().StringVar(&clientInput.Phone, "phone", "", "phone number")
	update.Flags().StringVar(&clientInput.Document, "document", "", "identity document number")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client",
		Long: `Delete removes a client. A client referenced by any reservation cannot
be deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: runClientDelete,
	}

	client.AddCommand(add, list, get, find, update, del)
	return client
}

func runClientAdd(cmd *cobra.Command, args []string) error {
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	client, err := book.Clients.Create(clientInput)
	if err != nil {
		return renderError(err)
	}
	return printEntity(client, func() {
		fmt.Printf("Created client %d: %s (%s)\n", client.ID, client.Name, client.Document)
	})
}

func runClientList(cmd *cobra.Command, args []string) error {
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	clients, err := book.Clients.FindAll()
	if err != nil {
		return err
	}
	return printEntity(clients, func() {
		for _, c := range clients {
			fmt.Printf("%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Phone, c.Document)
		}
	})
}

func runClientGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	client, err := book.Clients.FindByID(id)
	if err != nil {
		return err
	}
	return printEntity(client, func() {
		fmt.Printf("%d\t%s\t%s\t%s\t%s\n", client.ID, client.Name, client.Email, client.Phone, client.Document)
	})
}

func runClientFind(cmd *cobra.Command, args []string) error {
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	client, err := book.Clients.FindByDocument(args[0])
	if err != nil {
		return err
	}
	return printEntity(client, func() {
		fmt.Printf("%d\t%s\t%s\t%s\t%s\n", client.ID, client.Name, client.Email, client.Phone, client.Document)
	})
}

func runClientUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	client, err := book.Clients.Update(id, clientInput)
	if err != nil {
		return renderError(err)
	}
	return printEntity(client, func() {
		fmt.Printf("Updated client %d\n", client.ID)
	})
}

func runClientDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	book, detach, err := openBook()
	if err != nil {
		return err
	}
	defer detach()

	if err := book.Clients.Delete(id); err != nil {
		return err
	}
	fmt.Printf("Deleted client %d\n", id)
	return nil
}
