package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Add or remove items in the local store",
	Long: `Manage the items kept in the local SQLite store. Open searches pick
up every change immediately.`,
}

var itemAddCmd = &cobra.Command{
	Use:   "add [type] [field=value...]",
	Short: "Add an item",
	Long: `Adds an item of the given type. Fields are given as field=value pairs;
run 'portal-search item fields [type]' to list them. Dates use
YYYY-MM-DD. An id is generated when none is given.

Examples:
  portal-search item add news title="Preço do alumínio sobe" category=Mercado
  portal-search item add ebook title="Guia de moldagem" price=0
  portal-search item add foundry name="Fundição Sul" city=Joinville state=SC`,
	Args: cobra.MinimumNArgs(2),
	RunE: runItemAdd,
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete [type] [id]",
	Short: "Delete an item",
	Args:  cobra.ExactArgs(2),
	RunE:  runItemDelete,
}

var itemFieldsCmd = &cobra.Command{
	Use:   "fields [type]",
	Short: "List the fields accepted by 'item add'",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemFields,
}

func init() {
	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemDeleteCmd)
	itemCmd.AddCommand(itemFieldsCmd)
	rootCmd.AddCommand(itemCmd)
}

func runItemAdd(cmd *cobra.Command, args []string) error {
	if itemService == nil {
		return errors.New("item service not configured")
	}

	ct, err := domain.ParseContentType(args[0])
	if err != nil {
		return err
	}
	fields, err := parseFields(args[1:])
	if err != nil {
		return err
	}

	id, err := itemService.Add(commandContext(cmd), ct, fields)
	if err != nil {
		return fmt.Errorf("adding %s: %w", ct, err)
	}

	cmd.Printf("Added %s: %s\n", ct.Label(), id)
	return nil
}

func runItemDelete(cmd *cobra.Command, args []string) error {
	if itemService == nil {
		return errors.New("item service not configured")
	}

	ct, err := domain.ParseContentType(args[0])
	if err != nil {
		return err
	}

	if err := itemService.Delete(commandContext(cmd), ct, args[1]); err != nil {
		return err
	}

	cmd.Printf("Deleted %s: %s\n", ct.Label(), args[1])
	return nil
}

func runItemFields(cmd *cobra.Command, args []string) error {
	if itemService == nil {
		return errors.New("item service not configured")
	}

	ct, err := domain.ParseContentType(args[0])
	if err != nil {
		return err
	}
	names, err := itemService.Fields(ct)
	if err != nil {
		return err
	}

	cmd.Printf("Fields for %s:\n", ct.Label())
	for _, name := range names {
		cmd.Printf("  %s\n", name)
	}
	return nil
}

// parseFields splits field=value arguments. The value may contain '='.
func parseFields(args []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%q is not field=value: %w", arg, domain.ErrInvalidInput)
		}
		if _, dup := fields[name]; dup {
			return nil, fmt.Errorf("field %q given twice: %w", name, domain.ErrInvalidInput)
		}
		fields[name] = value
	}
	return fields, nil
}
