package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"rostermem/internal/engine"
	"rostermem/internal/offsets"
)

func newFieldsCmd(opts *options) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "list cataloged categories and fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.loadDocument()
			if err != nil {
				return err
			}

			cat, err := opts.loadCatalog(doc)
			if err != nil {
				return err
			}

			for _, name := range cat.Categories() {
				if category != "" && name != category {
					continue
				}

				fmt.Printf("%s (%s)\n", name, cat.SuperType(name))

				for _, f := range cat.Category(name) {
					fmt.Printf("  %-40s 0x%06X bit %d len %d %s\n",
						f.Name, f.Offset, f.StartBit, f.Bits, f.Kind)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "limit output to one category")

	return cmd
}

func newDumpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "dump the normalized schema document",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.loadDocument()
			if err != nil {
				return err
			}

			spew.Dump(doc)

			return nil
		},
	}
}

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "resolve every table base through its pointer chains",
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := opts.newEditor()
			if err != nil {
				return err
			}

			for _, t := range offsets.Tables() {
				addr, err := ed.RecordAddress(t, 0)
				if err != nil {
					fmt.Printf("%-12s unavailable (%v)\n", t, err)
					continue
				}

				fmt.Printf("%-12s 0x%X\n", t, addr)
			}

			return nil
		},
	}
}

func newScanCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "scan <table>",
		Short: "scan a table and list its populated records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTableArg(args[0])
			if err != nil {
				return err
			}

			ed, err := opts.newEditor()
			if err != nil {
				return err
			}

			records, err := ed.Scan(t, limit)
			if err != nil {
				return err
			}

			for _, r := range records {
				fmt.Printf("%5d 0x%X %s\n", r.Handle.Index, r.Handle.Addr, r.Name)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "maximum record slots to walk")

	return cmd
}

func recordFlags(cmd *cobra.Command, table *string, index *int, category *string) {
	cmd.Flags().StringVar(table, "table", "player", "record table")
	cmd.Flags().IntVar(index, "index", 0, "record index within the table")
	cmd.Flags().StringVar(category, "category", "", "category hint for the field lookup")
}

func newGetCmd(opts *options) *cobra.Command {
	var (
		table    string
		index    int
		category string
	)

	cmd := &cobra.Command{
		Use:   "get <field>",
		Short: "read one field of a record in display units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTableArg(table)
			if err != nil {
				return err
			}

			ed, err := opts.newEditor()
			if err != nil {
				return err
			}

			value, err := ed.GetDisplay(engine.Handle{Table: t, Index: index}, args[0], category)
			if err != nil {
				return err
			}

			fmt.Println(value)

			return nil
		},
	}

	recordFlags(cmd, &table, &index, &category)

	return cmd
}

func newSetCmd(opts *options) *cobra.Command {
	var (
		table    string
		index    int
		category string
	)

	cmd := &cobra.Command{
		Use:   "set <field> <value>",
		Short: "write one field of a record in display units",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTableArg(table)
			if err != nil {
				return err
			}

			ed, err := opts.newEditor()
			if err != nil {
				return err
			}

			h := engine.Handle{Table: t, Index: index}

			if err := ed.SetDisplay(h, args[0], category, args[1]); err != nil {
				return err
			}

			value, err := ed.GetDisplay(h, args[0], category)
			if err != nil {
				return err
			}

			fmt.Println(value)

			return nil
		},
	}

	recordFlags(cmd, &table, &index, &category)

	return cmd
}
