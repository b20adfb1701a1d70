package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	treeio "github.com/matzehuels/treeize/pkg/io"
	"github.com/matzehuels/treeize/pkg/store"
)

// snapshotCommand creates the snapshot command group for saving and
// restoring named copies of graph files.
func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save and restore graph snapshots",
		Long: `Snapshots are named copies of a graph stored outside the working
file, in ~/.config/treeize/snapshots by default or in MongoDB when
mongo_uri is set in the config file.`,
	}

	cmd.AddCommand(c.snapshotSaveCommand())
	cmd.AddCommand(c.snapshotListCommand())
	cmd.AddCommand(c.snapshotShowCommand())
	cmd.AddCommand(c.snapshotRestoreCommand())
	cmd.AddCommand(c.snapshotDeleteCommand())

	return cmd
}

// newStore picks the snapshot backend from config: MongoDB when a URI
// is configured, the file store otherwise.
func (c *CLI) newStore(cmd *cobra.Command) (store.Store, error) {
	if c.Config.MongoURI != "" {
		return store.NewMongoStore(cmd.Context(), c.Config.MongoURI, c.Config.MongoDatabase)
	}
	return store.NewFileStore("")
}

func (c *CLI) snapshotSaveCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Save a graph file as a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Import then re-export so only valid graphs get stored,
			// in canonical form.
			g, err := treeio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := treeio.WriteJSON(g, &buf); err != nil {
				return err
			}

			if name == "" {
				name = args[0]
			}
			snap := store.NewSnapshot(name, buf.Bytes())

			s, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			if err := s.Put(cmd.Context(), snap); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
			printSuccess("Saved snapshot %s", StyleValue.Render(snap.Name))
			printKeyValue("id", snap.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "snapshot name (defaults to the file path)")
	return cmd
}

func (c *CLI) snapshotListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			snaps, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				printInfo("No snapshots")
				return nil
			}
			for _, snap := range snaps {
				fmt.Println(StyleValue.Render(snap.ID) + "  " +
					snap.Name + "  " +
					StyleDim.Render(snap.CreatedAt.Format("2006-01-02 15:04")))
			}
			return nil
		},
	}
}

func (c *CLI) snapshotShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print a snapshot's graph JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			snap, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(snap.Graph)
			return err
		},
	}
}

func (c *CLI) snapshotRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [id] [file]",
		Short: "Write a snapshot back to a graph file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			snap, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], snap.Graph, 0o644); err != nil {
				return fmt.Errorf("restore snapshot: %w", err)
			}
			printSuccess("Restored snapshot %s", StyleValue.Render(snap.Name))
			printFile(args[1])
			return nil
		},
	}
}

func (c *CLI) snapshotDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted snapshot %s", args[0])
			return nil
		},
	}
}
