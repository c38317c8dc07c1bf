package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/chris/notefields/internal/db"
	"github.com/spf13/cobra"
)

var (
	addTitle     string
	addContent   string
	addSourceURL string
	addMime      string
)

var addNoteCmd = &cobra.Command{
	Use:   "add-note",
	Short: "Insert a note and print its id and guid",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, guid, err := database.CreateNote(db.Note{
			Title:     addTitle,
			Content:   addContent,
			SourceURL: addSourceURL,
			Active:    true,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", id, guid)
		return nil
	},
}

var addResourceCmd = &cobra.Command{
	Use:   "add-resource [note-guid] [file]",
	Short: "Attach a file to a note and print the resource guid",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[1], err)
		}
		mimeType := addMime
		if mimeType == "" {
			mimeType = mime.TypeByExtension(filepath.Ext(args[1]))
		}
		guid, err := database.CreateResource(db.Resource{
			OwnerGUID: args[0],
			Data:      data,
			Mime:      mimeType,
			Filename:  filepath.Base(args[1]),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), guid)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addNoteCmd, addResourceCmd)
	addNoteCmd.Flags().StringVar(&addTitle, "title", "", "note title")
	addNoteCmd.Flags().StringVar(&addContent, "content", "", "note body")
	addNoteCmd.Flags().StringVar(&addSourceURL, "source-url", "", "source URL")
	addResourceCmd.Flags().StringVar(&addMime, "mime", "", "MIME type (guessed from the extension when empty)")
}
