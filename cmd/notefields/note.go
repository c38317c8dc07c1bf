package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/chris/notefields/internal/notefields"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type noteView struct {
	ID        int64     `yaml:"id"`
	GUID      string    `yaml:"guid"`
	Title     string    `yaml:"title"`
	Created   time.Time `yaml:"created,omitempty"`
	Updated   time.Time `yaml:"updated,omitempty"`
	SourceURL string    `yaml:"source_url,omitempty"`
	USN       int       `yaml:"usn"`
	Active    bool      `yaml:"active"`
	Resources []string  `yaml:"resources"`
	Content   string    `yaml:"content,omitempty"`
}

func buildNoteView(s *notefields.Statements, id int64, withContent bool) (*noteView, error) {
	guid, ok, err := s.GUID(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("note %d not found", id)
	}
	v := &noteView{ID: id, GUID: guid}
	if v.Title, _, err = s.Title(id); err != nil {
		return nil, err
	}
	if v.Created, _, err = s.Created(id); err != nil {
		return nil, err
	}
	if v.Updated, _, err = s.Updated(id); err != nil {
		return nil, err
	}
	if v.SourceURL, _, err = s.SourceURL(id); err != nil {
		return nil, err
	}
	if v.USN, _, err = s.UpdateSequenceNumber(id); err != nil {
		return nil, err
	}
	if v.Active, _, err = s.IsActive(id); err != nil {
		return nil, err
	}
	if v.Resources, err = s.Resources(guid); err != nil {
		return nil, err
	}
	if withContent {
		if v.Content, _, err = s.Content(id); err != nil {
			return nil, err
		}
	}
	return v, nil
}

var noteContent bool

var noteCmd = &cobra.Command{
	Use:   "note [id]",
	Short: "Print the fields of a note as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid note id %q: %w", args[0], err)
		}
		s, err := notefields.GetInstance()
		if err != nil {
			return err
		}
		v, err := buildNoteView(s, id, noteContent)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.Flags().BoolVar(&noteContent, "content", false, "include the note body")
}
