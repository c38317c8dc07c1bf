package main

import (
	"fmt"

	"github.com/chris/notefields/internal/notefields"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type resourceView struct {
	GUID           string `yaml:"guid"`
	NoteGUID       string `yaml:"note_guid"`
	Filename       string `yaml:"filename,omitempty"`
	Mime           string `yaml:"mime,omitempty"`
	Hash           string `yaml:"hash"`
	Size           string `yaml:"size"`
	USN            int    `yaml:"usn"`
	HasRecognition bool   `yaml:"has_recognition"`
}

func buildResourceView(s *notefields.Statements, guid string) (*resourceView, error) {
	owner, ok, err := s.NoteGUID(guid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("resource %s not found", guid)
	}
	v := &resourceView{GUID: guid, NoteGUID: owner}
	if v.Filename, _, err = s.Filename(guid); err != nil {
		return nil, err
	}
	if v.Mime, _, err = s.Mime(guid); err != nil {
		return nil, err
	}
	if v.Hash, _, err = s.DataHash(guid); err != nil {
		return nil, err
	}
	length, _, err := s.DataLength(guid)
	if err != nil {
		return nil, err
	}
	v.Size = humanize.Bytes(uint64(length))
	if v.USN, _, err = s.ResourceUpdateSequenceNumber(guid); err != nil {
		return nil, err
	}
	if _, v.HasRecognition, err = s.Recognition(guid); err != nil {
		return nil, err
	}
	return v, nil
}

var resourceCmd = &cobra.Command{
	Use:   "resource [guid]",
	Short: "Print the fields of a resource as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := notefields.GetInstance()
		if err != nil {
			return err
		}
		v, err := buildResourceView(s, args[0])
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	},
}

var resourcesCmd = &cobra.Command{
	Use:   "resources [note-guid]",
	Short: "List the resource hashes owned by a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := notefields.GetInstance()
		if err != nil {
			return err
		}
		hashes, err := s.Resources(args[0])
		if err != nil {
			return err
		}
		for _, h := range hashes {
			fmt.Fprintln(cmd.OutOrStdout(), h)
		}
		return nil
	},
}

var dataCmd = &cobra.Command{
	Use:   "data [guid]",
	Short: "Write the raw body of a resource to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := notefields.GetInstance()
		if err != nil {
			return err
		}
		data, ok, err := s.Data(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no data for resource %s", args[0])
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(resourceCmd, resourcesCmd, dataCmd)
}
