package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/casaflow/crm-cli-go/internal/api"
	"github.com/casaflow/crm-cli-go/internal/domain"

	"github.com/spf13/cobra"
)

func newPropertiesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Search and manage the property inventory",
	}
	cmd.AddCommand(
		newPropertiesSearchCmd(a),
		newPropertiesGetCmd(a),
		newPropertiesCreateCmd(a),
		newPropertiesUpdateCmd(a),
		newPropertiesSubtypesCmd(a),
	)
	return cmd
}

func newPropertiesSearchCmd(a *app) *cobra.Command {
	var filters domain.PropertyFilters

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search properties with filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			properties, err := a.catalog.Search(cmd.Context(), filters)
			if err != nil {
				return err
			}
			return printJSON(properties)
		},
	}
	cmd.Flags().Float64Var(&filters.MinPrice, "min-price", 0, "minimum price")
	cmd.Flags().Float64Var(&filters.MaxPrice, "max-price", 0, "maximum price")
	cmd.Flags().IntVar(&filters.MinRooms, "min-rooms", 0, "minimum rooms")
	cmd.Flags().StringVar(&filters.Zone, "zone", "", "zone or address fragment")
	cmd.Flags().StringVar(&filters.Status, "status", "", "listing status ('all' for any)")
	cmd.Flags().StringVar(&filters.Source, "source", "", "listing source ('all' for any)")
	cmd.Flags().StringVar(&filters.Search, "search", "", "free-text query")
	return cmd
}

func newPropertiesGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			property, err := a.catalog.Property(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(property)
		},
	}
}

// loadProperty reads a property JSON document from disk.
func loadProperty(path string) (*domain.Property, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read property file: %w", err)
	}
	var property domain.Property
	if err := json.Unmarshal(data, &property); err != nil {
		return nil, fmt.Errorf("parse property file: %w", err)
	}
	return &property, nil
}

func newPropertiesCreateCmd(a *app) *cobra.Command {
	var file, image string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a property from a JSON file, optionally with an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			property, err := loadProperty(file)
			if err != nil {
				return err
			}

			var part *api.FilePart
			if image != "" {
				f, err := os.Open(image)
				if err != nil {
					return fmt.Errorf("open image: %w", err)
				}
				defer f.Close()
				part = &api.FilePart{
					Field:   "image",
					Name:    filepath.Base(image),
					Content: f,
				}
			}

			created, err := a.client.CreateProperty(cmd.Context(), property, part)
			if err != nil {
				return err
			}
			return printJSON(created)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to the property JSON file")
	cmd.Flags().StringVar(&image, "image", "", "path to a cover image")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newPropertiesUpdateCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a property from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			property, err := loadProperty(file)
			if err != nil {
				return err
			}
			updated, err := a.client.UpdateProperty(cmd.Context(), args[0], property)
			if err != nil {
				return err
			}
			return printJSON(updated)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to the property JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newPropertiesSubtypesCmd(a *app) *cobra.Command {
	var propertyType string

	cmd := &cobra.Command{
		Use:   "subtypes",
		Short: "List property subtypes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			subtypes, err := a.catalog.Subtypes(cmd.Context(), propertyType)
			if err != nil {
				return err
			}
			return printJSON(subtypes)
		},
	}
	cmd.Flags().StringVar(&propertyType, "type", "", "filter by property type")
	return cmd
}
