package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pos-voice/internal/domain"
	"pos-voice/internal/voice/command"
)

var interpretCatalog string

// catalogFile is the on-disk product list used by interpret.
type catalogFile struct {
	Products []struct {
		ID         int64   `yaml:"id"`
		CategoryID int64   `yaml:"category_id"`
		Name       string  `yaml:"name"`
		Price      float64 `yaml:"price"`
	} `yaml:"products"`
}

type interpretLine struct {
	Utterance  string                     `json:"utterance"`
	Kind       command.Kind               `json:"intent"`
	Args       command.Intent             `json:"args"`
	Outcome    command.Outcome            `json:"outcome"`
	Product    *domain.Product            `json:"product,omitempty"`
	Quantity   int                        `json:"quantity,omitempty"`
	Suggestion string                     `json:"suggestion,omitempty"`
	Submitted  *domain.CreateOrderRequest `json:"submitted,omitempty"`
}

var interpretCmd = &cobra.Command{
	Use:   "interpret <utterance>...",
	Short: "Interpret utterances against a local catalog without side effects",
	Long: `Interpret each argument as one utterance, applying it to an in-memory
draft, and print one JSON line per utterance. A finalize prints the order
that would have been submitted. No database or broker is contacted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var products []domain.Product
		if interpretCatalog != "" {
			var err error
			products, err = readCatalog(interpretCatalog)
			if err != nil {
				return err
			}
		}
		return runInterpret(cmd, products, args)
	},
}

func init() {
	interpretCmd.Flags().StringVar(&interpretCatalog, "catalog", "", "YAML or JSON file with a products list")
}

func readCatalog(path string) ([]domain.Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	products := make([]domain.Product, 0, len(f.Products))
	for _, p := range f.Products {
		products = append(products, domain.Product{ID: p.ID, CategoryID: p.CategoryID, Name: p.Name, Price: p.Price})
	}
	return products, nil
}

func runInterpret(cmd *cobra.Command, products []domain.Product, utterances []string) error {
	interp := command.New()
	enc := json.NewEncoder(cmd.OutOrStdout())

	var draft domain.Draft
	for _, u := range utterances {
		var submitted *domain.CreateOrderRequest
		res := interp.Interpret(u, command.Snapshot{Catalog: products, Items: draft.Items}, command.Callbacks{
			OnAdd:         func(p domain.Product, qty int) { draft.Upsert(p, qty) },
			OnRemove:      func(id int64) { draft.Remove(id) },
			OnSetCustomer: draft.SetCustomer,
			OnSetStatus:   draft.SetStatus,
			OnFinalize: func() {
				if draft.Empty() {
					return
				}
				req := draft.ToRequest()
				submitted = &req
				draft.Reset()
			},
		})

		line := interpretLine{
			Utterance:  u,
			Kind:       res.Intent.Kind(),
			Args:       res.Intent,
			Outcome:    res.Outcome,
			Product:    res.Product,
			Quantity:   res.Quantity,
			Suggestion: res.Suggestion,
			Submitted:  submitted,
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}
	return nil
}
