package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/domtree/fathom"
	"github.com/domtree/fathom/cluster"
	"github.com/domtree/fathom/domhtml"
	"github.com/domtree/fathom/internal/demoruleset"
)

type coefficientsFile struct {
	Coefficients []float64 `yaml:"coefficients"`
}

func loadCoefficients(path string) (demoruleset.Coefficients, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return demoruleset.Coefficients{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var f coefficientsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return demoruleset.Coefficients{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	var c demoruleset.Coefficients
	copy(c[:], f.Coefficients)
	return c, nil
}

func newClusterPreviewCmd() *cobra.Command {
	var docPath string

	cmd := &cobra.Command{
		Use:   "cluster-preview",
		Short: "Show how the demonstration ruleset clusters a document's candidate blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClusterPreview(docPath)
		},
	}
	cmd.Flags().StringVar(&docPath, "doc", "", "path to an HTML document (required)")
	cmd.MarkFlagRequired("doc")
	return cmd
}

func runClusterPreview(docPath string) error {
	coeffs, err := loadCoefficients(cfg.CoefficientsPath)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", docPath, err)
	}
	doc, err := domhtml.ParseString(string(raw))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", docPath, err)
	}

	rs, err := demoruleset.Build(coeffs)
	if err != nil {
		return err
	}
	bound := rs.Against(doc)

	result, err := bound.Get(fathom.OfType(demoruleset.TypeBlock))
	if err != nil {
		return err
	}
	fnodes := result.([]*fathom.Fnode)
	if len(fnodes) == 0 {
		fmt.Println("no candidate blocks found")
		return nil
	}

	distOpts := cluster.DefaultDistanceOptions()
	clusters := cluster.Clusterize(fnodes, cluster.Options{
		Distance: func(a, b any) float64 {
			return cluster.Distance(a.(*fathom.Fnode).Element(), b.(*fathom.Fnode).Element(), distOpts)
		},
		SplittingDistance: cfg.SplittingDistance,
	})

	fmt.Printf("%d candidate blocks, %d clusters (splittingDistance=%.1f)\n\n",
		len(fnodes), len(clusters), cfg.SplittingDistance)
	for i, c := range clusters {
		total := cluster.Sum(c, func(f *fathom.Fnode) float64 { return f.ScoreFor(demoruleset.TypeBlock) })
		fmt.Printf("cluster %d: %d elements, total score %.3f\n", i, len(c.Items), total)
		for _, f := range c.Items {
			fmt.Printf("  <%s> score=%.3f\n", f.Element().TagName(), f.ScoreFor(demoruleset.TypeBlock))
		}
	}
	return nil
}
