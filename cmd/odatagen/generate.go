package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/officeglobal/odatagen/compiler/gen"
	"github.com/officeglobal/odatagen/compiler/gen/rest"
	"github.com/officeglobal/odatagen/compiler/load"
)

var (
	genConfigPath string
	genMetadata   string
	genTarget     string
	genPackage    string
	genMaxDepth   int
	genNamespaces []string
	genWatch      bool
)

// fileConfig is the on-disk YAML configuration. Flags override it.
type fileConfig struct {
	Metadata   string   `yaml:"metadata"`
	Target     string   `yaml:"target"`
	Package    string   `yaml:"package"`
	MaxDepth   *int     `yaml:"maxDepth"`
	Namespaces []string `yaml:"namespaces"`
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate request builders from a $metadata document",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genConfigPath, "config", "c", "", "path to an odatagen.yaml configuration file")
	generateCmd.Flags().StringVarP(&genMetadata, "metadata", "m", "", "path to the $metadata CSDL document")
	generateCmd.Flags().StringVarP(&genTarget, "target", "t", "", "output directory for generated code")
	generateCmd.Flags().StringVarP(&genPackage, "package", "p", "", "output package name (defaults to the target directory name)")
	generateCmd.Flags().IntVar(&genMaxDepth, "max-depth", gen.DefaultMaxDepth, "maximum route depth")
	generateCmd.Flags().StringSliceVar(&genNamespaces, "namespace", nil, "restrict generation to the given schema namespaces")
	generateCmd.Flags().BoolVarP(&genWatch, "watch", "w", false, "regenerate whenever the metadata document changes")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if genConfigPath != "" {
		if err := mergeFileConfig(cmd, genConfigPath); err != nil {
			return err
		}
	}
	if genMetadata == "" {
		return fmt.Errorf("missing metadata document: pass --metadata or set it in the config file")
	}
	if genTarget == "" {
		return fmt.Errorf("missing target directory: pass --target or set it in the config file")
	}

	if err := generate(cmd); err != nil {
		return err
	}
	if !genWatch {
		return nil
	}
	return watch(cmd)
}

// mergeFileConfig applies config file values for flags not set explicitly.
func mergeFileConfig(cmd *cobra.Command, path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(buf, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if genMetadata == "" {
		genMetadata = fc.Metadata
	}
	if genTarget == "" {
		genTarget = fc.Target
	}
	if genPackage == "" {
		genPackage = fc.Package
	}
	if !cmd.Flags().Changed("max-depth") && fc.MaxDepth != nil {
		genMaxDepth = *fc.MaxDepth
	}
	if len(genNamespaces) == 0 {
		genNamespaces = fc.Namespaces
	}
	return nil
}

func generate(cmd *cobra.Command) error {
	model, err := load.ParseFile(genMetadata)
	if err != nil {
		return err
	}
	opts := []gen.Option{
		gen.WithTarget(genTarget),
		gen.WithMaxDepth(genMaxDepth),
	}
	if len(genNamespaces) > 0 {
		opts = append(opts, gen.WithNamespaces(genNamespaces...))
	}
	config, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}
	graph, err := gen.NewGraph(config, model)
	if err != nil {
		return err
	}
	generator := gen.NewGenerator(graph, genTarget)
	if genPackage != "" {
		generator.WithPackage(genPackage)
	}
	generator.WithEmitter(rest.NewEmitter(generator))
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := generator.Generate(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "generated %s from %s\n", genTarget, genMetadata)
	return nil
}

// watch regenerates whenever the metadata document is rewritten.
func watch(cmd *cobra.Command) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Watch the directory: editors replace files on save, which drops
	// a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(genMetadata)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", genMetadata)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	target, err := filepath.Abs(genMetadata)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path, err := filepath.Abs(event.Name)
			if err != nil || path != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := generate(cmd); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "regeneration failed: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		}
	}
}
