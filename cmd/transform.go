package cmd

import (
	"fmt"
	"io"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/adalundhe/layerkit/core/component"
	"github.com/adalundhe/layerkit/core/export"
	"github.com/adalundhe/layerkit/core/transform"
)

var (
	transformOwner     string
	transformComponent string
	transformVolumes   bool
	transformJSON      bool
)

var transformCmd = &cobra.Command{
	Use:   "transform <export.json>",
	Short: "Resolve world transforms of actors or components",
	Long: `Resolve the world-space transform of every actor whose name matches --owner.

Without --component the actor's root component is used (DefaultSceneRoot,
then Root, then the first registered component).

Examples:
  layerkit transform Logar_AAS_v1.json --owner 'BP_VehicleSpawner*'
  layerkit transform Logar_AAS_v1.json --owner 'Main_*' --component DefaultSceneRoot
  layerkit transform Logar_AAS_v1.json --owner '*Protection*' --volumes --json`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)

	transformCmd.Flags().StringVarP(&transformOwner, "owner", "o", "*", "Glob pattern selecting owning actors")
	transformCmd.Flags().StringVarP(&transformComponent, "component", "c", "", "Resolve this component instead of the actor root")
	transformCmd.Flags().BoolVar(&transformVolumes, "volumes", false, "Include collision volumes of each actor")
	transformCmd.Flags().BoolVar(&transformJSON, "json", false, "Output as JSON")
}

// transformRow is one resolved actor in the command output.
type transformRow struct {
	Owner     string             `json:"owner"`
	Component string             `json:"component,omitempty"`
	Transform transform.Resolved `json:"transform"`
	Volumes   []transform.Volume `json:"volumes,omitempty"`
}

func runTransform(cmd *cobra.Command, args []string) error {
	pattern, err := glob.Compile(transformOwner)
	if err != nil {
		return fmt.Errorf("invalid --owner pattern: %w", err)
	}

	exp, err := export.ReadFile(args[0])
	if err != nil {
		return err
	}

	registry := component.Build(exp.Components, logger)
	resolver := transform.NewResolver(registry, transform.Config{
		CacheSize:      cfg.Resolver.CacheSize,
		RootComponents: cfg.Actors.RootComponents,
	}, logger)

	rows := collectTransforms(resolver, pattern)

	out := cmd.OutOrStdout()
	if wantJSON(out, transformJSON) {
		return writeJSON(out, rows)
	}
	return printTransforms(out, rows)
}

func collectTransforms(resolver *transform.Resolver, pattern glob.Glob) []transformRow {
	var rows []transformRow
	for _, owner := range resolver.Registry().Owners() {
		if !pattern.Match(owner) {
			continue
		}

		row := transformRow{Owner: owner}
		if transformComponent != "" {
			row.Component = transformComponent
			row.Transform = resolver.ResolveKey(component.Key{Owner: owner, Name: transformComponent})
		} else {
			if root := resolver.RootOf(owner); root != nil {
				row.Component = root.Key.Name
			}
			row.Transform = resolver.ResolveActor(owner)
		}
		if transformVolumes {
			row.Volumes = resolver.ActorVolumes(owner)
		}
		rows = append(rows, row)
	}
	return rows
}

func printTransforms(w io.Writer, rows []transformRow) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "OWNER\tCOMPONENT\tLOCATION\tROTATION\tSCALE")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			row.Owner,
			row.Component,
			formatVector(row.Transform.Location),
			formatRotation(row.Transform.Rotation),
			formatVector(row.Transform.Scale))
		for _, v := range row.Volumes {
			fmt.Fprintf(tw, "  %s\t%s\t%s\textent %s\tradius %.2f\n",
				v.Name, v.Kind, formatVector(v.Location), formatVector(v.Extent), v.Radius)
		}
	}
	return tw.Flush()
}
