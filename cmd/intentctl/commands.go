// cmd/intentctl/commands.go
package main

import (
	"fmt"
	"strings"

	"intent-workers/internal/intent"
	"intent-workers/pkg/registry"

	"github.com/spf13/cobra"
)

var outputFormat string

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "intentctl",
		Short: "Run the intent pipeline and calculator from the command line",
		Long: `intentctl resolves utterances with the same heuristic pipeline the
process-user-input worker runs, evaluates calculator operations, and inspects
the intent schema and activity registry.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case formatJSON, formatYAML, formatText:
				return nil
			}
			return fmt.Errorf("unknown output format %q (want json, yaml or text)", outputFormat)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatJSON, "output format: json, yaml or text")

	rootCmd.AddCommand(processCmd())
	rootCmd.AddCommand(calcCmd())
	rootCmd.AddCommand(intentsCmd())
	rootCmd.AddCommand(activitiesCmd())

	return rootCmd
}

func processCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process [utterance...]",
		Short: "Classify an utterance and execute the selected action",
		Example: `  intentctl process what is 15 plus 25
  intentctl process -o yaml "weather in paris"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := intent.NewController().ProcessInput(strings.Join(args, " "))
			return render(cmd.OutOrStdout(), outputFormat, result, result.Result.Text())
		},
	}
}

func calcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calc <operation> <number...>",
		Short: "Evaluate add, subtract, multiply, divide, power or sqrt",
		Example: `  intentctl calc divide 10 4
  intentctl calc sqrt 16`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eval := intent.Evaluate(args[0], args[1:])
			return render(cmd.OutOrStdout(), outputFormat, eval, eval.Message)
		},
	}
}

type intentRow struct {
	Name          string   `json:"name"`
	RequiredSlots []string `json:"required_slots"`
	Endpoint      string   `json:"endpoint,omitempty"`
	Keywords      []string `json:"keywords"`
}

func intentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intents",
		Short: "List the intent schema in classification order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := intent.DefaultSchema()

			var rows []intentRow
			var text strings.Builder
			for _, name := range schema.Intents() {
				spec, _ := schema.Lookup(name)
				rows = append(rows, intentRow{
					Name:          spec.Name,
					RequiredSlots: spec.RequiredSlots,
					Endpoint:      spec.Endpoint,
					Keywords:      spec.Keywords,
				})
				endpoint := spec.Endpoint
				if endpoint == "" {
					endpoint = "-"
				}
				fmt.Fprintf(&text, "%-18s %-20s %s\n", spec.Name, endpoint, strings.Join(spec.RequiredSlots, ","))
			}
			return render(cmd.OutOrStdout(), outputFormat, rows, strings.TrimRight(text.String(), "\n"))
		},
	}
}

func activitiesCmd() *cobra.Command {
	var registryPath string
	var writePath string

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Validate and list the activity registry",
		Long: `Loads the activity registry from --registry (or the built-in one),
validates it, and lists the activities. With --write the validated
registry is saved as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Default()
			if registryPath != "" {
				loaded, err := registry.LoadRegistry(registryPath)
				if err != nil {
					return err
				}
				reg = loaded
			}
			if err := reg.Validate(); err != nil {
				return fmt.Errorf("registry invalid: %w", err)
			}

			if writePath != "" {
				if err := reg.Save(writePath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Registry written to %s\n", writePath)
			}

			var text strings.Builder
			for _, a := range reg.Activities {
				fmt.Fprintf(&text, "%-22s %-22s timeout=%s retries=%d\n", a.ID, a.TaskType, a.Timeout, a.Retries)
			}
			return render(cmd.OutOrStdout(), outputFormat, reg, strings.TrimRight(text.String(), "\n"))
		},
	}

	cmd.Flags().StringVar(&registryPath, "registry", "", "path to an activity registry JSON file")
	cmd.Flags().StringVar(&writePath, "write", "", "save the validated registry to this path")

	return cmd
}
