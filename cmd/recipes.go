package cmd

import (
	"fmt"
	"os"
	"strings"

	"stash-recipes/core/recipe"
	"stash-recipes/core/serializer"

	"github.com/spf13/cobra"
)

var recipesFormat string

// recipesCmd represents the recipes command
var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List the vendor recipes in priority order",
	RunE: func(cmd *cobra.Command, args []string) error {
		defs := recipe.All()
		if recipesFormat == "" || recipesFormat == string(serializer.FormatTable) {
			renderRecipes(os.Stdout, defs)
			return nil
		}

		format, err := serializer.ParseFormat(recipesFormat)
		if err != nil {
			return err
		}
		w, err := serializer.NewWriter(format, os.Stdout)
		if err != nil {
			return err
		}
		return w.Serialize(defs)
	},
}

func init() {
	recipesCmd.Flags().StringVarP(&recipesFormat, "format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")))
	RootCmd.AddCommand(recipesCmd)
}
